package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"host-ledger/internal/config"
)

var writer io.Writer = os.Stdout

// Init configures the global zerolog logger. When cfg.File is set, logs
// go to a size-capped file instead of stdout.
func Init(cfg config.LogConfig) {
	level := zerolog.InfoLevel
	if parsed, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(cfg.Level))); err == nil && cfg.Level != "" {
		level = parsed
	}

	writer = os.Stdout
	if cfg.File != "" {
		if w, err := newCappedWriter(cfg.File, cfg.MaxMB); err == nil {
			writer = w
		}
	}
	var output io.Writer = writer
	if cfg.Pretty {
		output = zerolog.ConsoleWriter{Out: writer}
	}

	zerolog.SetGlobalLevel(level)
	logger := zerolog.New(output).With().Timestamp().Logger()
	if cfg.SampleEvery > 1 {
		logger = logger.Sample(&zerolog.BasicSampler{N: uint32(cfg.SampleEvery)})
	}
	log.Logger = logger
}

// Writer is the sink Init selected; the HTTP request logger shares it.
func Writer() io.Writer {
	return writer
}
