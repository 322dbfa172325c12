package config

import "github.com/caarlos0/env/v11"

// SessionConfig carries the per-session defaults the operator can
// override at runtime.
type SessionConfig struct {
	GameMode     string `env:"GAME_MODE" envDefault:"time_charge"`
	HostSharePct int    `env:"HOST_SHARE_PCT" envDefault:"60"`
	DefaultFee   int64  `env:"DEFAULT_FEE" envDefault:"170"`

	ChipWhite  int64 `env:"CHIP_WHITE" envDefault:"5"`
	ChipRed    int64 `env:"CHIP_RED" envDefault:"25"`
	ChipBlack  int64 `env:"CHIP_BLACK" envDefault:"100"`
	ChipPurple int64 `env:"CHIP_PURPLE" envDefault:"500"`
	ChipYellow int64 `env:"CHIP_YELLOW" envDefault:"1000"`
}

func LoadSession() (SessionConfig, error) {
	var cfg SessionConfig
	err := env.Parse(&cfg)
	return cfg, err
}
