package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"host-ledger/internal/app/operator"
	"host-ledger/internal/chips"
	"host-ledger/internal/config"
	"host-ledger/internal/logging"
	"host-ledger/internal/session"
	"host-ledger/internal/snapshot"
	"host-ledger/internal/store"
	httptransport "host-ledger/internal/transport/http"
)

func main() {
	cfg, err := config.LoadApp()
	if err != nil {
		panic(err)
	}
	logging.Init(cfg.Log)

	st, err := store.New(cfg.Server.PostgresDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("store init failed")
	}
	if err := st.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("db ping failed")
	}

	var snaps operator.SnapshotSink
	if cfg.Server.RedisAddr != "" {
		snaps = snapshot.NewStore(&redis.Options{
			Addr:     cfg.Server.RedisAddr,
			Password: cfg.Server.RedisPassword,
			DB:       cfg.Server.RedisDB,
		})
	}

	sess := session.New(sessionConfig(cfg.Session), denominations(cfg.Session))
	svc := operator.NewService(cfg.Server.HostID, sess, st, snaps)

	// Crash recovery: pick up where the last save left off, if any.
	if snaps != nil {
		if version, err := svc.RestoreSnapshot(context.Background()); err == nil {
			log.Info().Uint64("version", version).Msg("session restored from snapshot")
		} else if !errors.Is(err, operator.ErrNoSnapshot) {
			log.Warn().Err(err).Msg("snapshot restore failed; starting fresh")
		}
	}

	r := httptransport.NewRouter(svc, cfg.Server.OperatorAPIKey, st.Ping)
	httptransport.LogRoutes(r)

	server := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	log.Info().Str("addr", cfg.Server.HTTPAddr).Msg("http listening")
	log.Fatal().Err(server.ListenAndServe()).Msg("server stopped")
}

func sessionConfig(cfg config.SessionConfig) session.Config {
	mode := session.GameMode(cfg.GameMode)
	if mode != session.ModeTimeCharge && mode != session.ModeRakeShare {
		log.Warn().Str("mode", cfg.GameMode).Msg("unknown game mode, using time_charge")
		mode = session.ModeTimeCharge
	}
	return session.Config{
		Mode:         mode,
		HostSharePct: cfg.HostSharePct,
		DefaultFee:   cfg.DefaultFee,
	}
}

func denominations(cfg config.SessionConfig) chips.Denominations {
	d := chips.Denominations{
		chips.White:  cfg.ChipWhite,
		chips.Red:    cfg.ChipRed,
		chips.Black:  cfg.ChipBlack,
		chips.Purple: cfg.ChipPurple,
		chips.Yellow: cfg.ChipYellow,
	}
	if err := d.Validate(); err != nil {
		log.Warn().Err(err).Msg("invalid chip config, using defaults")
		return chips.Default()
	}
	return d
}
