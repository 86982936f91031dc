package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"football-sim/internal/api"
	"football-sim/internal/config"
	"football-sim/internal/store"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Debug().Msg("no .env file found, using environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	setupLogging(cfg.Log)

	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("open store")
	}
	log.Info().Str("path", cfg.Store.Path).Msg("result store ready")

	if err := api.StartDebugServer(api.ObservabilityConfig{
		Enabled:    cfg.Debug.Enabled,
		ListenAddr: cfg.Debug.ListenAddr,
	}); err != nil {
		log.Warn().Err(err).Msg("debug server disabled")
	}

	server := api.NewServer(st, cfg)
	defer server.Stop()

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		s := <-sig
		log.Info().Str("signal", s.String()).Msg("shutting down")
		server.Stop()
		os.Exit(0)
	}()

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	if err := server.Start(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func setupLogging(cfg config.LogConfig) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if cfg.Pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}
