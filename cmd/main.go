package main

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/elvisxd/calorie-tracker-api/config"
	"github.com/elvisxd/calorie-tracker-api/routes"
	"github.com/elvisxd/calorie-tracker-api/services"
)

func main() {
	log := zerolog.New(os.Stdout).With().Timestamp().Logger()
	zerolog.TimeFieldFormat = time.RFC3339

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	if !cfg.IsProduction() {
		log = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}

	db, err := config.ConnectDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	var mailer services.Mailer
	if cfg.SESSender != "" {
		mailer, err = services.NewSESMailer(context.Background(), cfg.AWSRegion, cfg.SESSender)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize mailer")
		}
	} else {
		log.Warn().Msg("SES_EMAIL not set, password reset emails will only be logged")
		mailer = services.NoopMailer{Log: log}
	}

	r := routes.SetupRouter(cfg, db, mailer, log)

	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
