package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"hyrox-calc/api/internal/app"
	"hyrox-calc/api/internal/config"
	"hyrox-calc/api/internal/handle"
	"hyrox-calc/api/internal/httpserver"
	"hyrox-calc/api/internal/logging"
)

func main() {
	cfg := config.Load()
	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	engines, closeEngines, err := app.Engines(ctx, cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("engine setup failed")
		os.Exit(1)
	}
	defer closeEngines()

	h := handle.New(engines, cfg.OCRTimeout, log)
	router := httpserver.NewRouter(h, log)

	if err := httpserver.Run(ctx, ":"+cfg.Port, router, log); err != nil {
		log.Error().Err(err).Msg("server error")
		os.Exit(1)
	}
}
