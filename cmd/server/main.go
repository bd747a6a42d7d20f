package main

import (
	"context"
	"log"
	"os"

	"go.uber.org/zap"

	"legislativo/internal/config"
	"legislativo/internal/logging"
	"legislativo/internal/server"
)

func main() {
	// Optional config file; LEGISLATIVO_* variables override it
	cfg, err := config.Load(os.Getenv("LEGISLATIVO_CONFIG"))
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	logger, err := logging.NewLogger(cfg.Log)
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	srv, err := server.New(context.Background(), cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize server", zap.Error(err))
	}

	app := srv.NewApp()

	// With no subcommand, serve on the configured address
	if len(os.Args) == 1 {
		app.RootCmd.SetArgs([]string{"serve", "--http", cfg.HTTP.Addr})
	}

	if err := app.Start(); err != nil {
		logger.Fatal("Application stopped", zap.Error(err))
	}
}
