package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"ecpass/adapters/observer"
	"ecpass/internal"
	"ecpass/internal/api"
	"ecpass/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	gin.SetMode(appConfig.Server.GinMode)
	logger := internal.NewLogger(internal.ParseLogLevel(appConfig.LogLevel), os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := api.NewServer(appConfig, logger, observer.NewLogObserver(logger))
	if err := server.Run(ctx); err != nil {
		logger.Error("server stopped: %v", err)
		os.Exit(1)
	}
}
