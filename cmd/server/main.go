package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Seven-Network/GameServer/internal/config"
	"github.com/Seven-Network/GameServer/internal/engine"
	"github.com/Seven-Network/GameServer/internal/server"
	"github.com/Seven-Network/GameServer/internal/version"
	"github.com/Seven-Network/GameServer/pkg/logger"
)

func init() {
	logger.Init()
}

func main() {
	var port, envFile string
	flag.StringVar(&port, "port", "", "HTTP port (overrides PORT)")
	flag.StringVar(&envFile, "env", ".env", "Path to an optional dotenv file")
	flag.Parse()

	cfg, err := config.Load(envFile)
	if err != nil {
		logger.Log.Fatal("Config error: ", err)
	}
	if port != "" {
		cfg.Port = port
	}

	logger.Log.Info("Starting Seven Network game server...")
	logger.Log.Info(version.String())
	if cfg.AccountURL == "" {
		logger.Log.Warn("ACCOUNT_SERVICE_URL is not set, every player joins as a guest")
	}
	if cfg.ServerLinkPass == "" {
		logger.Log.Warn("SERVER_LINK_PASS is empty, create-game is open to anyone")
	}

	registry := engine.NewRegistry(engine.NewConfig(cfg))
	srv := server.New(registry, cfg.Port, cfg.ServerLinkPass)

	// Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := srv.Run(); err != nil {
			logger.Log.Fatal("Server start error: ", err)
		}
	}()

	<-stop
	logger.Log.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.WithError(err).Warn("HTTP shutdown did not finish cleanly")
	}
	registry.Shutdown()

	logger.Log.Info("Done.")
}
