package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/IlyasAtabaev731/vending-machine/internal/api"
	"github.com/IlyasAtabaev731/vending-machine/internal/config"
	"github.com/IlyasAtabaev731/vending-machine/internal/domain/models"
	"github.com/IlyasAtabaev731/vending-machine/internal/storage/postgres"
	"github.com/IlyasAtabaev731/vending-machine/internal/vending"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("Starting application",
		slog.String("env", cfg.Env),
		slog.String("host", cfg.ApiHost),
		slog.Int("port", cfg.ApiPort),
		slog.String("seed", cfg.Seed.Source),
	)

	inventory, bank, err := loadSeed(cfg, log)
	if err != nil {
		log.Error("Failed to load initial machine state", "error", err)
		os.Exit(1)
	}

	machine, err := vending.New(cfg.RestockKey, inventory, bank)
	if err != nil {
		log.Error("Failed to create vending machine", "error", err)
		os.Exit(1)
	}

	apiServer := api.New(cfg, log, machine)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		apiServer.MustStart()
	}()

	<-sigChan
	log.Info("Got signal to shutdown server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Stop(ctx); err != nil {
		log.Error("Stopping server error", "error", err)
	}
}

func loadSeed(cfg *config.Config, log *slog.Logger) (models.Inventory, models.Bank, error) {
	if cfg.Seed.Source != config.SeedFromPostgres {
		inventory, err := cfg.Seed.InventoryModel()
		return inventory, cfg.Seed.Bank, err
	}

	storage, err := postgres.New(cfg.Postgres.URL())
	if err != nil {
		return nil, models.Bank{}, err
	}
	defer func() {
		if err := storage.Stop(); err != nil {
			log.Error("Failed to close database", "error", err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	inventory, err := storage.LoadInventory(ctx, log)
	if err != nil {
		return nil, models.Bank{}, err
	}
	bank, err := storage.LoadBank(ctx)
	if err != nil {
		return nil, models.Bank{}, err
	}

	log.Info("Loaded seed from database", slog.Int("items", len(inventory)))

	return inventory, bank, nil
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger
	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}
	return log
}
