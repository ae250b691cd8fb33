package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/isdelr/todo-sync-be/internal/api"
	"github.com/isdelr/todo-sync-be/internal/auth"
	"github.com/isdelr/todo-sync-be/internal/config"
	"github.com/isdelr/todo-sync-be/internal/database"
	"github.com/isdelr/todo-sync-be/internal/logger"
	"github.com/isdelr/todo-sync-be/internal/monitoring"
	"github.com/isdelr/todo-sync-be/internal/relay"
	"github.com/isdelr/todo-sync-be/internal/services"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger.Init(cfg.LogLevel, cfg.LogPretty)
	log.Info().
		Int("port", cfg.ServerPort).
		Str("store", cfg.StoreDriver).
		Str("relay", cfg.RelayProvider).
		Str("password_hashing", cfg.PasswordHashing).
		Bool("require_token", cfg.RequireToken).
		Msg("Configuration loaded")
	if cfg.PasswordHashing == "plain" {
		log.Warn().Msg("Passwords are stored and compared in plain text")
	}

	// Set up document store
	connectCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	store, err := database.New(connectCtx, cfg)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize document store")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Close(ctx); err != nil {
			log.Error().Err(err).Msg("Failed to close document store")
		}
	}()

	// Set up text generator
	generator, err := relay.New(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize text generator")
	}

	hasher, err := auth.NewPasswordHasher(cfg.PasswordHashing)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize password hasher")
	}
	tokens := auth.NewTokenIssuer(cfg.JWTSecret)

	// Set up services
	userService := services.NewUserService(store, store, hasher)
	taskService := services.NewTaskService(store, store)
	assistantService := services.NewAssistantService(generator, cfg.RelayTimeout, cfg.HistoryLimit)

	// Set up and run the orphan sweeper
	var scheduler *monitoring.Scheduler
	if cfg.OrphanSweepSchedule != "" {
		scheduler, err = monitoring.NewScheduler(store, cfg.OrphanSweepSchedule)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize orphan sweeper")
		}
		scheduler.Run()
	}

	// Set up router
	router := api.NewRouter(api.Deps{
		Users:          userService,
		Tasks:          taskService,
		Assistant:      assistantService,
		Store:          store,
		Logger:         log.Logger,
		Tokens:         tokens,
		RequireToken:   cfg.RequireToken,
		AllowedOrigins: cfg.CORSAllowedOrigins,
	})

	// Set up server
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("ListenAndServe failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	if scheduler != nil {
		scheduler.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
