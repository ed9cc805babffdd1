// Package main is the entry point for the Hollowheart simulation server.
// It only handles dependency injection and server initialization.
// NO business logic belongs here.
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

	"github.com/PatrikSjolin/hollowheart/internal/domain/character"
	"github.com/PatrikSjolin/hollowheart/internal/domain/item"
	"github.com/PatrikSjolin/hollowheart/internal/engine"
	"github.com/PatrikSjolin/hollowheart/internal/events"
	"github.com/PatrikSjolin/hollowheart/internal/infra/leaderboard"
	"github.com/PatrikSjolin/hollowheart/internal/infra/storage"
	"github.com/PatrikSjolin/hollowheart/internal/network"
	"github.com/PatrikSjolin/hollowheart/internal/platform/config"
	"github.com/PatrikSjolin/hollowheart/internal/platform/logger"
	"github.com/PatrikSjolin/hollowheart/internal/platform/metrics"
	"github.com/PatrikSjolin/hollowheart/internal/platform/random"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "hollowheart-server:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	appLogger := logger.New(os.Stdout, cfg.Debug).With("player", cfg.PlayerName)
	m := metrics.Get()

	appLogger.Info(fmt.Sprintf("Initializing SQLite database '%s'...", cfg.DBPath))
	db, err := storage.InitSQLite(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize SQLite: %w", err)
	}
	defer db.Close()
	snapRepo := storage.NewSQLiteSnapshotRepository(db)
	logRepo := storage.NewSQLiteLogRepository(db)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appLogger.Info("Bootstrapping EventLog...")
	eventLog := events.NewEventLog(storage.NewLineWriter(logRepo, cfg.PlayerName, m, appLogger), cfg.LogRetention)
	if err := storage.ResumeLog(ctx, logRepo, cfg.PlayerName, eventLog, cfg.LogRetention); err != nil {
		return err
	}

	appLogger.Info("Restoring character...")
	char, defaulted, err := storage.LoadCharacter(ctx, snapRepo, cfg.PlayerName, character.Options{
		Narrator: eventLog,
		Notifier: eventLog,
		Debug:    cfg.Debug,
	})
	if err != nil {
		return fmt.Errorf("failed to load character: %w", err)
	}
	if len(defaulted) > 0 {
		appLogger.Warn(fmt.Sprintf("Snapshot fields fell back to defaults: %v", defaulted))
	}

	seed := cfg.Seed
	if seed == 0 {
		if seed, err = random.NewSeed(); err != nil {
			return err
		}
	}
	appLogger.Debug(fmt.Sprintf("RNG seed %d", seed))
	rng := random.New(seed)

	saver := storage.NewAsyncSaver(snapRepo, m, appLogger)
	saverCtx, stopSaver := context.WithCancel(context.Background())
	go saver.Run(saverCtx)

	board := leaderboard.NewClient(cfg.LeaderboardURL, cfg.LeaderboardCacheTTL, cfg.LeaderboardTimeout, appLogger)

	engineCfg := engine.DefaultConfig()
	engineCfg.Debug = cfg.Debug

	appLogger.Info("Bootstrapping Engine Subsystems...")
	eng := engine.NewEngine(char, engineCfg, engine.Deps{
		RNG:         rng,
		Loot:        item.NewGenerator(rng),
		Clock:       engine.SystemClock{},
		Persister:   saver,
		Leaderboard: board,
		Logger:      appLogger,
	})
	session := engine.NewSession(eng)
	ticker := engine.NewTicker(session, cfg.TickInterval, cfg.AutosaveInterval, m, appLogger)

	tickerDone := make(chan struct{})
	go func() {
		defer close(tickerDone)
		ticker.Start(ctx)
	}()

	appLogger.Info("Bootstrapping WebSocket Hub...")
	hub := network.NewHub(session, m, appLogger, cfg.BroadcastBuffer, cfg.ClientSendBuffer)
	go hub.Run(ctx)
	hub.StreamLog(ctx, eventLog, cfg.BroadcastBuffer)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.ServeWS)
	network.NewReplayHandler(eventLog, session, appLogger).RegisterRoutes(mux)
	mux.HandleFunc("/api/leaderboard", board.Handler())
	mux.HandleFunc("/metrics", m.Handler())
	mux.HandleFunc("/metrics/prometheus", m.PrometheusHandler())

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		appLogger.Info(fmt.Sprintf("HTTP API & WS Server listening on %s", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
		appLogger.Info("Shutting down...")
	case err = <-serveErr:
		appLogger.Error("Server failed: " + err.Error())
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	srv.Shutdown(shutdownCtx)

	cancel()
	<-tickerDone
	stopSaver()
	saver.Wait()
	board.Wait()
	eventLog.Wait()
	appLogger.Info(fmt.Sprintf("Stopped after %d ticks.", ticker.TickNumber()))
	return err
}
