package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pawprintgames/gachapet/internal/achievement"
	"github.com/pawprintgames/gachapet/internal/attendance"
	"github.com/pawprintgames/gachapet/internal/board"
	"github.com/pawprintgames/gachapet/internal/collection"
	"github.com/pawprintgames/gachapet/internal/concurrency"
	"github.com/pawprintgames/gachapet/internal/config"
	"github.com/pawprintgames/gachapet/internal/content"
	"github.com/pawprintgames/gachapet/internal/database"
	"github.com/pawprintgames/gachapet/internal/domain"
	"github.com/pawprintgames/gachapet/internal/enhance"
	"github.com/pawprintgames/gachapet/internal/expedition"
	"github.com/pawprintgames/gachapet/internal/gacha"
	"github.com/pawprintgames/gachapet/internal/progress"
	"github.com/pawprintgames/gachapet/internal/quest"
	"github.com/pawprintgames/gachapet/internal/reward"
	"github.com/pawprintgames/gachapet/internal/server"
	"github.com/pawprintgames/gachapet/internal/shop"
	"github.com/pawprintgames/gachapet/internal/store"
	"github.com/pawprintgames/gachapet/internal/timewindow"
	"github.com/pawprintgames/gachapet/internal/tutorial"
	"github.com/pawprintgames/gachapet/internal/vitality"
	"github.com/pawprintgames/gachapet/internal/wallet"
)

const shutdownTimeout = 10 * time.Second

// deferredGranter breaks the construction cycle between the achievement and
// board services: achievements need a reward granter whose dice sink is the
// board, and the board needs the achievement service for its clear milestone.
type deferredGranter struct {
	Granter *reward.Granter
}

func (d *deferredGranter) Grant(ctx context.Context, playerID string, r domain.Reward) error {
	return d.Granter.Grant(ctx, playerID, r)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}
	initLogger(cfg)

	tables, err := content.Load(cfg.ContentPath)
	if err != nil {
		slog.Error("Failed to load content tables", "error", err)
		os.Exit(1)
	}
	slog.Info("Content tables loaded", "version", tables.Version, "roster_size", len(tables.Roster))

	if err := database.Migrate(context.Background(), cfg.GetDBConnString()); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	pool, err := database.NewPool(cfg.GetDBConnString(),
		database.DefaultMaxConnections, database.DefaultMaxIdleTime, database.DefaultMaxLifetime)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	entityStore := store.NewCached(store.NewPostgres(pool),
		cfg.CacheSize, time.Duration(cfg.CacheTTLSec)*time.Second)
	locks := concurrency.NewLockManager()
	clock := timewindow.NewRealClock()

	// Services, in dependency order. The collection/expedition busy check is
	// attached after both sides exist.
	walletService := wallet.NewService(entityStore, locks)
	collectionService := collection.NewService(entityStore, locks, tables)

	achievementGranterLater := &deferredGranter{}
	achievementService := achievement.NewService(entityStore, locks, tables, achievementGranterLater)

	enhanceService := enhance.NewService(entityStore, locks, tables, achievementService)
	vitalityService := vitality.NewService(entityStore, locks, clock, enhanceService)
	gachaService := gacha.NewService(tables, walletService, collectionService, enhanceService, achievementService)

	expeditionService := expedition.NewService(entityStore, locks, clock, tables,
		collectionService, enhanceService, walletService, achievementService)
	collectionService.SetBusyChecker(expeditionService)

	boardService := board.NewService(entityStore, locks, tables, walletService, achievementService)
	granter := reward.NewGranter(walletService, boardService)
	achievementGranterLater.Granter = granter

	questService := quest.NewService(entityStore, locks, clock, tables, granter)
	tutorialService := tutorial.NewService(entityStore, locks, collectionService)
	tracker := progress.NewTracker(questService, tutorialService)

	attendanceService := attendance.NewService(entityStore, locks, clock, tables, granter, tracker)
	shopService := shop.NewService(entityStore, locks, clock, tables, walletService, granter, collectionService)

	srv := server.NewServer(cfg.Port, pool, server.Services{
		Wallet:      walletService,
		Collection:  collectionService,
		Vitality:    vitalityService,
		Gacha:       gachaService,
		Enhance:     enhanceService,
		Expedition:  expeditionService,
		Quest:       questService,
		Attendance:  attendanceService,
		Shop:        shopService,
		Achievement: achievementService,
		Tutorial:    tutorialService,
		Board:       boardService,
		Tracker:     tracker,
	})

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	case sig := <-stop:
		slog.Info("Shutting down", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Stop(ctx); err != nil {
			slog.Error("Graceful shutdown failed", "error", err)
			os.Exit(1)
		}
	}
}
