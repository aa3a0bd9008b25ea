package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pawprintgames/gachapet/internal/achievement"
	"github.com/pawprintgames/gachapet/internal/attendance"
	"github.com/pawprintgames/gachapet/internal/board"
	"github.com/pawprintgames/gachapet/internal/collection"
	"github.com/pawprintgames/gachapet/internal/database"
	"github.com/pawprintgames/gachapet/internal/enhance"
	"github.com/pawprintgames/gachapet/internal/expedition"
	"github.com/pawprintgames/gachapet/internal/gacha"
	"github.com/pawprintgames/gachapet/internal/handler"
	"github.com/pawprintgames/gachapet/internal/metrics"
	"github.com/pawprintgames/gachapet/internal/progress"
	"github.com/pawprintgames/gachapet/internal/quest"
	"github.com/pawprintgames/gachapet/internal/shop"
	"github.com/pawprintgames/gachapet/internal/tutorial"
	"github.com/pawprintgames/gachapet/internal/vitality"
	"github.com/pawprintgames/gachapet/internal/wallet"
)

// Services collects everything the router dispatches to
type Services struct {
	Wallet      wallet.Service
	Collection  collection.Service
	Vitality    vitality.Service
	Gacha       gacha.Service
	Enhance     enhance.Service
	Expedition  expedition.Service
	Quest       quest.Service
	Attendance  attendance.Service
	Shop        shop.Service
	Achievement achievement.Service
	Tutorial    tutorial.Service
	Board       board.Service
	Tracker     *progress.Tracker
}

type Server struct {
	httpServer *http.Server
	dbPool     database.Pool
}

// NewServer creates a new Server instance with the full route table
func NewServer(port int, dbPool database.Pool, svc Services) *Server {
	r := chi.NewRouter()

	// Chi middleware executes in order defined (outermost to innermost)
	r.Use(SecurityHeadersMiddleware())
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))

	// Version endpoint (public, for deployment verification)
	r.Get("/version", handler.HandleVersion())

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	collectionHandler := handler.NewCollectionHandler(svc.Collection, svc.Tracker)
	vitalityHandler := handler.NewVitalityHandler(svc.Vitality, svc.Tracker)
	expeditionHandler := handler.NewExpeditionHandler(svc.Expedition, svc.Tracker)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/wallet", handler.HandleGetWallet(svc.Wallet))

		r.Post("/gacha/roll", handler.HandleRoll(svc.Gacha, svc.Tracker, svc.Tutorial))

		r.Route("/collection", func(r chi.Router) {
			r.Get("/", collectionHandler.HandleGet)
			r.Post("/select", collectionHandler.HandleSelect)
			r.Get("/skins", collectionHandler.HandleGetSkins)
			r.Post("/skins/equip", collectionHandler.HandleEquipSkin)
		})

		r.Route("/vitality", func(r chi.Router) {
			r.Get("/", vitalityHandler.HandleGet)
			r.Post("/", vitalityHandler.HandleWrite)
			r.Post("/tap", vitalityHandler.HandleTap)
		})

		r.Route("/enhance", func(r chi.Router) {
			r.Get("/", handler.HandleGetEnhancement(svc.Enhance))
			r.Post("/", handler.HandleEnhance(svc.Enhance, svc.Tracker))
			r.Get("/stats", handler.HandleGetStats(svc.Enhance))
		})

		r.Route("/expeditions", func(r chi.Router) {
			r.Get("/", expeditionHandler.HandleGetSlots)
			r.Post("/{slot}/start", expeditionHandler.HandleStart)
			r.Get("/{slot}/preview", expeditionHandler.HandlePreview)
			r.Post("/{slot}/collect", expeditionHandler.HandleCollect)
		})

		r.Route("/quests", func(r chi.Router) {
			r.Get("/", handler.HandleGetQuests(svc.Quest))
			r.Post("/claim", handler.HandleClaimQuest(svc.Quest))
		})

		r.Route("/attendance", func(r chi.Router) {
			r.Get("/", handler.HandleGetAttendance(svc.Attendance))
			r.Post("/claim", handler.HandleClaimAttendance(svc.Attendance))
		})

		r.Route("/shop", func(r chi.Router) {
			r.Get("/", handler.HandleGetCatalog(svc.Shop))
			r.Post("/buy", handler.HandleBuyItem(svc.Shop))
		})

		r.Route("/achievements", func(r chi.Router) {
			r.Get("/", handler.HandleGetAchievements(svc.Achievement))
			r.Post("/claim", handler.HandleClaimAchievement(svc.Achievement))
		})

		r.Route("/tutorial", func(r chi.Router) {
			r.Get("/", handler.HandleGetTutorial(svc.Tutorial))
			r.Post("/advance", handler.HandleAdvanceTutorial(svc.Tutorial))
		})

		r.Route("/board", func(r chi.Router) {
			r.Get("/", handler.HandleGetBoard(svc.Board))
			r.Post("/roll", handler.HandleRollBoard(svc.Board, svc.Tracker))
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		dbPool: dbPool,
	}
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
