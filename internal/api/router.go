package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tomasrivera/gaming-platform/internal/api/handler"
	"github.com/tomasrivera/gaming-platform/internal/api/middleware"
	"github.com/tomasrivera/gaming-platform/internal/seed"
	"github.com/tomasrivera/gaming-platform/internal/services/game"
	"github.com/tomasrivera/gaming-platform/internal/services/membership"
	"github.com/tomasrivera/gaming-platform/internal/services/player"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger            *slog.Logger
	PlayerService     *player.Service
	GameService       *game.Service
	MembershipService *membership.Service
	Seeder            *seed.Seeder
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	playerHandler := handler.NewPlayerHandler(cfg.PlayerService, cfg.MembershipService)
	gameHandler := handler.NewGameHandler(cfg.GameService)
	seedHandler := handler.NewSeedHandler(cfg.Seeder)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Recovery(cfg.Logger))
	api.Use(middleware.Logging(cfg.Logger))

	// Game catalog
	api.HandleFunc("/games", gameHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/games", gameHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/games/{id}", gameHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/games/{id}", gameHandler.Update).Methods(http.MethodPut)
	api.HandleFunc("/games/{id}", gameHandler.Delete).Methods(http.MethodDelete)

	// Players and their membership ledgers
	api.HandleFunc("/players", playerHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/players", playerHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/players/{id}", playerHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/players/{id}", playerHandler.Update).Methods(http.MethodPut)
	api.HandleFunc("/players/{id}", playerHandler.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/players/{id}/join", playerHandler.Join).Methods(http.MethodPost)
	api.HandleFunc("/players/{id}/leave", playerHandler.Leave).Methods(http.MethodPost)

	// Demo data
	api.HandleFunc("/seed", seedHandler.Seed).Methods(http.MethodPost)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
