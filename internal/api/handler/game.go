package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tomasrivera/gaming-platform/internal/api/request"
	"github.com/tomasrivera/gaming-platform/internal/api/response"
	"github.com/tomasrivera/gaming-platform/internal/model"
	"github.com/tomasrivera/gaming-platform/internal/services/game"
)

// GameHandler handles game catalog endpoints
type GameHandler struct {
	gameService *game.Service
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameService *game.Service) *GameHandler {
	return &GameHandler{
		gameService: gameService,
	}
}

// List handles GET /api/v1/games
func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	games, err := h.gameService.List(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GamesFromModel(games))
}

// Get handles GET /api/v1/games/{id}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.GameID(mux.Vars(r)["id"])

	game, err := h.gameService.Get(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(game))
}

// Create handles POST /api/v1/games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	game, err := h.gameService.Create(r.Context(), req.Title, req.Code)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.GameFromModel(game))
}

// Update handles PUT /api/v1/games/{id}
func (h *GameHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := model.GameID(mux.Vars(r)["id"])

	var req request.CreateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	game, err := h.gameService.Update(r.Context(), id, req.Title, req.Code)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromModel(game))
}

// Delete handles DELETE /api/v1/games/{id}. The cascade that clears
// every player's ledger runs before the response is written.
func (h *GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := model.GameID(mux.Vars(r)["id"])

	if err := h.gameService.Delete(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.OK{OK: true})
}
