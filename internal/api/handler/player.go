package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/tomasrivera/gaming-platform/internal/api/request"
	"github.com/tomasrivera/gaming-platform/internal/api/response"
	"github.com/tomasrivera/gaming-platform/internal/model"
	"github.com/tomasrivera/gaming-platform/internal/services/membership"
	"github.com/tomasrivera/gaming-platform/internal/services/player"
)

// PlayerHandler handles player and membership endpoints
type PlayerHandler struct {
	playerService     *player.Service
	membershipService *membership.Service
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(playerService *player.Service, membershipService *membership.Service) *PlayerHandler {
	return &PlayerHandler{
		playerService:     playerService,
		membershipService: membershipService,
	}
}

// List handles GET /api/v1/players?name=
func (h *PlayerHandler) List(w http.ResponseWriter, r *http.Request) {
	players, err := h.playerService.List(r.Context(), r.URL.Query().Get("name"))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayersFromModel(players))
}

// Get handles GET /api/v1/players/{id}
func (h *PlayerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.PlayerID(mux.Vars(r)["id"])

	player, err := h.playerService.Get(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(player))
}

// Create handles POST /api/v1/players
func (h *PlayerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreatePlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	player, err := h.playerService.Create(r.Context(), req.Name, req.Email)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.PlayerFromModel(player))
}

// Update handles PUT /api/v1/players/{id}
func (h *PlayerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := model.PlayerID(mux.Vars(r)["id"])

	var req request.CreatePlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	player, err := h.playerService.Update(r.Context(), id, req.Name, req.Email)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(player))
}

// Delete handles DELETE /api/v1/players/{id}
func (h *PlayerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := model.PlayerID(mux.Vars(r)["id"])

	if err := h.playerService.Delete(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.OK{OK: true})
}

// Join handles POST /api/v1/players/{id}/join
func (h *PlayerHandler) Join(w http.ResponseWriter, r *http.Request) {
	id := model.PlayerID(mux.Vars(r)["id"])

	var req request.JoinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.GameID == "" {
		WriteError(w, NewInvalidRequestError("game_id is required"))
		return
	}

	player, err := h.membershipService.Join(r.Context(), id, model.GameID(req.GameID))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(player))
}

// Leave handles POST /api/v1/players/{id}/leave. Accepts the game id
// or, as a convenience, the game's code. Leaving a game the player
// never joined succeeds and returns the unchanged player.
func (h *PlayerHandler) Leave(w http.ResponseWriter, r *http.Request) {
	id := model.PlayerID(mux.Vars(r)["id"])

	var req request.LeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	var (
		player *model.Player
		err    error
	)
	switch {
	case req.GameID != "":
		player, err = h.membershipService.Leave(r.Context(), id, model.GameID(req.GameID))
	case req.Code != "":
		player, err = h.membershipService.LeaveByCode(r.Context(), id, req.Code)
	default:
		WriteError(w, NewInvalidRequestError("game_id or code is required"))
		return
	}
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PlayerFromModel(player))
}
