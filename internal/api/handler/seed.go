package handler

import (
	"net/http"

	"github.com/tomasrivera/gaming-platform/internal/api/response"
	"github.com/tomasrivera/gaming-platform/internal/seed"
)

// SeedHandler handles the demo-data seed endpoint
type SeedHandler struct {
	seeder *seed.Seeder
}

// NewSeedHandler creates a new seed handler
func NewSeedHandler(seeder *seed.Seeder) *SeedHandler {
	return &SeedHandler{seeder: seeder}
}

// Seed handles POST /api/v1/seed
func (h *SeedHandler) Seed(w http.ResponseWriter, r *http.Request) {
	if err := h.seeder.Run(r.Context()); err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.OK{OK: true})
}
