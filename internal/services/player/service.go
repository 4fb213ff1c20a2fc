package player

import (
	"context"
	"log/slog"
	"sort"

	"github.com/google/uuid"

	"github.com/tomasrivera/gaming-platform/internal/model"
	"github.com/tomasrivera/gaming-platform/internal/storage"
)

// Service manages player records
type Service struct {
	storage storage.Storage
	logger  *slog.Logger
}

// New creates a new player service
func New(storage storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// Create registers a new player with an empty ledger. Email is optional.
func (s *Service) Create(ctx context.Context, name, email string) (*model.Player, error) {
	if name == "" {
		return nil, model.ErrNameRequired
	}

	player := &model.Player{
		ID:          model.PlayerID(uuid.NewString()),
		Name:        name,
		Email:       email,
		JoinedGames: []model.MembershipRecord{},
	}

	if err := s.storage.CreatePlayer(ctx, player); err != nil {
		return nil, err
	}
	return player, nil
}

// Update changes a player's name and email, leaving the ledger as-is
func (s *Service) Update(ctx context.Context, id model.PlayerID, name, email string) (*model.Player, error) {
	if name == "" {
		return nil, model.ErrNameRequired
	}
	return s.storage.UpdatePlayerProfile(ctx, id, name, email)
}

// Get retrieves a player by id
func (s *Service) Get(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	return s.storage.GetPlayer(ctx, id)
}

// List returns players sorted by name, optionally filtered by a
// case-insensitive substring match on name
func (s *Service) List(ctx context.Context, nameFilter string) ([]*model.Player, error) {
	players, err := s.storage.ListPlayers(ctx, nameFilter)
	if err != nil {
		return nil, err
	}
	sort.Slice(players, func(i, j int) bool {
		return players[i].Name < players[j].Name
	})
	return players, nil
}

// Delete removes a player. Deleting a player has no effect on games.
func (s *Service) Delete(ctx context.Context, id model.PlayerID) error {
	return s.storage.DeletePlayer(ctx, id)
}
