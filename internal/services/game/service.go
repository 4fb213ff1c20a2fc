package game

import (
	"context"
	"log/slog"
	"sort"

	"github.com/google/uuid"

	"github.com/tomasrivera/gaming-platform/internal/model"
	"github.com/tomasrivera/gaming-platform/internal/services/membership"
	"github.com/tomasrivera/gaming-platform/internal/storage"
)

// Service manages the game catalog
type Service struct {
	storage    storage.Storage
	membership *membership.Service
	logger     *slog.Logger
}

// New creates a new game service
func New(storage storage.Storage, membership *membership.Service, logger *slog.Logger) *Service {
	return &Service{
		storage:    storage,
		membership: membership,
		logger:     logger,
	}
}

func validate(title, code string) error {
	if title == "" {
		return model.ErrTitleRequired
	}
	if code == "" {
		return model.ErrCodeRequired
	}
	return nil
}

// Create registers a new game. The code must not collide with another
// game's code; the storage layer enforces this at write time.
func (s *Service) Create(ctx context.Context, title, code string) (*model.Game, error) {
	if err := validate(title, code); err != nil {
		return nil, err
	}

	game := &model.Game{
		ID:    model.GameID(uuid.NewString()),
		Title: title,
		Code:  code,
	}

	if err := s.storage.CreateGame(ctx, game); err != nil {
		return nil, err
	}
	return game, nil
}

// Update replaces a game's title and code. Existing membership records
// keep their join-time snapshot and are deliberately not rewritten.
func (s *Service) Update(ctx context.Context, id model.GameID, title, code string) (*model.Game, error) {
	if err := validate(title, code); err != nil {
		return nil, err
	}

	game := &model.Game{ID: id, Title: title, Code: code}
	if err := s.storage.UpdateGame(ctx, game); err != nil {
		return nil, err
	}
	return game, nil
}

// Get retrieves a game by id
func (s *Service) Get(ctx context.Context, id model.GameID) (*model.Game, error) {
	return s.storage.GetGame(ctx, id)
}

// List returns all games sorted by title
func (s *Service) List(ctx context.Context) ([]*model.Game, error) {
	games, err := s.storage.ListGames(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(games, func(i, j int) bool {
		return games[i].Title < games[j].Title
	})
	return games, nil
}

// Delete removes a game and then sweeps every player's ledger for
// records referencing it. The game record is deleted first: if the
// sweep ran first and the delete then failed, ledgers would have been
// purged for a game that still exists.
func (s *Service) Delete(ctx context.Context, id model.GameID) error {
	if err := s.storage.DeleteGame(ctx, id); err != nil {
		return err
	}

	modified, err := s.membership.CascadeOnGameDelete(ctx, id)
	if err != nil {
		// The game is gone but some ledgers may still reference it.
		// A re-run of the cascade for this id repairs the state.
		s.logger.Error("cascade after game delete failed",
			slog.String("game_id", string(id)),
			slog.String("error", err.Error()),
		)
		return err
	}

	s.logger.Info("game deleted",
		slog.String("game_id", string(id)),
		slog.Int("ledgers_modified", modified),
	)
	return nil
}
