package membership

import (
	"context"
	"log/slog"

	"github.com/tomasrivera/gaming-platform/internal/dependencies/clock"
	"github.com/tomasrivera/gaming-platform/internal/model"
	"github.com/tomasrivera/gaming-platform/internal/storage"
)

// Service manages the membership ledger embedded in each player:
// joining games, leaving them, and sweeping ledgers when a game is
// deleted.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new membership service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger,
	}
}

// Join adds a game to the player's ledger, snapshotting the game's
// current title and code. A second Join for the same pair fails with
// model.ErrAlreadyJoined; the duplicate check and the append are a
// single atomic store operation, so concurrent joins cannot both
// succeed.
func (s *Service) Join(ctx context.Context, playerID model.PlayerID, gameID model.GameID) (*model.Player, error) {
	if _, err := s.storage.GetPlayer(ctx, playerID); err != nil {
		return nil, err
	}
	game, err := s.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	rec := model.MembershipRecord{
		GameID:       game.ID,
		Title:        game.Title,
		Code:         game.Code,
		RegisteredAt: s.clock.Now(),
	}

	return s.storage.AppendMembership(ctx, playerID, rec)
}

// Leave removes the game from the player's ledger. Leaving a game the
// player never joined is a no-op that returns the unchanged player.
func (s *Service) Leave(ctx context.Context, playerID model.PlayerID, gameID model.GameID) (*model.Player, error) {
	player, _, err := s.storage.RemoveMembership(ctx, playerID, gameID)
	return player, err
}

// LeaveByCode resolves a game code to its id and leaves that game.
// Convenience form for callers holding the human-chosen token.
func (s *Service) LeaveByCode(ctx context.Context, playerID model.PlayerID, code string) (*model.Player, error) {
	game, err := s.storage.GetGameByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return s.Leave(ctx, playerID, game.ID)
}

// CascadeOnGameDelete removes every ledger record referencing gameID
// from every player, returning the number of ledgers modified. It is
// invoked after the game record itself has been deleted.
//
// The sweep updates each player independently with no global lock; a
// per-player failure is logged and skipped rather than aborting the
// sweep. Re-running the sweep for the same id is safe, since removing
// an absent record is a no-op.
func (s *Service) CascadeOnGameDelete(ctx context.Context, gameID model.GameID) (int, error) {
	players, err := s.storage.ListPlayers(ctx, "")
	if err != nil {
		return 0, err
	}

	modified := 0
	for _, player := range players {
		if player.Membership(gameID) == nil {
			continue
		}
		_, removed, err := s.storage.RemoveMembership(ctx, player.ID, gameID)
		if err != nil {
			s.logger.Warn("cascade sweep left a stale ledger entry",
				slog.String("game_id", string(gameID)),
				slog.String("player_id", string(player.ID)),
				slog.String("error", err.Error()),
			)
			continue
		}
		if removed {
			modified++
		}
	}

	return modified, nil
}
