package storage

import (
	"context"

	"github.com/tomasrivera/gaming-platform/internal/model"
)

// Storage defines the interface for data persistence.
//
// Implementations must make AppendMembership's duplicate check and
// append a single atomic step per player document, and must reject
// game writes whose code collides with another game's code.
type Storage interface {
	// Game operations
	CreateGame(ctx context.Context, game *model.Game) error
	UpdateGame(ctx context.Context, game *model.Game) error
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)
	GetGameByCode(ctx context.Context, code string) (*model.Game, error)
	ListGames(ctx context.Context) ([]*model.Game, error)
	DeleteGame(ctx context.Context, id model.GameID) error

	// Player operations
	CreatePlayer(ctx context.Context, player *model.Player) error
	// UpdatePlayerProfile updates name and email, leaving the
	// membership ledger untouched.
	UpdatePlayerProfile(ctx context.Context, id model.PlayerID, name, email string) (*model.Player, error)
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	// ListPlayers filters by case-insensitive substring match on name;
	// an empty filter returns all players.
	ListPlayers(ctx context.Context, nameFilter string) ([]*model.Player, error)
	DeletePlayer(ctx context.Context, id model.PlayerID) error

	// Membership ledger operations
	//
	// AppendMembership appends the record to the player's ledger only
	// if no record with the same GameID exists, returning
	// model.ErrAlreadyJoined otherwise.
	AppendMembership(ctx context.Context, playerID model.PlayerID, rec model.MembershipRecord) (*model.Player, error)
	// RemoveMembership removes any ledger record matching gameID. The
	// bool reports whether a record was actually removed; removing an
	// absent record is a no-op, not an error.
	RemoveMembership(ctx context.Context, playerID model.PlayerID, gameID model.GameID) (*model.Player, bool, error)
}
