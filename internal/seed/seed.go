package seed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tomasrivera/gaming-platform/internal/services/game"
	"github.com/tomasrivera/gaming-platform/internal/services/player"
	"github.com/tomasrivera/gaming-platform/internal/storage"
)

// Seeder wipes the store and loads the demo data set
type Seeder struct {
	storage       storage.Storage
	gameService   *game.Service
	playerService *player.Service
	logger        *slog.Logger
}

// New creates a new seeder
func New(storage storage.Storage, gameService *game.Service, playerService *player.Service, logger *slog.Logger) *Seeder {
	return &Seeder{
		storage:       storage,
		gameService:   gameService,
		playerService: playerService,
		logger:        logger,
	}
}

type seedGame struct {
	title, code string
}

type seedPlayer struct {
	name, email string
}

var demoGames = []seedGame{
	{"Battle Quest", "BQ101"},
	{"Space Raiders", "SR202"},
	{"Mystic Legends", "ML303"},
	{"Zombie Survival", "ZS404"},
	{"Racing Thunder", "RT505"},
}

var demoPlayers = []seedPlayer{
	{"Alex Rivera", "alex@example.com"},
	{"Jamie Chen", "jamie@example.com"},
	{"Morgan Lee", "morgan@example.com"},
}

// Run deletes all existing games and players, then loads the demo set
func (s *Seeder) Run(ctx context.Context) error {
	games, err := s.storage.ListGames(ctx)
	if err != nil {
		return fmt.Errorf("list games: %w", err)
	}
	for _, g := range games {
		if err := s.storage.DeleteGame(ctx, g.ID); err != nil {
			return fmt.Errorf("delete game %s: %w", g.ID, err)
		}
	}

	players, err := s.storage.ListPlayers(ctx, "")
	if err != nil {
		return fmt.Errorf("list players: %w", err)
	}
	for _, p := range players {
		if err := s.storage.DeletePlayer(ctx, p.ID); err != nil {
			return fmt.Errorf("delete player %s: %w", p.ID, err)
		}
	}

	for _, g := range demoGames {
		if _, err := s.gameService.Create(ctx, g.title, g.code); err != nil {
			return fmt.Errorf("seed game %s: %w", g.code, err)
		}
	}
	for _, p := range demoPlayers {
		if _, err := s.playerService.Create(ctx, p.name, p.email); err != nil {
			return fmt.Errorf("seed player %s: %w", p.name, err)
		}
	}

	s.logger.Info("seeded demo data",
		slog.Int("games", len(demoGames)),
		slog.Int("players", len(demoPlayers)),
	)
	return nil
}
