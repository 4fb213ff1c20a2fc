package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/tomasrivera/gaming-platform/internal/model"
	"github.com/tomasrivera/gaming-platform/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	games     map[model.GameID]*model.Game
	codeIndex map[string]model.GameID
	players   map[model.PlayerID]*model.Player
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		games:     make(map[model.GameID]*model.Game),
		codeIndex: make(map[string]model.GameID),
		players:   make(map[model.PlayerID]*model.Player),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// copyGame returns a detached copy of a game
func copyGame(g *model.Game) *model.Game {
	c := *g
	return &c
}

// copyPlayer returns a detached copy of a player, including the ledger
func copyPlayer(p *model.Player) *model.Player {
	c := *p
	c.JoinedGames = make([]model.MembershipRecord, len(p.JoinedGames))
	copy(c.JoinedGames, p.JoinedGames)
	return &c
}

// Game operations

func (s *Storage) CreateGame(ctx context.Context, game *model.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.codeIndex[game.Code]; exists {
		return model.ErrGameCodeExists
	}
	s.games[game.ID] = copyGame(game)
	s.codeIndex[game.Code] = game.ID
	return nil
}

func (s *Storage) UpdateGame(ctx context.Context, game *model.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.games[game.ID]
	if !ok {
		return model.ErrGameNotFound
	}
	if owner, exists := s.codeIndex[game.Code]; exists && owner != game.ID {
		return model.ErrGameCodeExists
	}
	delete(s.codeIndex, existing.Code)
	s.games[game.ID] = copyGame(game)
	s.codeIndex[game.Code] = game.ID
	return nil
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.games[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return copyGame(game), nil
}

func (s *Storage) GetGameByCode(ctx context.Context, code string) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.codeIndex[code]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	game, ok := s.games[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return copyGame(game), nil
}

func (s *Storage) ListGames(ctx context.Context) ([]*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	games := make([]*model.Game, 0, len(s.games))
	for _, game := range s.games {
		games = append(games, copyGame(game))
	}
	return games, nil
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	game, ok := s.games[id]
	if !ok {
		return model.ErrGameNotFound
	}
	delete(s.codeIndex, game.Code)
	delete(s.games, id)
	return nil
}

// Player operations

func (s *Storage) CreatePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players[player.ID] = copyPlayer(player)
	return nil
}

func (s *Storage) UpdatePlayerProfile(ctx context.Context, id model.PlayerID, name, email string) (*model.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	player.Name = name
	player.Email = email
	return copyPlayer(player), nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return copyPlayer(player), nil
}

func (s *Storage) ListPlayers(ctx context.Context, nameFilter string) ([]*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	filter := strings.ToLower(nameFilter)
	players := make([]*model.Player, 0, len(s.players))
	for _, player := range s.players {
		if filter != "" && !strings.Contains(strings.ToLower(player.Name), filter) {
			continue
		}
		players = append(players, copyPlayer(player))
	}
	return players, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.players[id]; !ok {
		return model.ErrPlayerNotFound
	}
	delete(s.players, id)
	return nil
}

// Membership ledger operations

func (s *Storage) AppendMembership(ctx context.Context, playerID model.PlayerID, rec model.MembershipRecord) (*model.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	player, ok := s.players[playerID]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	if player.Membership(rec.GameID) != nil {
		return nil, model.ErrAlreadyJoined
	}
	player.JoinedGames = append(player.JoinedGames, rec)
	return copyPlayer(player), nil
}

func (s *Storage) RemoveMembership(ctx context.Context, playerID model.PlayerID, gameID model.GameID) (*model.Player, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	player, ok := s.players[playerID]
	if !ok {
		return nil, false, model.ErrPlayerNotFound
	}
	removed := false
	kept := player.JoinedGames[:0]
	for _, r := range player.JoinedGames {
		if r.GameID == gameID {
			removed = true
			continue
		}
		kept = append(kept, r)
	}
	player.JoinedGames = kept
	return copyPlayer(player), removed, nil
}
