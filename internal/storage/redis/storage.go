package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tomasrivera/gaming-platform/internal/model"
	"github.com/tomasrivera/gaming-platform/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Game operations

func (s *Storage) CreateGame(ctx context.Context, game *model.Game) error {
	data, err := json.Marshal(game)
	if err != nil {
		return err
	}

	// Reserve the code first; SETNX makes the uniqueness check atomic
	reserved, err := s.client.SetNX(ctx, gameCodeIndexKey(game.Code), string(game.ID), 0).Result()
	if err != nil {
		return err
	}
	if !reserved {
		return model.ErrGameCodeExists
	}

	key := gameKey(game.ID)
	pipe := s.client.Pipeline()
	pipe.Set(ctx, key, data, 0)
	pipe.SAdd(ctx, gamesIndexKey(), key)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) UpdateGame(ctx context.Context, game *model.Game) error {
	key := gameKey(game.ID)
	codeKey := gameCodeIndexKey(game.Code)

	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return model.ErrGameNotFound
			}
			return err
		}

		var existing model.Game
		if err := json.Unmarshal(data, &existing); err != nil {
			return err
		}

		if existing.Code != game.Code {
			owner, err := tx.Get(ctx, codeKey).Result()
			if err != nil && !errors.Is(err, redis.Nil) {
				return err
			}
			if err == nil && owner != string(game.ID) {
				return model.ErrGameCodeExists
			}
		}

		updated, err := json.Marshal(game)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if existing.Code != game.Code {
				pipe.Del(ctx, gameCodeIndexKey(existing.Code))
				pipe.Set(ctx, codeKey, string(game.ID), 0)
			}
			pipe.Set(ctx, key, updated, 0)
			return nil
		})
		return err
	}

	// Watching the code index key as well makes two updates racing for
	// the same free code serialize: the loser retries, sees the new
	// owner, and fails with ErrGameCodeExists.
	return s.retryTx(ctx, txf, key, codeKey)
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	data, err := s.client.Get(ctx, gameKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrGameNotFound
		}
		return nil, err
	}

	var game model.Game
	if err := json.Unmarshal(data, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

func (s *Storage) GetGameByCode(ctx context.Context, code string) (*model.Game, error) {
	id, err := s.client.Get(ctx, gameCodeIndexKey(code)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrGameNotFound
		}
		return nil, err
	}

	return s.GetGame(ctx, model.GameID(id))
}

func (s *Storage) ListGames(ctx context.Context) ([]*model.Game, error) {
	keys, err := s.client.SMembers(ctx, gamesIndexKey()).Result()
	if err != nil {
		return nil, err
	}

	if len(keys) == 0 {
		return []*model.Game{}, nil
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	games := make([]*model.Game, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue // Index entry may outlive a deleted game briefly
		}
		var game model.Game
		if err := json.Unmarshal([]byte(val.(string)), &game); err != nil {
			continue // Skip invalid data
		}
		games = append(games, &game)
	}

	return games, nil
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) error {
	game, err := s.GetGame(ctx, id)
	if err != nil {
		return err
	}

	key := gameKey(id)
	pipe := s.client.Pipeline()
	pipe.Del(ctx, key)
	pipe.Del(ctx, gameCodeIndexKey(game.Code))
	pipe.SRem(ctx, gamesIndexKey(), key)
	_, err = pipe.Exec(ctx)
	return err
}

// Player operations

func (s *Storage) CreatePlayer(ctx context.Context, player *model.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}

	key := playerKey(player.ID)
	pipe := s.client.Pipeline()
	pipe.Set(ctx, key, data, 0)
	pipe.SAdd(ctx, playersIndexKey(), key)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) UpdatePlayerProfile(ctx context.Context, id model.PlayerID, name, email string) (*model.Player, error) {
	var result *model.Player

	err := s.updatePlayer(ctx, id, func(player *model.Player) error {
		player.Name = name
		player.Email = email
		result = player
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	data, err := s.client.Get(ctx, playerKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var player model.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *Storage) ListPlayers(ctx context.Context, nameFilter string) ([]*model.Player, error) {
	keys, err := s.client.SMembers(ctx, playersIndexKey()).Result()
	if err != nil {
		return nil, err
	}

	if len(keys) == 0 {
		return []*model.Player{}, nil
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}

	filter := strings.ToLower(nameFilter)
	players := make([]*model.Player, 0, len(values))
	for _, val := range values {
		if val == nil {
			continue
		}
		var player model.Player
		if err := json.Unmarshal([]byte(val.(string)), &player); err != nil {
			continue
		}
		if filter != "" && !strings.Contains(strings.ToLower(player.Name), filter) {
			continue
		}
		players = append(players, &player)
	}

	return players, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	key := playerKey(id)

	exists, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return err
	}
	if exists == 0 {
		return model.ErrPlayerNotFound
	}

	pipe := s.client.Pipeline()
	pipe.Del(ctx, key)
	pipe.SRem(ctx, playersIndexKey(), key)
	_, err = pipe.Exec(ctx)
	return err
}

// Membership ledger operations

func (s *Storage) AppendMembership(ctx context.Context, playerID model.PlayerID, rec model.MembershipRecord) (*model.Player, error) {
	var result *model.Player

	err := s.updatePlayer(ctx, playerID, func(player *model.Player) error {
		if player.Membership(rec.GameID) != nil {
			return model.ErrAlreadyJoined
		}
		player.JoinedGames = append(player.JoinedGames, rec)
		result = player
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *Storage) RemoveMembership(ctx context.Context, playerID model.PlayerID, gameID model.GameID) (*model.Player, bool, error) {
	var (
		result  *model.Player
		removed bool
	)

	err := s.updatePlayer(ctx, playerID, func(player *model.Player) error {
		kept := player.JoinedGames[:0]
		for _, r := range player.JoinedGames {
			if r.GameID == gameID {
				removed = true
				continue
			}
			kept = append(kept, r)
		}
		player.JoinedGames = kept
		result = player
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return result, removed, nil
}

// updatePlayer applies mutate to the player document inside an
// optimistic WATCH transaction, so concurrent updates to the same
// player cannot lose writes. The check-then-append join path relies on
// this for its atomicity.
func (s *Storage) updatePlayer(ctx context.Context, id model.PlayerID, mutate func(*model.Player) error) error {
	key := playerKey(id)

	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return model.ErrPlayerNotFound
			}
			return err
		}

		var player model.Player
		if err := json.Unmarshal(data, &player); err != nil {
			return err
		}

		if err := mutate(&player); err != nil {
			return err
		}

		updated, err := json.Marshal(&player)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, updated, 0)
			return nil
		})
		return err
	}

	return s.retryTx(ctx, txf, key)
}

// retryTx runs a WATCH transaction, retrying when a concurrent write
// invalidates the watched key
func (s *Storage) retryTx(ctx context.Context, txf func(*redis.Tx) error, keys ...string) error {
	retries := s.cfg.TxRetries
	if retries <= 0 {
		retries = 1
	}

	var err error
	for i := 0; i < retries; i++ {
		err = s.client.Watch(ctx, txf, keys...)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
	}
	return err
}
