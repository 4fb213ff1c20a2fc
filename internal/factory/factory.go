package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/tomasrivera/gaming-platform/internal/dependencies/clock"
	"github.com/tomasrivera/gaming-platform/internal/seed"
	"github.com/tomasrivera/gaming-platform/internal/services/game"
	"github.com/tomasrivera/gaming-platform/internal/services/membership"
	"github.com/tomasrivera/gaming-platform/internal/services/player"
	"github.com/tomasrivera/gaming-platform/internal/storage"
	"github.com/tomasrivera/gaming-platform/internal/storage/memory"
	redisstorage "github.com/tomasrivera/gaming-platform/internal/storage/redis"
	sqlitestorage "github.com/tomasrivera/gaming-platform/internal/storage/sqlite"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
	StorageTypeSQLite = "sqlite"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock clock.Clock

	// Services
	PlayerService     *player.Service
	GameService       *game.Service
	MembershipService *membership.Service
	Seeder            *seed.Seeder
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory", "redis" or
	// "sqlite"). If empty, defaults to "memory".
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// SQLitePath is the database file path (required if StorageType is "sqlite")
	SQLitePath string
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	case StorageTypeSQLite:
		if cfg.SQLitePath == "" {
			return nil, errors.New("SQLitePath required when StorageType is sqlite")
		}
		sqliteStore, err := sqlitestorage.New(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		store = sqliteStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory', 'redis' or 'sqlite'")
	}

	return newWithDependencies(store, clock.New(), logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, logger *slog.Logger) *App {
	membershipService := membership.New(store, clk, logger)
	playerService := player.New(store, logger)
	gameService := game.New(store, membershipService, logger)
	seeder := seed.New(store, gameService, playerService, logger)

	return &App{
		Storage:           store,
		Clock:             clk,
		PlayerService:     playerService,
		GameService:       gameService,
		MembershipService: membershipService,
		Seeder:            seeder,
	}
}

// Close releases the storage backend if it holds external resources
func (a *App) Close() error {
	if closer, ok := a.Storage.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
