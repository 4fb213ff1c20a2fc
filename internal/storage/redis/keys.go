package redis

import (
	"fmt"

	"github.com/tomasrivera/gaming-platform/internal/model"
)

// Key prefix for all platform data
const keyPrefix = "gamehub"

// Key generation functions for each entity type

// gameKey returns the Redis key for a Game
func gameKey(id model.GameID) string {
	return fmt.Sprintf("%s:game:%s", keyPrefix, id)
}

// gameCodeIndexKey returns the Redis key for the code -> game_id index
func gameCodeIndexKey(code string) string {
	return fmt.Sprintf("%s:idx:game_code:%s", keyPrefix, code)
}

// gamesIndexKey returns the Redis key for the SET of all game keys
func gamesIndexKey() string {
	return fmt.Sprintf("%s:idx:games", keyPrefix)
}

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// playersIndexKey returns the Redis key for the SET of all player keys
func playersIndexKey() string {
	return fmt.Sprintf("%s:idx:players", keyPrefix)
}
