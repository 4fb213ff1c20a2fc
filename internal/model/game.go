package model

// GameID uniquely identifies a game across the system
type GameID string

// Game represents a game that players can join
type Game struct {
	ID    GameID
	Title string
	// Code is a short human-chosen token, unique across all games.
	// Uniqueness is enforced by the storage layer at write time.
	Code string
}
