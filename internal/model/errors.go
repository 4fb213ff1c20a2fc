package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound = errors.New("player not found")

	// Game errors
	ErrGameNotFound   = errors.New("game not found")
	ErrGameCodeExists = errors.New("game code already exists")

	// Membership errors
	ErrAlreadyJoined = errors.New("player has already joined this game")

	// Validation errors
	ErrNameRequired  = errors.New("name is required")
	ErrTitleRequired = errors.New("title is required")
	ErrCodeRequired  = errors.New("code is required")
)
