package request

// CreateGameRequest is the request body for creating or updating a game
type CreateGameRequest struct {
	Title string `json:"title"`
	Code  string `json:"code"`
}

// CreatePlayerRequest is the request body for creating or updating a player
type CreatePlayerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// JoinRequest is the request body for joining a game
type JoinRequest struct {
	GameID string `json:"game_id"`
}

// LeaveRequest is the request body for leaving a game. Either the game
// id or its code may be supplied.
type LeaveRequest struct {
	GameID string `json:"game_id,omitempty"`
	Code   string `json:"code,omitempty"`
}
