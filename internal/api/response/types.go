package response

import (
	"time"

	"github.com/tomasrivera/gaming-platform/internal/model"
)

// Game represents a game in API responses
type Game struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Code  string `json:"code"`
}

// GameFromModel converts a model.Game to a response Game
func GameFromModel(g *model.Game) Game {
	return Game{
		ID:    string(g.ID),
		Title: g.Title,
		Code:  g.Code,
	}
}

// GamesFromModel converts a slice of games
func GamesFromModel(games []*model.Game) []Game {
	out := make([]Game, len(games))
	for i, g := range games {
		out[i] = GameFromModel(g)
	}
	return out
}

// MembershipRecord represents a ledger entry in API responses
type MembershipRecord struct {
	GameID       string    `json:"game_id"`
	Title        string    `json:"title"`
	Code         string    `json:"code"`
	RegisteredAt time.Time `json:"registered_at"`
}

// MembershipRecordFromModel converts model.MembershipRecord
func MembershipRecordFromModel(r model.MembershipRecord) MembershipRecord {
	return MembershipRecord{
		GameID:       string(r.GameID),
		Title:        r.Title,
		Code:         r.Code,
		RegisteredAt: r.RegisteredAt,
	}
}

// Player represents a player in API responses
type Player struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Email       string             `json:"email,omitempty"`
	JoinedGames []MembershipRecord `json:"joined_games"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	ledger := make([]MembershipRecord, len(p.JoinedGames))
	for i, r := range p.JoinedGames {
		ledger[i] = MembershipRecordFromModel(r)
	}
	return Player{
		ID:          string(p.ID),
		Name:        p.Name,
		Email:       p.Email,
		JoinedGames: ledger,
	}
}

// PlayersFromModel converts a slice of players
func PlayersFromModel(players []*model.Player) []Player {
	out := make([]Player, len(players))
	for i, p := range players {
		out[i] = PlayerFromModel(p)
	}
	return out
}

// OK is the response for destructive operations
type OK struct {
	OK bool `json:"ok"`
}
