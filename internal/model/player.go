package model

import "time"

// PlayerID uniquely identifies a player across the system
type PlayerID string

// Player represents a registered participant and carries their
// membership ledger
type Player struct {
	ID    PlayerID
	Name  string
	Email string // optional

	// JoinedGames holds at most one record per GameID. Entries are
	// created by Join and removed by Leave or a game-delete cascade.
	JoinedGames []MembershipRecord
}

// MembershipRecord is a snapshot of a game taken at join time.
// Title and Code do not track later edits to the source game; the
// staleness window is a deliberate read-performance trade-off.
type MembershipRecord struct {
	GameID       GameID
	Title        string
	Code         string
	RegisteredAt time.Time
}

// Membership returns the ledger record for the given game, or nil if
// the player has not joined it
func (p *Player) Membership(gameID GameID) *MembershipRecord {
	for i := range p.JoinedGames {
		if p.JoinedGames[i].GameID == gameID {
			return &p.JoinedGames[i]
		}
	}
	return nil
}
