package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case []Player:
		for i, p := range v {
			if i > 0 {
				fmt.Println()
			}
			o.printPlayer(p)
		}
	case Game:
		o.printGame(v)
	case []Game:
		for _, g := range v {
			o.printGame(g)
		}
	case HealthResult:
		fmt.Printf("Status: %s\n", v.Status)
	case OKResult:
		fmt.Printf("OK: %t\n", v.OK)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Game response type (matches API)
type Game struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Code  string `json:"code"`
}

// MembershipRecord response type
type MembershipRecord struct {
	GameID       string    `json:"game_id"`
	Title        string    `json:"title"`
	Code         string    `json:"code"`
	RegisteredAt time.Time `json:"registered_at"`
}

// Player response type
type Player struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Email       string             `json:"email,omitempty"`
	JoinedGames []MembershipRecord `json:"joined_games"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

// OKResult response type
type OKResult struct {
	OK bool `json:"ok"`
}

func (o *Output) printGame(g Game) {
	fmt.Printf("%s  %s (%s)\n", g.ID, g.Title, g.Code)
}

func (o *Output) printPlayer(p Player) {
	fmt.Printf("Player: %s (%s)\n", p.Name, p.ID)
	if p.Email != "" {
		fmt.Printf("Email: %s\n", p.Email)
	}
	fmt.Printf("Joined Games (%d):\n", len(p.JoinedGames))
	for _, g := range p.JoinedGames {
		fmt.Printf("  - %s (%s) joined %s\n", g.Title, g.Code, g.RegisteredAt.Format(time.RFC3339))
	}
}
