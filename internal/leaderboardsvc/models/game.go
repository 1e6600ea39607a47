package models

import "time"

const (
	GameStatusPending = "pending"
	GameStatusStarted = "started"
	GameStatusEnded   = "ended"
)

type Game struct {
	ID        int64      `json:"id"`
	Title     string     `json:"title"`
	Status    string     `json:"status"` // 'pending', 'started', 'ended'
	StartedAt *time.Time `json:"started_at"`
	EndedAt   *time.Time `json:"ended_at"`
	CreatedAt time.Time  `json:"created_at"`
}

// Joinable reports whether new sessions may be opened on the game.
func (g *Game) Joinable() bool {
	return g.Status == GameStatusStarted && g.EndedAt == nil
}

// GameListItem is one row of the game listing, with its live player count.
type GameListItem struct {
	ID            int64  `json:"id"`
	Title         string `json:"title"`
	Status        string `json:"status"`
	ActivePlayers int64  `json:"active_players"`
}
