package models

import "time"

// PopularityMetrics holds the five raw popularity inputs of one game.
type PopularityMetrics struct {
	GameID            int64   `json:"-"`
	YesterdayPlayers  int64   `json:"w1"` // distinct contestants who joined yesterday
	CurrentPlayers    int64   `json:"w2"` // active sessions
	Upvotes           int64   `json:"w3"`
	MaxSessionSeconds float64 `json:"w4"` // longest finished session joined yesterday
	YesterdaySessions int64   `json:"w5"`
}

type GameDetails struct {
	GameID    int64      `json:"game_id"`
	Title     string     `json:"title"`
	Status    string     `json:"status"`
	StartedAt *time.Time `json:"started_at"`
	EndedAt   *time.Time `json:"ended_at"`
	CreatedAt time.Time  `json:"created_at"`
	PopularityMetrics
	PopularityIndex float64 `json:"popularity_index"`
}
