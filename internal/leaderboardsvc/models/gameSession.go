package models

import "time"

type GameSession struct {
	ID           int64      `json:"id"`            // Primary key
	GameID       int64      `json:"game_id"`       // FK to games(id)
	ContestantID int64      `json:"contestant_id"` // FK to contestants(id)
	JoinedAt     time.Time  `json:"joined_at"`
	ExitedAt     *time.Time `json:"exited_at"` // nil while the session is active
	Score        float64    `json:"score"`
	Upvotes      int64      `json:"upvotes"`
}

func (s *GameSession) Active() bool {
	return s.ExitedAt == nil
}
