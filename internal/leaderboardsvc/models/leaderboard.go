package models

// LeaderboardEntry is a contestant with a score; for the global board the
// score is the total across every session.
type LeaderboardEntry struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}
