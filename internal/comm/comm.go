package comm

import "time"

const (
	EventGameCreated      = "game.created"
	EventGameStarted      = "game.started"
	EventGameEnded        = "game.ended"
	EventContestantJoined = "contestant.joined"
	EventContestantExited = "contestant.exited"
	EventScoreUpdated     = "score.updated"
	EventSessionUpvoted   = "session.upvoted"
)

// Event is the JSON envelope published for every game and session state
// change.
type Event struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	Source       string    `json:"source"` // service instance id
	GameID       int64     `json:"game_id"`
	ContestantID int64     `json:"contestant_id,omitempty"`
	SessionID    int64     `json:"session_id,omitempty"`
	Score        *float64  `json:"score,omitempty"`
	Upvotes      *int64    `json:"upvotes,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}
