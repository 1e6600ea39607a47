package store

import (
	"context"
	"time"

	"github.com/avvvet/leaderboard-services/internal/leaderboardsvc/models"
)

type GameSessionStore struct {
	db DBTX
}

func NewGameSessionStore(db DBTX) *GameSessionStore {
	return &GameSessionStore{db: db}
}

const sessionColumns = `id, game_id, contestant_id, joined_at, exited_at, score, upvotes`

func scanSession(row interface{ Scan(dest ...any) error }) (*models.GameSession, error) {
	gs := &models.GameSession{}
	err := row.Scan(
		&gs.ID,
		&gs.GameID,
		&gs.ContestantID,
		&gs.JoinedAt,
		&gs.ExitedAt,
		&gs.Score,
		&gs.Upvotes,
	)
	return gs, err
}

// CreateSession opens a new session. It fails with ErrUniqueViolation when
// the contestant already has an active session in the game
// (uniq_active_session partial index).
func (s *GameSessionStore) CreateSession(ctx context.Context, gameID, contestantID int64, joinedAt time.Time) (*models.GameSession, error) {
	query := `
		INSERT INTO game_sessions (game_id, contestant_id, joined_at)
		VALUES ($1, $2, $3)
		RETURNING ` + sessionColumns

	gs, err := scanSession(s.db.QueryRow(ctx, query, gameID, contestantID, joinedAt))
	if err != nil {
		return nil, mapError("failed to create game session", err)
	}
	return gs, nil
}

func (s *GameSessionStore) GetActiveSession(ctx context.Context, gameID, contestantID int64) (*models.GameSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM game_sessions
		WHERE game_id = $1 AND contestant_id = $2 AND exited_at IS NULL
		ORDER BY joined_at DESC, id DESC
		LIMIT 1
		FOR UPDATE`

	gs, err := scanSession(s.db.QueryRow(ctx, query, gameID, contestantID))
	if err != nil {
		return nil, mapError("failed to get active session", err)
	}
	return gs, nil
}

// GetLatestSession returns the contestant's active session in the game if
// there is one, otherwise the most recently joined one.
func (s *GameSessionStore) GetLatestSession(ctx context.Context, gameID, contestantID int64) (*models.GameSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM game_sessions
		WHERE game_id = $1 AND contestant_id = $2
		ORDER BY (exited_at IS NULL) DESC, joined_at DESC, id DESC
		LIMIT 1
		FOR UPDATE`

	gs, err := scanSession(s.db.QueryRow(ctx, query, gameID, contestantID))
	if err != nil {
		return nil, mapError("failed to get latest session", err)
	}
	return gs, nil
}

func (s *GameSessionStore) UpdateScore(ctx context.Context, sessionID int64, score float64) error {
	tag, err := s.db.Exec(ctx, `UPDATE game_sessions SET score = $2 WHERE id = $1`, sessionID, score)
	if err != nil {
		return mapError("failed to update score", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GameSessionStore) MarkExited(ctx context.Context, sessionID int64, at time.Time) error {
	tag, err := s.db.Exec(ctx, `UPDATE game_sessions SET exited_at = $2 WHERE id = $1 AND exited_at IS NULL`, sessionID, at)
	if err != nil {
		return mapError("failed to mark session exited", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// AddUpvote increments the session's upvote counter and returns the new
// value.
func (s *GameSessionStore) AddUpvote(ctx context.Context, sessionID int64) (int64, error) {
	var upvotes int64
	err := s.db.QueryRow(ctx, `UPDATE game_sessions SET upvotes = upvotes + 1 WHERE id = $1 RETURNING upvotes`, sessionID).Scan(&upvotes)
	if err != nil {
		return 0, mapError("failed to add upvote", err)
	}
	return upvotes, nil
}
