package store

import (
	"context"

	"github.com/avvvet/leaderboard-services/internal/leaderboardsvc/models"
)

const LeaderboardLimit = 100

type LeaderboardStore struct {
	db DBTX
}

func NewLeaderboardStore(db DBTX) *LeaderboardStore {
	return &LeaderboardStore{db: db}
}

// GlobalTop sums every session score per contestant, active and exited,
// across all games.
func (s *LeaderboardStore) GlobalTop(ctx context.Context, limit int) ([]*models.LeaderboardEntry, error) {
	query := `
		SELECT c.id, c.name, COALESCE(SUM(gs.score), 0) AS total_score
		FROM game_sessions gs
		JOIN contestants c ON c.id = gs.contestant_id
		GROUP BY c.id, c.name
		ORDER BY total_score DESC, c.id ASC
		LIMIT $1
	`
	return s.queryEntries(ctx, "failed to get global leaderboard", query, limit)
}

// GameTop lists one row per active session of the game. Exited sessions are
// never included.
func (s *LeaderboardStore) GameTop(ctx context.Context, gameID int64, limit int) ([]*models.LeaderboardEntry, error) {
	query := `
		SELECT c.id, c.name, gs.score
		FROM game_sessions gs
		JOIN contestants c ON c.id = gs.contestant_id
		WHERE gs.game_id = $1 AND gs.exited_at IS NULL
		ORDER BY gs.score DESC, gs.id ASC
		LIMIT $2
	`
	return s.queryEntries(ctx, "failed to get game leaderboard", query, gameID, limit)
}

func (s *LeaderboardStore) queryEntries(ctx context.Context, op, query string, args ...any) ([]*models.LeaderboardEntry, error) {
	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(op, err)
	}
	defer rows.Close()

	entries := []*models.LeaderboardEntry{}
	for rows.Next() {
		var e models.LeaderboardEntry
		if err := rows.Scan(&e.ID, &e.Name, &e.Score); err != nil {
			return nil, mapError(op, err)
		}
		entries = append(entries, &e)
	}

	return entries, rows.Err()
}
