package store

import (
	"context"
	"time"

	"github.com/avvvet/leaderboard-services/internal/leaderboardsvc/models"
)

type PopularityStore struct {
	db DBTX
}

func NewPopularityStore(db DBTX) *PopularityStore {
	return &PopularityStore{db: db}
}

// MetricsByGame computes the five popularity aggregates for every game that
// has at least one session. day is the UTC calendar date treated as
// "yesterday".
func (s *PopularityStore) MetricsByGame(ctx context.Context, day time.Time) ([]models.PopularityMetrics, error) {
	query := `
		SELECT
			game_id,
			COUNT(DISTINCT contestant_id) FILTER (WHERE joined_at::date = $1::date),
			COUNT(*) FILTER (WHERE exited_at IS NULL),
			COALESCE(SUM(upvotes), 0),
			COALESCE(MAX(EXTRACT(EPOCH FROM (exited_at - joined_at)))
				FILTER (WHERE joined_at::date = $1::date AND exited_at IS NOT NULL), 0)::float8,
			COUNT(*) FILTER (WHERE joined_at::date = $1::date)
		FROM game_sessions
		GROUP BY game_id
		ORDER BY game_id
	`

	rows, err := s.db.Query(ctx, query, day.UTC().Format(time.DateOnly))
	if err != nil {
		return nil, mapError("failed to aggregate popularity metrics", err)
	}
	defer rows.Close()

	var metrics []models.PopularityMetrics
	for rows.Next() {
		var m models.PopularityMetrics
		if err := rows.Scan(
			&m.GameID,
			&m.YesterdayPlayers,
			&m.CurrentPlayers,
			&m.Upvotes,
			&m.MaxSessionSeconds,
			&m.YesterdaySessions,
		); err != nil {
			return nil, mapError("failed to scan popularity metrics", err)
		}
		metrics = append(metrics, m)
	}

	return metrics, rows.Err()
}
