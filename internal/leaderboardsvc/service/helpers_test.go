package service

import (
	"regexp"
	"testing"
	"time"

	"github.com/avvvet/leaderboard-services/internal/comm"
	"github.com/avvvet/leaderboard-services/internal/leaderboardsvc/models"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	fixedNow    = time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)
	gameCols    = []string{"id", "title", "status", "started_at", "ended_at", "created_at"}
	sessionCols = []string{"id", "game_id", "contestant_id", "joined_at", "exited_at", "score", "upvotes"}
)

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
	})
	return mock
}

func re(fragment string) string {
	return regexp.QuoteMeta(fragment)
}

func gameRow(g models.Game) *pgxmock.Rows {
	return pgxmock.NewRows(gameCols).AddRow(g.ID, g.Title, g.Status, g.StartedAt, g.EndedAt, g.CreatedAt)
}

func sessionRow(s models.GameSession) *pgxmock.Rows {
	return pgxmock.NewRows(sessionCols).AddRow(s.ID, s.GameID, s.ContestantID, s.JoinedAt, s.ExitedAt, s.Score, s.Upvotes)
}

func contestantRow(id int64, name string) *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "name", "created_at"}).AddRow(id, name, fixedNow)
}

func timePtr(t time.Time) *time.Time {
	return &t
}

type recordingPublisher struct {
	events []comm.Event
}

func (p *recordingPublisher) PublishEvent(evt comm.Event) {
	p.events = append(p.events, evt)
}

func (p *recordingPublisher) types() []string {
	var out []string
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}
