package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/avvvet/leaderboard-services/internal/leaderboardsvc/config"
	"github.com/avvvet/leaderboard-services/internal/leaderboardsvc/models"
	"github.com/avvvet/leaderboard-services/internal/leaderboardsvc/service"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	createdAt = time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	gameCols  = []string{"id", "title", "status", "started_at", "ended_at", "created_at"}
)

func re(fragment string) string {
	return regexp.QuoteMeta(fragment)
}

func newTestServer(t *testing.T) (http.Handler, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	cfg := config.Default()
	cfg.DatabaseURL = "postgres://test"
	cfg.Debug = "true"

	h := NewHandler(cfg, mock,
		service.NewContestantService(mock),
		service.NewGameService(mock, nil),
		service.NewGameSessionService(mock, nil),
		service.NewLeaderboardService(mock),
	)
	return NewRouter(h), mock
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var rsp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rsp))
	return rsp
}

func TestRoot(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := do(t, srv, http.MethodGet, "/", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Welcome to the Game Leaderboard API!","debug":"true"}`, rec.Body.String())
}

func TestHealth(t *testing.T) {
	srv, mock := newTestServer(t)

	mock.ExpectPing()
	rec := do(t, srv, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	rec = do(t, srv, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestCreateContestant(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		setup          func(mock pgxmock.PgxPoolIface)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "created",
			body: `{"name":"ann"}`,
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin()
				mock.ExpectQuery(re("INSERT INTO contestants")).
					WithArgs("ann").
					WillReturnRows(pgxmock.NewRows([]string{"id", "name", "created_at"}).AddRow(int64(1), "ann", createdAt))
				mock.ExpectCommit()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"id":1,"name":"ann"}`,
		},
		{
			name:           "missing name",
			body:           `{}`,
			setup:          func(mock pgxmock.PgxPoolIface) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed body",
			body:           `{"name":`,
			setup:          func(mock pgxmock.PgxPoolIface) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, mock := newTestServer(t)
			tt.setup(mock)

			rec := do(t, srv, http.MethodPost, "/contestants/create", tt.body)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectedBody != "" {
				assert.JSONEq(t, tt.expectedBody, rec.Body.String())
			}
		})
	}
}

func TestGetContestantNotFound(t *testing.T) {
	srv, mock := newTestServer(t)

	mock.ExpectBegin()
	mock.ExpectQuery(re("FROM contestants")).
		WithArgs(int64(9)).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	rec := do(t, srv, http.MethodGet, "/contestants/9", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "contestant not found", decodeResponse(t, rec).Error)
}

func TestBadIDIsRejected(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := do(t, srv, http.MethodGet, "/contestants/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, srv, http.MethodPut, "/games/0/start", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListGames(t *testing.T) {
	srv, mock := newTestServer(t)

	mock.ExpectBegin()
	mock.ExpectQuery(re("FROM games g")).
		WillReturnRows(pgxmock.NewRows([]string{"id", "title", "status", "active_players"}).
			AddRow(int64(1), "Old", "ended", int64(0)).
			AddRow(int64(2), "Busy", "started", int64(4)).
			AddRow(int64(3), "Quiet", "started", int64(1)))
	mock.ExpectCommit()

	rec := do(t, srv, http.MethodGet, "/games/", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var games []models.GameListItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &games))
	require.Len(t, games, 3)
	assert.Equal(t, []int64{3, 2, 1}, []int64{games[0].ID, games[1].ID, games[2].ID})
}

func TestStartGameTwiceReturns400(t *testing.T) {
	srv, mock := newTestServer(t)

	mock.ExpectBegin()
	mock.ExpectQuery(re("FOR UPDATE")).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows(gameCols).AddRow(int64(1), "Chess", "started", &createdAt, (*time.Time)(nil), createdAt))
	mock.ExpectRollback()

	rec := do(t, srv, http.MethodPut, "/games/1/start", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "game already started or ended", decodeResponse(t, rec).Error)
}

func TestJoinPendingGameReturns400(t *testing.T) {
	srv, mock := newTestServer(t)

	mock.ExpectBegin()
	mock.ExpectQuery(re("FOR UPDATE")).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows(gameCols).AddRow(int64(1), "Chess", "pending", (*time.Time)(nil), (*time.Time)(nil), createdAt))
	mock.ExpectQuery(re("FROM contestants")).
		WithArgs(int64(2)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "created_at"}).AddRow(int64(2), "bob", createdAt))
	mock.ExpectRollback()

	rec := do(t, srv, http.MethodPost, "/games/1/contestants/2/join", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "game can not be joined", decodeResponse(t, rec).Error)
}

func TestUpdateScoreValidation(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := do(t, srv, http.MethodPut, "/games/1/contestants/2/score", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, srv, http.MethodPut, "/games/1/contestants/2/score?score=ten", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateScore(t *testing.T) {
	srv, mock := newTestServer(t)

	mock.ExpectBegin()
	mock.ExpectQuery(re("ORDER BY (exited_at IS NULL) DESC")).
		WithArgs(int64(1), int64(2)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "game_id", "contestant_id", "joined_at", "exited_at", "score", "upvotes"}).
			AddRow(int64(5), int64(1), int64(2), createdAt, (*time.Time)(nil), 0.0, int64(0)))
	mock.ExpectExec(re("UPDATE game_sessions SET score = $2")).
		WithArgs(int64(5), 17.25).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectCommit()

	rec := do(t, srv, http.MethodPut, "/games/1/contestants/2/score?score=17.25", "")

	require.Equal(t, http.StatusOK, rec.Code)
	rsp := decodeResponse(t, rec)
	assert.Equal(t, "Score updated", rsp.Message)
}

func TestStoreErrorReturns500(t *testing.T) {
	srv, mock := newTestServer(t)

	mock.ExpectBegin()
	mock.ExpectQuery(re("SUM(gs.score)")).
		WillReturnError(errors.New("relation \"game_sessions\" does not exist"))
	mock.ExpectRollback()

	rec := do(t, srv, http.MethodGet, "/leaderboard/", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, decodeResponse(t, rec).Error, "Database error")
}

func TestGlobalLeaderboard(t *testing.T) {
	srv, mock := newTestServer(t)

	mock.ExpectBegin()
	mock.ExpectQuery(re("SUM(gs.score)")).
		WithArgs(100).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "total_score"}).
			AddRow(int64(2), "bob", 40.0).
			AddRow(int64(1), "ann", 15.5))
	mock.ExpectCommit()

	rec := do(t, srv, http.MethodGet, "/leaderboard/", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"id":2,"name":"bob","score":40},{"id":1,"name":"ann","score":15.5}]`, rec.Body.String())
}

func TestGameDetailsNotFound(t *testing.T) {
	srv, mock := newTestServer(t)

	mock.ExpectBegin()
	mock.ExpectQuery(re("FROM games WHERE id = $1")).
		WithArgs(int64(3)).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectRollback()

	rec := do(t, srv, http.MethodGet, "/games/3/details", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "game not found", decodeResponse(t, rec).Error)
}

func TestCORSPreflight(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/games/", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}
