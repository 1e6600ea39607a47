package store

import (
	"context"
	"time"

	"github.com/avvvet/leaderboard-services/internal/leaderboardsvc/models"
)

type GameStore struct {
	db DBTX
}

func NewGameStore(db DBTX) *GameStore {
	return &GameStore{db: db}
}

const gameColumns = `id, title, status, started_at, ended_at, created_at`

func scanGame(row interface{ Scan(dest ...any) error }) (*models.Game, error) {
	game := &models.Game{}
	err := row.Scan(
		&game.ID,
		&game.Title,
		&game.Status,
		&game.StartedAt,
		&game.EndedAt,
		&game.CreatedAt,
	)
	return game, err
}

func (s *GameStore) CreateGame(ctx context.Context, title string) (*models.Game, error) {
	query := `
		INSERT INTO games (title, status)
		VALUES ($1, 'pending')
		RETURNING ` + gameColumns

	game, err := scanGame(s.db.QueryRow(ctx, query, title))
	if err != nil {
		return nil, mapError("could not create game", err)
	}
	return game, nil
}

func (s *GameStore) GetGameByID(ctx context.Context, gameID int64) (*models.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE id = $1`

	game, err := scanGame(s.db.QueryRow(ctx, query, gameID))
	if err != nil {
		return nil, mapError("failed to get game by ID", err)
	}
	return game, nil
}

// GetGameByIDForUpdate locks the game row until the surrounding
// transaction finishes, serialising status changes and joins.
func (s *GameStore) GetGameByIDForUpdate(ctx context.Context, gameID int64) (*models.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE id = $1 FOR UPDATE`

	game, err := scanGame(s.db.QueryRow(ctx, query, gameID))
	if err != nil {
		return nil, mapError("failed to lock game", err)
	}
	return game, nil
}

// ListGamesWithActivePlayers returns every game with its count of sessions
// that have not exited, ordered by id.
func (s *GameStore) ListGamesWithActivePlayers(ctx context.Context) ([]*models.GameListItem, error) {
	query := `
		SELECT g.id, g.title, g.status, COALESCE(a.active_players, 0)
		FROM games g
		LEFT JOIN (
			SELECT game_id, COUNT(*) AS active_players
			FROM game_sessions
			WHERE exited_at IS NULL
			GROUP BY game_id
		) a ON a.game_id = g.id
		ORDER BY g.id
	`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, mapError("failed to list games", err)
	}
	defer rows.Close()

	games := []*models.GameListItem{}
	for rows.Next() {
		var g models.GameListItem
		if err := rows.Scan(&g.ID, &g.Title, &g.Status, &g.ActivePlayers); err != nil {
			return nil, mapError("failed to scan game", err)
		}
		games = append(games, &g)
	}

	return games, rows.Err()
}

// StartGame moves a pending game to started. ErrNotFound means the game was
// not pending.
func (s *GameStore) StartGame(ctx context.Context, gameID int64, at time.Time) (*models.Game, error) {
	query := `
		UPDATE games SET status = 'started', started_at = $2
		WHERE id = $1 AND status = 'pending'
		RETURNING ` + gameColumns

	game, err := scanGame(s.db.QueryRow(ctx, query, gameID, at))
	if err != nil {
		return nil, mapError("could not start game", err)
	}
	return game, nil
}

// EndGame moves a started game to ended. ErrNotFound means the game was not
// started.
func (s *GameStore) EndGame(ctx context.Context, gameID int64, at time.Time) (*models.Game, error) {
	query := `
		UPDATE games SET status = 'ended', ended_at = $2
		WHERE id = $1 AND status = 'started'
		RETURNING ` + gameColumns

	game, err := scanGame(s.db.QueryRow(ctx, query, gameID, at))
	if err != nil {
		return nil, mapError("could not end game", err)
	}
	return game, nil
}
