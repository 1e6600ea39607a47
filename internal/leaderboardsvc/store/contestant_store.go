package store

import (
	"context"

	"github.com/avvvet/leaderboard-services/internal/leaderboardsvc/models"
)

type ContestantStore struct {
	db DBTX
}

func NewContestantStore(db DBTX) *ContestantStore {
	return &ContestantStore{db: db}
}

func (s *ContestantStore) CreateContestant(ctx context.Context, name string) (*models.Contestant, error) {
	query := `
		INSERT INTO contestants (name)
		VALUES ($1)
		RETURNING id, name, created_at
	`

	c := &models.Contestant{}
	err := s.db.QueryRow(ctx, query, name).Scan(&c.ID, &c.Name, &c.CreatedAt)
	if err != nil {
		return nil, mapError("could not create contestant", err)
	}

	return c, nil
}

func (s *ContestantStore) GetContestantByID(ctx context.Context, id int64) (*models.Contestant, error) {
	query := `
		SELECT id, name, created_at
		FROM contestants
		WHERE id = $1
	`

	c := &models.Contestant{}
	err := s.db.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.CreatedAt)
	if err != nil {
		return nil, mapError("failed to get contestant by ID", err)
	}

	return c, nil
}

func (s *ContestantStore) ListContestants(ctx context.Context) ([]*models.Contestant, error) {
	query := `
		SELECT id, name, created_at
		FROM contestants
		ORDER BY id
	`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, mapError("failed to list contestants", err)
	}
	defer rows.Close()

	contestants := []*models.Contestant{}
	for rows.Next() {
		var c models.Contestant
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, mapError("failed to scan contestant", err)
		}
		contestants = append(contestants, &c)
	}

	return contestants, rows.Err()
}

func (s *ContestantStore) UpdateContestantName(ctx context.Context, id int64, name string) (*models.Contestant, error) {
	query := `
		UPDATE contestants SET name = $2
		WHERE id = $1
		RETURNING id, name, created_at
	`

	c := &models.Contestant{}
	err := s.db.QueryRow(ctx, query, id, name).Scan(&c.ID, &c.Name, &c.CreatedAt)
	if err != nil {
		return nil, mapError("could not update contestant", err)
	}

	return c, nil
}

// DeleteContestant removes the contestant; its sessions go with it through
// the ON DELETE CASCADE foreign key.
func (s *ContestantStore) DeleteContestant(ctx context.Context, id int64) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM contestants WHERE id = $1`, id)
	if err != nil {
		return mapError("could not delete contestant", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
