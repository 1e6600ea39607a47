package service

import (
	"context"
	"strings"

	"github.com/avvvet/leaderboard-services/internal/leaderboardsvc/models"
	"github.com/avvvet/leaderboard-services/internal/leaderboardsvc/store"
	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"
)

// ContestantService struct represents the contestant service layer
type ContestantService struct {
	db store.TxBeginner
}

func NewContestantService(db store.TxBeginner) *ContestantService {
	return &ContestantService{db: db}
}

func (s *ContestantService) CreateContestant(ctx context.Context, name string) (*models.Contestant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalidInput("name must not be empty")
	}

	var c *models.Contestant
	err := store.InTx(ctx, s.db, func(tx pgx.Tx) error {
		var err error
		c, err = store.NewContestantStore(tx).CreateContestant(ctx, name)
		return translate(err, "contestant")
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{"contestant_id": c.ID, "name": c.Name}).Info("contestant registered")
	return c, nil
}

func (s *ContestantService) ListContestants(ctx context.Context) ([]*models.Contestant, error) {
	var contestants []*models.Contestant
	err := store.InTx(ctx, s.db, func(tx pgx.Tx) error {
		var err error
		contestants, err = store.NewContestantStore(tx).ListContestants(ctx)
		return err
	})
	return contestants, err
}

func (s *ContestantService) GetContestant(ctx context.Context, id int64) (*models.Contestant, error) {
	var c *models.Contestant
	err := store.InTx(ctx, s.db, func(tx pgx.Tx) error {
		var err error
		c, err = store.NewContestantStore(tx).GetContestantByID(ctx, id)
		return translate(err, "contestant")
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *ContestantService) RenameContestant(ctx context.Context, id int64, name string) (*models.Contestant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalidInput("name must not be empty")
	}

	var c *models.Contestant
	err := store.InTx(ctx, s.db, func(tx pgx.Tx) error {
		var err error
		c, err = store.NewContestantStore(tx).UpdateContestantName(ctx, id, name)
		return translate(err, "contestant")
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// DeleteContestant removes the contestant together with all of their
// sessions.
func (s *ContestantService) DeleteContestant(ctx context.Context, id int64) error {
	err := store.InTx(ctx, s.db, func(tx pgx.Tx) error {
		return translate(store.NewContestantStore(tx).DeleteContestant(ctx, id), "contestant")
	})
	if err != nil {
		return err
	}

	log.WithField("contestant_id", id).Info("contestant deleted")
	return nil
}
