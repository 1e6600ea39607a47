package service

import (
	"context"

	"github.com/avvvet/leaderboard-services/internal/leaderboardsvc/models"
	"github.com/avvvet/leaderboard-services/internal/leaderboardsvc/store"
	"github.com/jackc/pgx/v5"
)

type LeaderboardService struct {
	db store.TxBeginner
}

func NewLeaderboardService(db store.TxBeginner) *LeaderboardService {
	return &LeaderboardService{db: db}
}

// Global ranks contestants by their total score over every session they
// ever played.
func (s *LeaderboardService) Global(ctx context.Context) ([]*models.LeaderboardEntry, error) {
	var entries []*models.LeaderboardEntry
	err := store.InTx(ctx, s.db, func(tx pgx.Tx) error {
		var err error
		entries, err = store.NewLeaderboardStore(tx).GlobalTop(ctx, store.LeaderboardLimit)
		return err
	})
	return entries, err
}

// ForGame ranks the active sessions of one game by score.
func (s *LeaderboardService) ForGame(ctx context.Context, gameID int64) ([]*models.LeaderboardEntry, error) {
	var entries []*models.LeaderboardEntry
	err := store.InTx(ctx, s.db, func(tx pgx.Tx) error {
		if _, err := store.NewGameStore(tx).GetGameByID(ctx, gameID); err != nil {
			return translate(err, "game")
		}

		var err error
		entries, err = store.NewLeaderboardStore(tx).GameTop(ctx, gameID, store.LeaderboardLimit)
		return err
	})
	return entries, err
}
