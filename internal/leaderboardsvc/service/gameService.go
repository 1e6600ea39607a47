package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/avvvet/leaderboard-services/internal/comm"
	"github.com/avvvet/leaderboard-services/internal/leaderboardsvc/models"
	"github.com/avvvet/leaderboard-services/internal/leaderboardsvc/store"
	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"
)

type GameService struct {
	db     store.TxBeginner
	events EventPublisher
	now    func() time.Time
}

func NewGameService(db store.TxBeginner, events EventPublisher) *GameService {
	return &GameService{db: db, events: publisherOrNoop(events), now: utcNow}
}

func (s *GameService) CreateGame(ctx context.Context, title string) (*models.Game, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, invalidInput("title must not be empty")
	}

	var game *models.Game
	err := store.InTx(ctx, s.db, func(tx pgx.Tx) error {
		var err error
		game, err = store.NewGameStore(tx).CreateGame(ctx, title)
		return translate(err, "game")
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{"game_id": game.ID, "title": game.Title}).Info("game created")
	s.events.PublishEvent(comm.Event{Type: comm.EventGameCreated, GameID: game.ID, Timestamp: game.CreatedAt})
	return game, nil
}

// ListGames returns every game ordered for a live dashboard, see SortGames.
func (s *GameService) ListGames(ctx context.Context) ([]*models.GameListItem, error) {
	var games []*models.GameListItem
	err := store.InTx(ctx, s.db, func(tx pgx.Tx) error {
		var err error
		games, err = store.NewGameStore(tx).ListGamesWithActivePlayers(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	SortGames(games)
	return games, nil
}

func (s *GameService) StartGame(ctx context.Context, gameID int64) (*models.Game, error) {
	return s.transition(ctx, gameID, models.GameStatusPending, comm.EventGameStarted,
		"game already started or ended",
		func(games *store.GameStore, at time.Time) (*models.Game, error) {
			return games.StartGame(ctx, gameID, at)
		})
}

func (s *GameService) EndGame(ctx context.Context, gameID int64) (*models.Game, error) {
	return s.transition(ctx, gameID, models.GameStatusStarted, comm.EventGameEnded,
		"game not in progress",
		func(games *store.GameStore, at time.Time) (*models.Game, error) {
			return games.EndGame(ctx, gameID, at)
		})
}

// transition applies a one-way status change after checking, under a row
// lock, that the game is currently in the from status.
func (s *GameService) transition(ctx context.Context, gameID int64, from, eventType, stateMsg string,
	apply func(games *store.GameStore, at time.Time) (*models.Game, error)) (*models.Game, error) {
	var game *models.Game
	err := store.InTx(ctx, s.db, func(tx pgx.Tx) error {
		games := store.NewGameStore(tx)

		current, err := games.GetGameByIDForUpdate(ctx, gameID)
		if err != nil {
			return translate(err, "game")
		}
		if current.Status != from {
			return invalidState("%s", stateMsg)
		}

		game, err = apply(games, s.now())
		if errors.Is(err, store.ErrNotFound) {
			return invalidState("%s", stateMsg)
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{"game_id": game.ID, "status": game.Status}).Info("game status changed")
	s.events.PublishEvent(comm.Event{Type: eventType, GameID: game.ID})
	return game, nil
}

// GetGameDetails returns the game with its popularity metrics and index,
// computed from a snapshot of every game's sessions.
func (s *GameService) GetGameDetails(ctx context.Context, gameID int64) (*models.GameDetails, error) {
	var details *models.GameDetails
	err := store.InTx(ctx, s.db, func(tx pgx.Tx) error {
		game, err := store.NewGameStore(tx).GetGameByID(ctx, gameID)
		if err != nil {
			return translate(err, "game")
		}

		snapshot, err := store.NewPopularityStore(tx).MetricsByGame(ctx, yesterday(s.now()))
		if err != nil {
			return err
		}

		metrics, index := Aggregate(game.ID, snapshot)
		details = &models.GameDetails{
			GameID:            game.ID,
			Title:             game.Title,
			Status:            game.Status,
			StartedAt:         game.StartedAt,
			EndedAt:           game.EndedAt,
			CreatedAt:         game.CreatedAt,
			PopularityMetrics: metrics,
			PopularityIndex:   index,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return details, nil
}
