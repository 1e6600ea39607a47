package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/avvvet/leaderboard-services/internal/comm"
	"github.com/avvvet/leaderboard-services/internal/leaderboardsvc/models"
	"github.com/avvvet/leaderboard-services/internal/leaderboardsvc/store"
	"github.com/jackc/pgx/v5"
	log "github.com/sirupsen/logrus"
)

type GameSessionService struct {
	db     store.TxBeginner
	events EventPublisher
	now    func() time.Time
}

func NewGameSessionService(db store.TxBeginner, events EventPublisher) *GameSessionService {
	return &GameSessionService{db: db, events: publisherOrNoop(events), now: utcNow}
}

// JoinGame opens a session for the contestant. The game must be started and
// not ended, and the contestant must not already be playing it.
func (s *GameSessionService) JoinGame(ctx context.Context, gameID, contestantID int64) (*models.GameSession, error) {
	var session *models.GameSession
	err := store.InTx(ctx, s.db, func(tx pgx.Tx) error {
		game, err := store.NewGameStore(tx).GetGameByIDForUpdate(ctx, gameID)
		if err != nil {
			return translate(err, "game")
		}
		if _, err := store.NewContestantStore(tx).GetContestantByID(ctx, contestantID); err != nil {
			return translate(err, "contestant")
		}
		if !game.Joinable() {
			return invalidState("game can not be joined")
		}

		sessions := store.NewGameSessionStore(tx)
		_, err = sessions.GetActiveSession(ctx, gameID, contestantID)
		switch {
		case err == nil:
			return conflict("contestant already in this game")
		case !errors.Is(err, store.ErrNotFound):
			return err
		}

		session, err = sessions.CreateSession(ctx, gameID, contestantID, s.now())
		if errors.Is(err, store.ErrUniqueViolation) {
			return conflict("contestant already in this game")
		}
		return translate(err, "game session")
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{"game_id": gameID, "contestant_id": contestantID, "session_id": session.ID}).Info("contestant joined game")
	s.events.PublishEvent(comm.Event{
		Type:         comm.EventContestantJoined,
		GameID:       gameID,
		ContestantID: contestantID,
		SessionID:    session.ID,
		Timestamp:    session.JoinedAt,
	})
	return session, nil
}

// UpdateScore overwrites the score of the contestant's current session in
// the game, or of their latest one when none is active.
func (s *GameSessionService) UpdateScore(ctx context.Context, gameID, contestantID int64, score float64) (*models.GameSession, error) {
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return nil, invalidInput("score must be a finite number")
	}

	var session *models.GameSession
	err := store.InTx(ctx, s.db, func(tx pgx.Tx) error {
		sessions := store.NewGameSessionStore(tx)

		var err error
		session, err = sessions.GetLatestSession(ctx, gameID, contestantID)
		if err != nil {
			return notInGame(err)
		}
		if err := sessions.UpdateScore(ctx, session.ID, score); err != nil {
			return notInGame(err)
		}
		session.Score = score
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.events.PublishEvent(comm.Event{
		Type:         comm.EventScoreUpdated,
		GameID:       gameID,
		ContestantID: contestantID,
		SessionID:    session.ID,
		Score:        &score,
	})
	return session, nil
}

// ExitGame closes the contestant's active session in the game.
func (s *GameSessionService) ExitGame(ctx context.Context, gameID, contestantID int64) (*models.GameSession, error) {
	var session *models.GameSession
	err := store.InTx(ctx, s.db, func(tx pgx.Tx) error {
		sessions := store.NewGameSessionStore(tx)

		var err error
		session, err = sessions.GetActiveSession(ctx, gameID, contestantID)
		if errors.Is(err, store.ErrNotFound) {
			if _, err := sessions.GetLatestSession(ctx, gameID, contestantID); err != nil {
				return notInGame(err)
			}
			return invalidState("contestant already exited this game")
		}
		if err != nil {
			return err
		}

		at := s.now()
		if at.Before(session.JoinedAt) {
			at = session.JoinedAt
		}
		if err := sessions.MarkExited(ctx, session.ID, at); err != nil {
			return notInGame(err)
		}
		session.ExitedAt = &at
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{"game_id": gameID, "contestant_id": contestantID, "session_id": session.ID}).Info("contestant exited game")
	s.events.PublishEvent(comm.Event{
		Type:         comm.EventContestantExited,
		GameID:       gameID,
		ContestantID: contestantID,
		SessionID:    session.ID,
		Timestamp:    *session.ExitedAt,
	})
	return session, nil
}

// Upvote adds one upvote to the contestant's current (or latest) session in
// the game.
func (s *GameSessionService) Upvote(ctx context.Context, gameID, contestantID int64) (*models.GameSession, error) {
	var session *models.GameSession
	err := store.InTx(ctx, s.db, func(tx pgx.Tx) error {
		sessions := store.NewGameSessionStore(tx)

		var err error
		session, err = sessions.GetLatestSession(ctx, gameID, contestantID)
		if err != nil {
			return notInGame(err)
		}
		upvotes, err := sessions.AddUpvote(ctx, session.ID)
		if err != nil {
			return notInGame(err)
		}
		session.Upvotes = upvotes
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.events.PublishEvent(comm.Event{
		Type:         comm.EventSessionUpvoted,
		GameID:       gameID,
		ContestantID: contestantID,
		SessionID:    session.ID,
		Upvotes:      &session.Upvotes,
	})
	return session, nil
}

func notInGame(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return notFound("contestant not in this game")
	}
	return err
}
