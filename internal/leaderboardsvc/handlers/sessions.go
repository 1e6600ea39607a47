package handlers

import (
	"net/http"
	"strconv"

	"github.com/avvvet/leaderboard-services/internal/leaderboardsvc/models"
)

// sessionParams extracts game_id and contestant_id from the route.
func (h *Handler) sessionParams(w http.ResponseWriter, r *http.Request) (int64, int64, bool) {
	gameID, err := idParam(r, "game_id")
	if err != nil {
		h.badRequest(w, err.Error())
		return 0, 0, false
	}
	contestantID, err := idParam(r, "contestant_id")
	if err != nil {
		h.badRequest(w, err.Error())
		return 0, 0, false
	}
	return gameID, contestantID, true
}

func (h *Handler) JoinGame(w http.ResponseWriter, r *http.Request) {
	gameID, contestantID, ok := h.sessionParams(w, r)
	if !ok {
		return
	}

	session, err := h.sessions.JoinGame(r.Context(), gameID, contestantID)
	if err != nil {
		h.Error(w, r, err)
		return
	}

	h.sessionResponse(w, "Contestant joined the game", session)
}

func (h *Handler) UpdateScore(w http.ResponseWriter, r *http.Request) {
	gameID, contestantID, ok := h.sessionParams(w, r)
	if !ok {
		return
	}

	raw := r.URL.Query().Get("score")
	if raw == "" {
		h.badRequest(w, "score query parameter is required")
		return
	}
	score, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		h.badRequest(w, "score must be a number")
		return
	}

	session, err := h.sessions.UpdateScore(r.Context(), gameID, contestantID, score)
	if err != nil {
		h.Error(w, r, err)
		return
	}

	h.sessionResponse(w, "Score updated", session)
}

func (h *Handler) ExitGame(w http.ResponseWriter, r *http.Request) {
	gameID, contestantID, ok := h.sessionParams(w, r)
	if !ok {
		return
	}

	session, err := h.sessions.ExitGame(r.Context(), gameID, contestantID)
	if err != nil {
		h.Error(w, r, err)
		return
	}

	h.sessionResponse(w, "Contestant exited the game", session)
}

func (h *Handler) Upvote(w http.ResponseWriter, r *http.Request) {
	gameID, contestantID, ok := h.sessionParams(w, r)
	if !ok {
		return
	}

	session, err := h.sessions.Upvote(r.Context(), gameID, contestantID)
	if err != nil {
		h.Error(w, r, err)
		return
	}

	h.sessionResponse(w, "Upvote recorded", session)
}

func (h *Handler) sessionResponse(w http.ResponseWriter, msg string, session *models.GameSession) {
	h.CreateResponse(w, Response{Message: msg, Code: http.StatusOK, Data: session})
}
