package handlers

import (
	"net/http"
)

func (h *Handler) GlobalLeaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.leaderboard.Global(r.Context())
	if err != nil {
		h.Error(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

func (h *Handler) GameLeaderboard(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "game_id")
	if err != nil {
		h.badRequest(w, err.Error())
		return
	}

	entries, err := h.leaderboard.ForGame(r.Context(), id)
	if err != nil {
		h.Error(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}
