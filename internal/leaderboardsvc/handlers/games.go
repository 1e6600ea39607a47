package handlers

import (
	"net/http"
)

type gameRequest struct {
	Title string `json:"title" validate:"required,max=200"`
}

type gameResponse struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Status string `json:"status"`
}

func (h *Handler) CreateGame(w http.ResponseWriter, r *http.Request) {
	var req gameRequest
	if err := h.decode(r, &req); err != nil {
		h.badRequest(w, err.Error())
		return
	}

	game, err := h.games.CreateGame(r.Context(), req.Title)
	if err != nil {
		h.Error(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, gameResponse{ID: game.ID, Title: game.Title, Status: game.Status})
}

func (h *Handler) ListGames(w http.ResponseWriter, r *http.Request) {
	games, err := h.games.ListGames(r.Context())
	if err != nil {
		h.Error(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, games)
}

func (h *Handler) StartGame(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "game_id")
	if err != nil {
		h.badRequest(w, err.Error())
		return
	}

	game, err := h.games.StartGame(r.Context(), id)
	if err != nil {
		h.Error(w, r, err)
		return
	}

	h.CreateResponse(w, Response{Message: "Game started", Code: http.StatusOK, Data: game})
}

func (h *Handler) EndGame(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "game_id")
	if err != nil {
		h.badRequest(w, err.Error())
		return
	}

	game, err := h.games.EndGame(r.Context(), id)
	if err != nil {
		h.Error(w, r, err)
		return
	}

	h.CreateResponse(w, Response{Message: "Game ended", Code: http.StatusOK, Data: game})
}

// GameDetails returns the game together with its popularity metrics w1..w5
// and popularity index.
func (h *Handler) GameDetails(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "game_id")
	if err != nil {
		h.badRequest(w, err.Error())
		return
	}

	details, err := h.games.GetGameDetails(r.Context(), id)
	if err != nil {
		h.Error(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, details)
}
