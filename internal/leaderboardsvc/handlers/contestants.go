package handlers

import (
	"net/http"
)

type contestantRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type contestantResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (h *Handler) CreateContestant(w http.ResponseWriter, r *http.Request) {
	var req contestantRequest
	if err := h.decode(r, &req); err != nil {
		h.badRequest(w, err.Error())
		return
	}

	c, err := h.contestants.CreateContestant(r.Context(), req.Name)
	if err != nil {
		h.Error(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, contestantResponse{ID: c.ID, Name: c.Name})
}

func (h *Handler) ListContestants(w http.ResponseWriter, r *http.Request) {
	contestants, err := h.contestants.ListContestants(r.Context())
	if err != nil {
		h.Error(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, contestants)
}

func (h *Handler) GetContestant(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "contestant_id")
	if err != nil {
		h.badRequest(w, err.Error())
		return
	}

	c, err := h.contestants.GetContestant(r.Context(), id)
	if err != nil {
		h.Error(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, c)
}

func (h *Handler) UpdateContestant(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "contestant_id")
	if err != nil {
		h.badRequest(w, err.Error())
		return
	}

	var req contestantRequest
	if err := h.decode(r, &req); err != nil {
		h.badRequest(w, err.Error())
		return
	}

	c, err := h.contestants.RenameContestant(r.Context(), id, req.Name)
	if err != nil {
		h.Error(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, contestantResponse{ID: c.ID, Name: c.Name})
}

func (h *Handler) DeleteContestant(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "contestant_id")
	if err != nil {
		h.badRequest(w, err.Error())
		return
	}

	if err := h.contestants.DeleteContestant(r.Context(), id); err != nil {
		h.Error(w, r, err)
		return
	}

	h.CreateResponse(w, Response{Message: "Contestant deleted successfully", Code: http.StatusOK})
}
