package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/avvvet/leaderboard-services/internal/leaderboardsvc/config"
	"github.com/avvvet/leaderboard-services/internal/leaderboardsvc/service"
	"github.com/go-chi/chi"
	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	cfg         config.Config
	db          Pinger
	contestants *service.ContestantService
	games       *service.GameService
	sessions    *service.GameSessionService
	leaderboard *service.LeaderboardService
	validate    *validator.Validate
}

func NewHandler(cfg config.Config, db Pinger, contestants *service.ContestantService, games *service.GameService,
	sessions *service.GameSessionService, leaderboard *service.LeaderboardService) *Handler {
	return &Handler{
		cfg:         cfg,
		db:          db,
		contestants: contestants,
		games:       games,
		sessions:    sessions,
		leaderboard: leaderboard,
		validate:    validator.New(),
	}
}

type Response struct {
	Message string      `json:"message"`
	Code    int         `json:"code"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func (h *Handler) CreateResponse(w http.ResponseWriter, rsp Response) {
	writeJSON(w, rsp.Code, rsp)
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Errorf("unable to encode response: %s", err)
	}
}

// Error maps service errors onto HTTP status codes. Anything outside the
// service taxonomy is a store failure and becomes a 500.
func (h *Handler) Error(w http.ResponseWriter, r *http.Request, err error) {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, service.ErrInvalidState), errors.Is(err, service.ErrInvalidInput):
		code = http.StatusBadRequest
	case errors.Is(err, service.ErrConflict):
		code = http.StatusConflict
	}

	msg := err.Error()
	if code == http.StatusInternalServerError {
		log.WithField("path", r.URL.Path).Errorf("store error: %s", err)
		msg = "Database error: " + msg
	}

	h.CreateResponse(w, Response{
		Message: http.StatusText(code),
		Code:    code,
		Error:   msg,
	})
}

func (h *Handler) badRequest(w http.ResponseWriter, msg string) {
	h.CreateResponse(w, Response{
		Message: http.StatusText(http.StatusBadRequest),
		Code:    http.StatusBadRequest,
		Error:   msg,
	})
}

// decode reads a JSON body into v and validates its struct tags.
func (h *Handler) decode(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	if err := h.validate.Struct(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func idParam(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", name, raw)
	}
	return id, nil
}

func (h *Handler) RootHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Welcome to the Game Leaderboard API!",
		"debug":   h.cfg.Debug,
	})
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(r.Context()); err != nil {
		h.CreateResponse(w, Response{
			Message: "database unreachable",
			Code:    http.StatusServiceUnavailable,
			Error:   err.Error(),
		})
		return
	}

	h.CreateResponse(w, Response{
		Message: "leaderboard service is running at port " + h.cfg.Port,
		Code:    http.StatusOK,
	})
}
