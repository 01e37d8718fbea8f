package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/openagora/agora/internal/service"
)

type SessionHandler struct {
	svc *service.WorkflowService
}

func NewSessionHandler(svc *service.WorkflowService) *SessionHandler {
	return &SessionHandler{svc: svc}
}

func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	sess, err := h.svc.CreateSession(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create session")
		return
	}
	writeJSON(w, http.StatusCreated, sess)
}

func (h *SessionHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid session id")
		return
	}

	sess, err := h.svc.GetSession(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			writeError(w, http.StatusNotFound, "session not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch session")
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

type advancePhaseRequest struct {
	CompletedPhase int `json:"completed_phase"`
}

func (h *SessionHandler) Advance(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid session id")
		return
	}

	var req advancePhaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sess, err := h.svc.AdvancePhase(r.Context(), id, req.CompletedPhase)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidPhase),
			errors.Is(err, service.ErrPhaseMismatch):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrSessionCompleted):
			writeError(w, http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrSessionNotFound):
			writeError(w, http.StatusNotFound, "session not found")
		default:
			writeError(w, http.StatusInternalServerError, "failed to advance session")
		}
		return
	}
	writeJSON(w, http.StatusOK, sess)
}
