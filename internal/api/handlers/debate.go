package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/openagora/agora/internal/config"
	"github.com/openagora/agora/internal/service"
)

type DebateHandler struct {
	svc *service.DebateService
}

func NewDebateHandler(svc *service.DebateService) *DebateHandler {
	return &DebateHandler{svc: svc}
}

type startDebateRequest struct {
	SessionID  string `json:"session_id"`
	SolutionID string `json:"solution_id"`
	Solution   string `json:"solution,omitempty"`
	RoundCount int    `json:"round_count,omitempty"`
}

func (h *DebateHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req startDebateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid session_id")
		return
	}
	solutionID, err := uuid.Parse(req.SolutionID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid solution_id")
		return
	}

	roundCount := req.RoundCount
	if roundCount == 0 {
		roundCount = config.DebateRounds()
	}

	session, err := h.svc.StartDebate(r.Context(), sessionID, solutionID, req.Solution, roundCount)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRoundCount) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to run debate")
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

func (h *DebateHandler) GetBySession(w http.ResponseWriter, r *http.Request) {
	sessionID, err := uuid.Parse(chi.URLParam(r, "sessionID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid session id")
		return
	}

	session, err := h.svc.GetDebateSession(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, service.ErrDebateNotFound) {
			writeError(w, http.StatusNotFound, "no debate found for session")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch debate")
		return
	}
	writeJSON(w, http.StatusOK, session)
}
