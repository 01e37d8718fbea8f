package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/openagora/agora/internal/domain"
	"github.com/openagora/agora/internal/service"
)

type EvidenceHandler struct {
	svc *service.EvidenceService
}

func NewEvidenceHandler(svc *service.EvidenceService) *EvidenceHandler {
	return &EvidenceHandler{svc: svc}
}

type createEvidenceRequest struct {
	SessionID      string `json:"session_id"`
	Claim          string `json:"claim"`
	Confidence     int    `json:"confidence"`
	RelevanceScore int    `json:"relevance_score"`
}

func (h *EvidenceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createEvidenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid session_id")
		return
	}

	evidence := &domain.Evidence{
		SessionID:      sessionID,
		Claim:          req.Claim,
		Confidence:     req.Confidence,
		RelevanceScore: req.RelevanceScore,
	}

	if err := h.svc.Create(r.Context(), evidence); err != nil {
		switch {
		case errors.Is(err, service.ErrClaimMissing),
			errors.Is(err, service.ErrSessionIDMissing),
			errors.Is(err, service.ErrInvalidConfidence),
			errors.Is(err, service.ErrInvalidRelevance):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, "failed to create evidence")
		}
		return
	}
	writeJSON(w, http.StatusCreated, evidence)
}

func (h *EvidenceHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid evidence id")
		return
	}

	evidence, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrEvidenceNotFound) {
			writeError(w, http.StatusNotFound, "evidence not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch evidence")
		return
	}
	writeJSON(w, http.StatusOK, evidence)
}

type attachEvidenceRequest struct {
	EvidenceID string `json:"evidence_id"`
}

// Attach links an existing evidence item to an argument. Repeating the call
// with the same evidence id is a no-op reported with already_linked.
func (h *EvidenceHandler) Attach(w http.ResponseWriter, r *http.Request) {
	argumentID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid argument id")
		return
	}

	var req attachEvidenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	evidenceID, err := uuid.Parse(req.EvidenceID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid evidence_id")
		return
	}

	result, err := h.svc.Attach(r.Context(), argumentID, evidenceID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEvidenceNotFound):
			writeError(w, http.StatusNotFound, "evidence not found")
		case errors.Is(err, service.ErrArgumentNotFound):
			writeError(w, http.StatusNotFound, "argument not found")
		default:
			writeError(w, http.StatusInternalServerError, "failed to attach evidence")
		}
		return
	}
	writeJSON(w, http.StatusOK, result)
}
