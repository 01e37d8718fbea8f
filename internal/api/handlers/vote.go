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

type VoteHandler struct {
	voting *service.VotingService
	debate *service.DebateService
}

func NewVoteHandler(voting *service.VotingService, debate *service.DebateService) *VoteHandler {
	return &VoteHandler{voting: voting, debate: debate}
}

type castVoteRequest struct {
	VoteType string `json:"vote_type"`
	UserID   string `json:"user_id"`
}

func (h *VoteHandler) Cast(w http.ResponseWriter, r *http.Request) {
	argumentID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid argument id")
		return
	}

	var req castVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.voting.ApplyVote(r.Context(), argumentID, req.VoteType, req.UserID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidVoteType),
			errors.Is(err, service.ErrUserIDMissing):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrDuplicateVote):
			writeError(w, http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrArgumentNotFound):
			writeError(w, http.StatusNotFound, "argument not found")
		default:
			writeError(w, http.StatusInternalServerError, "failed to apply vote")
		}
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func (h *VoteHandler) List(w http.ResponseWriter, r *http.Request) {
	argumentID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid argument id")
		return
	}

	votes, err := h.debate.ListVotes(r.Context(), argumentID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list votes")
		return
	}
	if votes == nil {
		votes = []domain.Vote{}
	}
	writeJSON(w, http.StatusOK, votes)
}
