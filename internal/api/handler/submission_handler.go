package handler

import (
	"encoding/json"
	"net/http"

	"contesthub/internal/api/middleware"
	"contesthub/internal/app/service"
	"contesthub/internal/common"

	"github.com/go-chi/chi/v5"
)

type SubmissionHandler struct {
	submissionService *service.SubmissionService
}

func NewSubmissionHandler(ss *service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{submissionService: ss}
}

func (h *SubmissionHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.Authenticator)
	r.Post("/{contestID}/mcq/{questionID}/submit", h.submitMCQ)
	r.Post("/{contestID}/problems/{problemID}/submit", h.submitDSA)
}

func (h *SubmissionHandler) submitMCQ(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, common.ErrUnauthenticated)
		return
	}

	var req service.SubmitMCQRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, common.ErrInvalidRequest)
		return
	}

	submission, err := h.submissionService.SubmitMCQ(r.Context(), userID,
		chi.URLParam(r, "contestID"), chi.URLParam(r, "questionID"), req)
	if err != nil {
		common.RespondWithError(w, err)
		return
	}
	common.RespondWithData(w, http.StatusCreated, submission)
}

func (h *SubmissionHandler) submitDSA(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, common.ErrUnauthenticated)
		return
	}

	var req service.SubmitDSARequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, common.ErrInvalidRequest)
		return
	}

	submission, err := h.submissionService.SubmitDSA(r.Context(), userID,
		chi.URLParam(r, "contestID"), chi.URLParam(r, "problemID"), req)
	if err != nil {
		common.RespondWithError(w, err)
		return
	}
	common.RespondWithData(w, http.StatusOK, submission)
}
