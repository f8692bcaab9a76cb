package handler

import (
	"encoding/json"
	"net/http"

	"contesthub/internal/api/middleware"
	"contesthub/internal/app/service"
	"contesthub/internal/common"

	"github.com/go-chi/chi/v5"
)

type ContestHandler struct {
	contestService *service.ContestService
}

func NewContestHandler(cs *service.ContestService) *ContestHandler {
	return &ContestHandler{contestService: cs}
}

func (h *ContestHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.Authenticator)
	r.Post("/", h.createContest)
	r.Get("/{contestID}", h.getContest)
	r.Post("/{contestID}/mcq", h.addMCQQuestion)
	r.Post("/{contestID}/problems", h.addDSAProblem)
}

func (h *ContestHandler) createContest(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	role, _ := middleware.GetUserRoleFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, common.ErrUnauthenticated)
		return
	}

	var req service.CreateContestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, common.ErrInvalidRequest)
		return
	}

	contest, err := h.contestService.CreateContest(r.Context(), userID, role, req)
	if err != nil {
		common.RespondWithError(w, err)
		return
	}
	common.RespondWithData(w, http.StatusCreated, contest)
}

func (h *ContestHandler) getContest(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, common.ErrUnauthenticated)
		return
	}

	detail, err := h.contestService.GetContest(r.Context(), userID, chi.URLParam(r, "contestID"))
	if err != nil {
		common.RespondWithError(w, err)
		return
	}
	common.RespondWithData(w, http.StatusOK, detail)
}

func (h *ContestHandler) addMCQQuestion(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, common.ErrUnauthenticated)
		return
	}

	var req service.CreateMCQRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, common.ErrInvalidRequest)
		return
	}

	question, err := h.contestService.AddMCQQuestion(r.Context(), userID, chi.URLParam(r, "contestID"), req)
	if err != nil {
		common.RespondWithError(w, err)
		return
	}
	common.RespondWithData(w, http.StatusCreated, question)
}

func (h *ContestHandler) addDSAProblem(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, common.ErrUnauthenticated)
		return
	}

	var req service.CreateDSAProblemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, common.ErrInvalidRequest)
		return
	}

	problem, err := h.contestService.AddDSAProblem(r.Context(), userID, chi.URLParam(r, "contestID"), req)
	if err != nil {
		common.RespondWithError(w, err)
		return
	}
	common.RespondWithData(w, http.StatusCreated, problem)
}
