package handler

import (
	"net/http"

	"contesthub/internal/app/service"
	"contesthub/internal/common"

	"github.com/go-chi/chi/v5"
)

type LeaderboardHandler struct {
	leaderboardService *service.LeaderboardService
}

func NewLeaderboardHandler(ls *service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardService: ls}
}

func (h *LeaderboardHandler) RegisterRoutes(r chi.Router) {
	r.Get("/{contestID}/leaderboard", h.getLeaderboard)
}

func (h *LeaderboardHandler) getLeaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.leaderboardService.GetLeaderboard(r.Context(), chi.URLParam(r, "contestID"))
	if err != nil {
		common.RespondWithError(w, err)
		return
	}
	common.RespondWithData(w, http.StatusOK, entries)
}
