package handler

import (
	"encoding/json"
	"net/http"

	"contesthub/internal/api/middleware"
	"contesthub/internal/app/service"
	"contesthub/internal/common"

	"github.com/go-chi/chi/v5"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/signup", h.signup)
	r.Post("/auth/login", h.login)
}

func (h *AuthHandler) RegisterProtectedRoutes(r chi.Router) {
	r.Use(middleware.Authenticator)
	r.Get("/auth/me", h.me)
}

func (h *AuthHandler) me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, common.ErrUnauthenticated)
		return
	}
	user, err := h.authService.Profile(r.Context(), userID)
	if err != nil {
		common.RespondWithError(w, err)
		return
	}
	common.RespondWithData(w, http.StatusOK, user)
}

func (h *AuthHandler) signup(w http.ResponseWriter, r *http.Request) {
	var req service.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, common.ErrInvalidRequest)
		return
	}

	resp, err := h.authService.Signup(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, err)
		return
	}
	common.RespondWithData(w, http.StatusCreated, resp)
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, common.ErrInvalidRequest)
		return
	}
	resp, err := h.authService.Login(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, err)
		return
	}
	common.RespondWithData(w, http.StatusOK, resp)
}
