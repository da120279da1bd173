package handler

import (
	"net/http"

	"algorithm_guessr/internal/app/service"
	"algorithm_guessr/internal/common"

	"github.com/go-chi/chi/v5"
)

type AuthHandler struct {
	authService     *service.AuthService
	settingsService *service.SettingsService
}

func NewAuthHandler(authService *service.AuthService, settingsService *service.SettingsService) *AuthHandler {
	return &AuthHandler{authService: authService, settingsService: settingsService}
}

func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Get("/status", h.status)
	r.Post("/register", h.register)
	r.Post("/login", h.login)
}

type registrationStatus struct {
	RegistrationOpen bool `json:"registrationOpen"`
}

func (h *AuthHandler) status(w http.ResponseWriter, r *http.Request) {
	open, err := h.settingsService.RegistrationOpen(r.Context())
	if err != nil {
		common.RespondWithAppError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, registrationStatus{RegistrationOpen: open})
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var req service.Credentials
	if err := decodeBody(r, &req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, common.MsgInvalidFormat)
		return
	}

	resp, err := h.authService.Register(r.Context(), req)
	if err != nil {
		common.RespondWithAppError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req service.Credentials
	if err := decodeBody(r, &req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, common.MsgCredentialsRequired)
		return
	}
	resp, err := h.authService.Login(r.Context(), req)
	if err != nil {
		common.RespondWithAppError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}
