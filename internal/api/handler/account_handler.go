package handler

import (
	"net/http"

	"algorithm_guessr/internal/api/middleware"
	"algorithm_guessr/internal/app/service"
	"algorithm_guessr/internal/common"
	"algorithm_guessr/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

// AccountHandler serves the signed-in user's own state.
type AccountHandler struct {
	settingsService  *service.SettingsService
	extensionService *service.ExtensionService
}

func NewAccountHandler(settingsService *service.SettingsService, extensionService *service.ExtensionService) *AccountHandler {
	return &AccountHandler{settingsService: settingsService, extensionService: extensionService}
}

// RegisterRoutes expects r to be behind middleware.Authenticator.
func (h *AccountHandler) RegisterRoutes(r chi.Router) {
	r.Get("/me", h.me)
	r.Get("/extension/status", h.extensionStatus)
	r.Post("/extension/verify", h.verifyExtension)
}

type meResponse struct {
	User              model.UserSummary `json:"user"`
	RegistrationOpen  bool              `json:"registrationOpen"`
	ExtensionVerified bool              `json:"extensionVerified"`
}

type extensionResponse struct {
	Verified bool `json:"verified"`
}

type verifyExtensionRequest struct {
	Installed *bool `json:"installed"`
}

func (h *AccountHandler) me(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	open, err := h.settingsService.RegistrationOpen(r.Context())
	if err != nil {
		common.RespondWithAppError(w, r, err)
		return
	}
	verified, err := h.extensionService.IsVerified(r.Context(), user.ID)
	if err != nil {
		common.RespondWithAppError(w, r, err)
		return
	}

	common.RespondWithJSON(w, http.StatusOK, meResponse{
		User:              user.Summary(),
		RegistrationOpen:  open,
		ExtensionVerified: verified,
	})
}

func (h *AccountHandler) extensionStatus(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())
	verified, err := h.extensionService.IsVerified(r.Context(), user.ID)
	if err != nil {
		common.RespondWithAppError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, extensionResponse{Verified: verified})
}

// verifyExtension is called by the companion script. Only an explicit
// installed=false clears the mark; anything else (re)marks it.
func (h *AccountHandler) verifyExtension(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	var req verifyExtensionRequest
	_ = decodeBody(r, &req)

	if req.Installed != nil && !*req.Installed {
		if err := h.extensionService.Clear(r.Context(), user.ID); err != nil {
			common.RespondWithAppError(w, r, err)
			return
		}
		common.RespondWithJSON(w, http.StatusOK, extensionResponse{Verified: false})
		return
	}

	if err := h.extensionService.MarkVerified(r.Context(), user.ID); err != nil {
		common.RespondWithAppError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, extensionResponse{Verified: true})
}
