package handler

import (
	"context"
	"net/http"

	"algorithm_guessr/internal/app/service"
	"algorithm_guessr/internal/common"

	"github.com/go-chi/chi/v5"
)

type AdminHandler struct {
	adminService *service.AdminService
}

func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// RegisterRoutes expects r to be behind Authenticator and AdminOnly.
func (h *AdminHandler) RegisterRoutes(r chi.Router) {
	r.Get("/users", h.listUsers)
	r.Post("/register", h.createUser)
	r.Post("/ban", h.ban)
	r.Post("/unban", h.unban)
	r.Post("/registration-toggle", h.toggleRegistration)
}

type usernameRequest struct {
	Username string `json:"username"`
}

type toggleRequest struct {
	Open any `json:"open"`
}

func (h *AdminHandler) listUsers(w http.ResponseWriter, r *http.Request) {
	listing, err := h.adminService.ListUsers(r.Context())
	if err != nil {
		common.RespondWithAppError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, listing)
}

func (h *AdminHandler) createUser(w http.ResponseWriter, r *http.Request) {
	var req service.Credentials
	if err := decodeBody(r, &req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, common.MsgAdminCredentials)
		return
	}
	if err := h.adminService.CreateUser(r.Context(), req); err != nil {
		common.RespondWithAppError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, successResponse{Success: true})
}

func (h *AdminHandler) ban(w http.ResponseWriter, r *http.Request) {
	h.setBanned(w, r, h.adminService.Ban)
}

func (h *AdminHandler) unban(w http.ResponseWriter, r *http.Request) {
	h.setBanned(w, r, h.adminService.Unban)
}

func (h *AdminHandler) setBanned(w http.ResponseWriter, r *http.Request, apply func(ctx context.Context, username string) error) {
	var req usernameRequest
	if err := decodeBody(r, &req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, common.MsgUsernameRequired)
		return
	}
	if err := apply(r.Context(), req.Username); err != nil {
		common.RespondWithAppError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, successResponse{Success: true})
}

func (h *AdminHandler) toggleRegistration(w http.ResponseWriter, r *http.Request) {
	var req toggleRequest
	_ = decodeBody(r, &req)

	open := truthy(req.Open)
	if err := h.adminService.SetRegistrationOpen(r.Context(), open); err != nil {
		common.RespondWithAppError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, registrationStatus{RegistrationOpen: open})
}
