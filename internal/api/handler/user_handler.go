package handler

import (
	"encoding/json"
	"net/http"
	"todo_api/internal/api/middleware"
	"todo_api/internal/app/service"
	"todo_api/internal/common"
	"todo_api/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterRoutes expects the caller to have mounted the access-token
// Authenticator already.
func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.Get("/user-infor", h.userInfor)
	r.With(middleware.RequireRole(model.RoleAdmin)).Get("/users", h.listUsers)
	r.With(middleware.SelfOrAdmin("id")).Patch("/users/{id}", h.updateUser)
	r.With(middleware.RequireRole(model.RoleAdmin)).Delete("/users/{id}", h.deleteUser)
}

func (h *UserHandler) userInfor(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "No authentication token provided")
		return
	}

	user, err := h.userService.GetUserInfor(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, user)
}

func (h *UserHandler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.ListUsers(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, users)
}

func (h *UserHandler) updateUser(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	role, _ := middleware.GetUserRoleFromContext(r.Context())
	user, err := h.userService.UpdateUser(r.Context(), role, chi.URLParam(r, "id"), req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	common.RespondWithJSON(w, http.StatusOK, struct {
		Message string      `json:"message"`
		User    *model.User `json:"user"`
	}{
		Message: "User updated successfully",
		User:    user,
	})
}

func (h *UserHandler) deleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.userService.DeleteUser(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, common.MessageResponse{Message: "User deleted successfully"})
}
