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

type TodoHandler struct {
	todoService *service.TodoService
}

func NewTodoHandler(todoService *service.TodoService) *TodoHandler {
	return &TodoHandler{todoService: todoService}
}

func (h *TodoHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.createTodo)
	r.Get("/", h.listTodos)
	r.Patch("/{id}", h.updateTodo)
	r.Delete("/{id}", h.deleteTodo)
}

func (h *TodoHandler) createTodo(w http.ResponseWriter, r *http.Request) {
	var req service.CreateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	userID, _ := middleware.GetUserIDFromContext(r.Context())
	todo, err := h.todoService.Create(r.Context(), userID, req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	common.RespondWithJSON(w, http.StatusOK, struct {
		Message string      `json:"message"`
		NewTodo *model.Todo `json:"newTodo"`
	}{
		Message: "Create a to do list successfully!",
		NewTodo: todo,
	})
}

func (h *TodoHandler) listTodos(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	todos, err := h.todoService.ListForUser(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, todos)
}

func (h *TodoHandler) updateTodo(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	userID, _ := middleware.GetUserIDFromContext(r.Context())
	role, _ := middleware.GetUserRoleFromContext(r.Context())
	todo, err := h.todoService.Update(r.Context(), userID, role, chi.URLParam(r, "id"), req)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	common.RespondWithJSON(w, http.StatusOK, struct {
		Message     string      `json:"message"`
		UpdatedTodo *model.Todo `json:"updatedTodo"`
	}{
		Message:     "To-do updated successfully!",
		UpdatedTodo: todo,
	})
}

func (h *TodoHandler) deleteTodo(w http.ResponseWriter, r *http.Request) {
	userID, _ := middleware.GetUserIDFromContext(r.Context())
	role, _ := middleware.GetUserRoleFromContext(r.Context())
	if err := h.todoService.Delete(r.Context(), userID, role, chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, common.MessageResponse{Message: "To-do deleted successfully!"})
}
