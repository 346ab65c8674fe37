package service

import (
	"context"
	"errors"
	"fmt"
	"time"
	"todo_api/internal/common"
	"todo_api/internal/domain/model"
	"todo_api/internal/domain/repository"

	"github.com/google/uuid"
)

type TodoService struct {
	todoRepo repository.TodoRepository
}

func NewTodoService(todoRepo repository.TodoRepository) *TodoService {
	return &TodoService{todoRepo: todoRepo}
}

type CreateTodoRequest struct {
	Name     string     `json:"todo_name"`
	Desc     string     `json:"todo_desc"`
	Status   string     `json:"todo_status"`
	Priority string     `json:"todo_priority"`
	DueDate  *time.Time `json:"due_date"`
}

type UpdateTodoRequest struct {
	Name     *string    `json:"todo_name"`
	Desc     *string    `json:"todo_desc"`
	Image    *string    `json:"todo_image"`
	Status   *string    `json:"todo_status"`
	Priority *string    `json:"todo_priority"`
	DueDate  *time.Time `json:"due_date"`
}

func (s *TodoService) Create(ctx context.Context, userID string, req CreateTodoRequest) (*model.Todo, error) {
	if req.Name == "" || req.Desc == "" || req.Status == "" {
		return nil, common.NewAPIError(common.ErrValidation, "Please fill in the required fields.")
	}
	if len(req.Name) < 3 {
		return nil, common.NewAPIError(common.ErrValidation, "Todo name must be at least 3 characters long")
	}
	if len(req.Desc) > 500 {
		return nil, common.NewAPIError(common.ErrValidation, "Description cannot exceed 500 characters")
	}
	if !model.ValidTodoStatus(req.Status) {
		return nil, common.NewAPIError(common.ErrValidation, "Invalid todo status")
	}
	priority := req.Priority
	if priority == "" {
		priority = model.TodoPriorityMedium
	}
	if !model.ValidTodoPriority(priority) {
		return nil, common.NewAPIError(common.ErrValidation, "Invalid todo priority")
	}

	todo := &model.Todo{
		ID:       uuid.NewString(),
		UserID:   userID,
		Name:     req.Name,
		Desc:     req.Desc,
		Image:    model.DefaultTodoImage,
		Status:   req.Status,
		Priority: priority,
		DueDate:  req.DueDate,
	}
	if err := s.todoRepo.Create(ctx, todo); err != nil {
		return nil, fmt.Errorf("failed to create todo: %w", err)
	}
	return todo, nil
}

func (s *TodoService) ListForUser(ctx context.Context, userID string) ([]*model.Todo, error) {
	todos, err := s.todoRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	return todos, nil
}

// Update answers 404 both for a missing todo and for somebody else's todo,
// so todo IDs cannot be probed across users.
func (s *TodoService) Update(ctx context.Context, userID, userRole, todoID string, req UpdateTodoRequest) (*model.Todo, error) {
	todo, err := s.ownedTodo(ctx, userID, userRole, todoID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if len(*req.Name) < 3 {
			return nil, common.NewAPIError(common.ErrValidation, "Todo name must be at least 3 characters long")
		}
		todo.Name = *req.Name
	}
	if req.Desc != nil {
		if len(*req.Desc) > 500 {
			return nil, common.NewAPIError(common.ErrValidation, "Description cannot exceed 500 characters")
		}
		todo.Desc = *req.Desc
	}
	if req.Image != nil {
		todo.Image = *req.Image
	}
	if req.Status != nil {
		if !model.ValidTodoStatus(*req.Status) {
			return nil, common.NewAPIError(common.ErrValidation, "Invalid todo status")
		}
		todo.Status = *req.Status
	}
	if req.Priority != nil {
		if !model.ValidTodoPriority(*req.Priority) {
			return nil, common.NewAPIError(common.ErrValidation, "Invalid todo priority")
		}
		todo.Priority = *req.Priority
	}
	if req.DueDate != nil {
		todo.DueDate = req.DueDate
	}

	if err := s.todoRepo.Update(ctx, todo); err != nil {
		return nil, fmt.Errorf("failed to update todo: %w", err)
	}
	return todo, nil
}

func (s *TodoService) Delete(ctx context.Context, userID, userRole, todoID string) error {
	if _, err := s.ownedTodo(ctx, userID, userRole, todoID); err != nil {
		return err
	}
	if err := s.todoRepo.Delete(ctx, todoID); err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	return nil
}

func (s *TodoService) ownedTodo(ctx context.Context, userID, userRole, todoID string) (*model.Todo, error) {
	todo, err := s.todoRepo.FindByID(ctx, todoID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NewAPIError(common.ErrNotFound, "Todo not found or you don't have permission to access it")
		}
		return nil, fmt.Errorf("failed to find todo: %w", err)
	}
	if todo.UserID != userID && userRole != model.RoleAdmin {
		return nil, common.NewAPIError(common.ErrNotFound, "Todo not found or you don't have permission to access it")
	}
	return todo, nil
}
