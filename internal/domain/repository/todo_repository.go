package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"todo_api/internal/common"
	"todo_api/internal/domain/model"
)

type TodoRepository interface {
	Create(ctx context.Context, todo *model.Todo) error
	FindByID(ctx context.Context, id string) (*model.Todo, error)
	FindByUser(ctx context.Context, userID string) ([]*model.Todo, error)
	Update(ctx context.Context, todo *model.Todo) error
	Delete(ctx context.Context, id string) error
}

type pgTodoRepository struct {
	db *sql.DB
}

func NewPgTodoRepository(db *sql.DB) TodoRepository {
	return &pgTodoRepository{db: db}
}

const todoColumns = `id, user_id, todo_name, todo_desc, todo_image, todo_status, todo_priority, due_date, created_at, updated_at`

func scanTodo(row interface{ Scan(...any) error }) (*model.Todo, error) {
	todo := &model.Todo{}
	err := row.Scan(
		&todo.ID, &todo.UserID, &todo.Name, &todo.Desc, &todo.Image,
		&todo.Status, &todo.Priority, &todo.DueDate, &todo.CreatedAt, &todo.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return todo, nil
}

func (r *pgTodoRepository) Create(ctx context.Context, todo *model.Todo) error {
	query := `INSERT INTO todos (id, user_id, todo_name, todo_desc, todo_image, todo_status, todo_priority, due_date)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.db.ExecContext(ctx, query,
		todo.ID, todo.UserID, todo.Name, todo.Desc, todo.Image, todo.Status, todo.Priority, todo.DueDate,
	)
	if err != nil {
		return fmt.Errorf("pgTodoRepository.Create: %w", err)
	}
	return nil
}

func (r *pgTodoRepository) FindByID(ctx context.Context, id string) (*model.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos WHERE id = $1`
	todo, err := scanTodo(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgTodoRepository.FindByID: %w", err)
	}
	return todo, nil
}

func (r *pgTodoRepository) FindByUser(ctx context.Context, userID string) ([]*model.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos WHERE user_id = $1 ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("pgTodoRepository.FindByUser: %w", err)
	}
	defer rows.Close()

	var todos []*model.Todo
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, fmt.Errorf("pgTodoRepository.FindByUser: %w", err)
		}
		todos = append(todos, todo)
	}
	return todos, rows.Err()
}

func (r *pgTodoRepository) Update(ctx context.Context, todo *model.Todo) error {
	query := `UPDATE todos SET todo_name = $2, todo_desc = $3, todo_image = $4, todo_status = $5,
	          todo_priority = $6, due_date = $7, updated_at = now()
	          WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query,
		todo.ID, todo.Name, todo.Desc, todo.Image, todo.Status, todo.Priority, todo.DueDate,
	)
	if err != nil {
		return fmt.Errorf("pgTodoRepository.Update: %w", err)
	}
	return requireAffected(res)
}

func (r *pgTodoRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgTodoRepository.Delete: %w", err)
	}
	return requireAffected(res)
}
