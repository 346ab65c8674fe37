package service

import (
	"context"
	"fmt"
	"sync"
	"time"
	"todo_api/internal/common"
	"todo_api/internal/domain/model"
)

// fakeUserRepo is an in-memory UserRepository for service tests. Reads and
// writes deep-copy so callers never share memory with the store.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*model.User)}
}

func cloneUser(u *model.User) *model.User {
	c := *u
	if u.VerificationCode != nil {
		code := *u.VerificationCode
		c.VerificationCode = &code
	}
	if u.VerificationExpires != nil {
		exp := *u.VerificationExpires
		c.VerificationExpires = &exp
	}
	return &c
}

func (r *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return fmt.Errorf("user with given email already exists: %w", common.ErrConflict)
		}
	}
	stored := cloneUser(user)
	stored.JoinedAt = time.Now()
	stored.UpdatedAt = stored.JoinedAt
	r.users[user.ID] = stored
	return nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, common.ErrNotFound
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return cloneUser(u), nil
}

func (r *fakeUserRepo) FindAll(ctx context.Context) ([]*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := make([]*model.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, cloneUser(u))
	}
	return users, nil
}

func (r *fakeUserRepo) SetVerificationCode(ctx context.Context, id, code string, expires time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return common.ErrNotFound
	}
	u.VerificationCode = &code
	u.VerificationExpires = &expires
	u.UpdatedAt = time.Now()
	return nil
}

func (r *fakeUserRepo) MarkVerified(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return common.ErrNotFound
	}
	u.Verified = true
	u.VerificationCode = nil
	u.VerificationExpires = nil
	u.UpdatedAt = time.Now()
	return nil
}

func (r *fakeUserRepo) UpdatePassword(ctx context.Context, id, hashedPassword string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return common.ErrNotFound
	}
	u.HashedPassword = hashedPassword
	u.VerificationCode = nil
	u.VerificationExpires = nil
	u.UpdatedAt = time.Now()
	return nil
}

func (r *fakeUserRepo) UpdateProfile(ctx context.Context, id string, fields map[string]string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return common.ErrNotFound
	}
	for col, val := range fields {
		switch col {
		case "personal_id":
			u.PersonalID = val
		case "name":
			u.Name = val
		case "email":
			u.Email = val
		case "role":
			u.Role = val
		case "address":
			u.Address = val
		case "phone_number":
			u.PhoneNumber = val
		case "bio":
			u.Bio = val
		case "user_image":
			u.UserImage = val
		}
	}
	u.UpdatedAt = time.Now()
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

// setRole mutates storage directly, standing in for an out-of-band admin
// change between login and refresh.
func (r *fakeUserRepo) setRole(id, role string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		u.Role = role
	}
}

func (r *fakeUserRepo) storedCode(email string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email && u.VerificationCode != nil {
			return *u.VerificationCode, true
		}
	}
	return "", false
}

type sentMail struct {
	To      string
	Subject string
	Body    string
}

type fakeMailer struct {
	mu       sync.Mutex
	sent     []sentMail
	failWith error
}

func (m *fakeMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: htmlBody})
	return nil
}

func (m *fakeMailer) sentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

// fakeTodoRepo is an in-memory TodoRepository.
type fakeTodoRepo struct {
	mu    sync.Mutex
	todos map[string]*model.Todo
}

func newFakeTodoRepo() *fakeTodoRepo {
	return &fakeTodoRepo{todos: make(map[string]*model.Todo)}
}

func cloneTodo(t *model.Todo) *model.Todo {
	c := *t
	if t.DueDate != nil {
		due := *t.DueDate
		c.DueDate = &due
	}
	return &c
}

func (r *fakeTodoRepo) Create(ctx context.Context, todo *model.Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := cloneTodo(todo)
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	r.todos[todo.ID] = stored
	return nil
}

func (r *fakeTodoRepo) FindByID(ctx context.Context, id string) (*model.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.todos[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return cloneTodo(t), nil
}

func (r *fakeTodoRepo) FindByUser(ctx context.Context, userID string) ([]*model.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var todos []*model.Todo
	for _, t := range r.todos {
		if t.UserID == userID {
			todos = append(todos, cloneTodo(t))
		}
	}
	return todos, nil
}

func (r *fakeTodoRepo) Update(ctx context.Context, todo *model.Todo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.todos[todo.ID]; !ok {
		return common.ErrNotFound
	}
	stored := cloneTodo(todo)
	stored.UpdatedAt = time.Now()
	r.todos[todo.ID] = stored
	return nil
}

func (r *fakeTodoRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.todos[id]; !ok {
		return common.ErrNotFound
	}
	delete(r.todos, id)
	return nil
}
