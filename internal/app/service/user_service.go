package service

import (
	"context"
	"errors"
	"fmt"
	"todo_api/internal/common"
	"todo_api/internal/domain/model"
	"todo_api/internal/domain/repository"
)

type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// fieldPermission declares who may write a profile field. Consulted once per
// request instead of branching per field in the handler.
type fieldPermission struct {
	Self  bool
	Admin bool
}

var userFieldPermissions = map[string]fieldPermission{
	"name":         {Self: true, Admin: true},
	"address":      {Self: true, Admin: true},
	"phone_number": {Self: true, Admin: true},
	"bio":          {Self: true, Admin: true},
	"user_image":   {Self: true, Admin: true},
	"personal_id":  {Self: false, Admin: true},
	"email":        {Self: false, Admin: true},
	"role":         {Self: false, Admin: true},
}

type UpdateUserRequest struct {
	PersonalID  *string `json:"personal_id"`
	Name        *string `json:"name"`
	Email       *string `json:"email"`
	Role        *string `json:"role"`
	Address     *string `json:"address"`
	PhoneNumber *string `json:"phone_number"`
	Bio         *string `json:"bio"`
	UserImage   *string `json:"user_image"`
}

func (req *UpdateUserRequest) fields() map[string]*string {
	return map[string]*string{
		"personal_id":  req.PersonalID,
		"name":         req.Name,
		"email":        req.Email,
		"role":         req.Role,
		"address":      req.Address,
		"phone_number": req.PhoneNumber,
		"bio":          req.Bio,
		"user_image":   req.UserImage,
	}
}

func (s *UserService) GetUserInfor(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NewAPIError(common.ErrNotFound, "User not found")
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	user.HashedPassword = ""
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]*model.User, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	for _, u := range users {
		u.HashedPassword = ""
	}
	return users, nil
}

// UpdateUser applies the permitted subset of the requested fields. Fields the
// caller may not write are silently dropped, not rejected.
func (s *UserService) UpdateUser(ctx context.Context, callerRole, targetID string, req UpdateUserRequest) (*model.User, error) {
	if _, err := s.userRepo.FindByID(ctx, targetID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NewAPIError(common.ErrNotFound, "User not found")
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	isAdmin := callerRole == model.RoleAdmin
	updates := make(map[string]string)
	for field, value := range req.fields() {
		if value == nil {
			continue
		}
		perm := userFieldPermissions[field]
		if (isAdmin && perm.Admin) || (!isAdmin && perm.Self) {
			updates[field] = *value
		}
	}

	if role, ok := updates["role"]; ok {
		if role != model.RoleUser && role != model.RoleAdmin {
			return nil, common.NewAPIError(common.ErrValidation, "Invalid role")
		}
	}

	if len(updates) > 0 {
		if err := s.userRepo.UpdateProfile(ctx, targetID, updates); err != nil {
			if errors.Is(err, common.ErrConflict) {
				return nil, common.NewAPIError(common.ErrConflict, "This email is already registered")
			}
			return nil, fmt.Errorf("failed to update user: %w", err)
		}
	}

	user, err := s.userRepo.FindByID(ctx, targetID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload user: %w", err)
	}
	user.HashedPassword = ""
	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, targetID string) error {
	if err := s.userRepo.Delete(ctx, targetID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.NewAPIError(common.ErrNotFound, "User not found")
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
