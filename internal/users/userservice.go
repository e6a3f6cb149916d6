package users

import (
	"context"

	"github.com/myairobotics/myaisells-admin/internal/ccc/logging"
)

// UserService provides user management operations for the dashboard
type UserService interface {
	// ListUsers returns a page of users matching the query
	ListUsers(ctx context.Context, query UserQuery) (*UserPage, error)
	// UpdateUserStatus activates or deactivates a user account
	UpdateUserStatus(ctx context.Context, id int64, active bool) error
}

type userService struct {
	logger logging.Logger
	repo   UserRepository
}

func NewUserService(logger logging.Logger, repo UserRepository) *userService {
	if logger == nil {
		logger = logging.NopLogger
	}

	return &userService{
		logger: logger,
		repo:   repo,
	}
}

func (s *userService) ListUsers(ctx context.Context, query UserQuery) (*UserPage, error) {
	result, total, err := s.repo.Query(ctx, query)
	if err != nil {
		s.logger.Error("Failed to list users", "error", err)
		return nil, err
	}

	return &UserPage{Users: result, Total: total}, nil
}

func (s *userService) UpdateUserStatus(ctx context.Context, id int64, active bool) error {
	if err := s.repo.SetActive(ctx, id, active); err != nil {
		if !IsUserNotFoundError(err) {
			s.logger.Error("Failed to update user status", "user_id", id, "error", err)
		}
		return err
	}

	s.logger.Info("Updated user status", "user_id", id, "active", active)
	return nil
}
