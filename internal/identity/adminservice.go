package identity

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/myairobotics/myaisells-admin/internal/ccc/logging"
)

const minPasswordLength = 8

// AdminService manages administrator accounts and credential checks.
type AdminService interface {
	// IsConfigured reports whether at least one admin account exists
	IsConfigured(ctx context.Context) (bool, error)
	// Setup creates the initial admin account
	Setup(ctx context.Context, email, password string) (*Admin, error)
	// Authenticate verifies the credentials and returns the admin on success
	Authenticate(ctx context.Context, email, password, remoteIP string) (*Admin, error)
}

type adminService struct {
	logger  logging.Logger
	repo    AdminRepository
	hasher  PasswordHasher
	tracker FailureTracker
}

func NewAdminService(logger logging.Logger, repo AdminRepository, hasher PasswordHasher, tracker FailureTracker) *adminService {
	if logger == nil {
		logger = logging.NopLogger
	}
	if tracker == nil {
		tracker = NopFailureTracker
	}

	return &adminService{
		logger:  logger,
		repo:    repo,
		hasher:  hasher,
		tracker: tracker,
	}
}

func (s *adminService) IsConfigured(ctx context.Context) (bool, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		s.logger.Error("Failed to count admin accounts", "error", err)
		return false, err
	}
	return count > 0, nil
}

func (s *adminService) Setup(ctx context.Context, email, password string) (*Admin, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if email == "" || !strings.Contains(email, "@") {
		return nil, NewSetupValidationError("a valid email is required")
	}
	if len(password) < minPasswordLength {
		return nil, NewSetupValidationError("password must be at least 8 characters")
	}

	existing, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		s.logger.Error("Failed to check for existing admin", "error", err)
		return nil, err
	}
	if existing != nil {
		return nil, NewAdminAlreadyExistsError(email)
	}

	hash, salt, err := s.hasher.Hash(password)
	if err != nil {
		s.logger.Error("Failed to hash admin password", "error", err)
		return nil, err
	}

	now := time.Now().UTC()
	admin := &Admin{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		PasswordSalt: salt,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Add(ctx, admin); err != nil {
		s.logger.Error("Failed to store admin account", "error", err)
		return nil, err
	}

	s.logger.Info("Created admin account", "email", email)
	return admin, nil
}

func (s *adminService) Authenticate(ctx context.Context, email, password, remoteIP string) (*Admin, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	admin, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		s.logger.Error("Failed to look up admin", "error", err)
		return nil, err
	}

	if admin == nil || !s.hasher.Compare(admin.PasswordHash, admin.PasswordSalt, password) {
		failures := s.tracker.RecordFailure(email, remoteIP, time.Now().UTC())
		s.logger.Warn("Failed login attempt", "email", email, "remote_ip", remoteIP, "failures", failures)

		if s.tracker.ShouldLockOut(failures) {
			return nil, NewTooManyAttemptsError(email)
		}
		return nil, NewInvalidCredentialsError()
	}

	return admin, nil
}
