package payments

import (
	"context"

	"github.com/myairobotics/myaisells-admin/internal/ccc/logging"
)

// PaymentService provides the payment history shown on the dashboard
type PaymentService interface {
	// GetRecent returns the most recent payments, newest first
	GetRecent(ctx context.Context, limit int) ([]*Payment, error)
}

type paymentService struct {
	logger logging.Logger
	repo   PaymentRepository
}

func NewPaymentService(logger logging.Logger, repo PaymentRepository) *paymentService {
	if logger == nil {
		logger = logging.NopLogger
	}

	return &paymentService{
		logger: logger,
		repo:   repo,
	}
}

func (s *paymentService) GetRecent(ctx context.Context, limit int) ([]*Payment, error) {
	result, err := s.repo.GetRecent(ctx, limit)
	if err != nil {
		s.logger.Error("Failed to load payment history", "error", err)
		return nil, err
	}
	return result, nil
}
