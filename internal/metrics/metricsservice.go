package metrics

import (
	"context"

	"github.com/myairobotics/myaisells-admin/internal/ccc/logging"
)

// MetricsService provides the aggregated metrics shown on the dashboard
type MetricsService interface {
	UserCounts(ctx context.Context) (*UserCountMetrics, error)
	UsersByCountry(ctx context.Context) ([]CountryCount, error)
	SubscriptionCounts(ctx context.Context) ([]PlanCount, error)
	CampaignCounts(ctx context.Context) (*CampaignMetrics, error)
	ConversationCounts(ctx context.Context) (*ConversationMetrics, error)
	AppointmentCounts(ctx context.Context) (*AppointmentMetrics, error)
	PlanChanges(ctx context.Context) ([]PlanChangeCount, error)
}

type metricsService struct {
	logger logging.Logger
	repo   MetricsRepository
}

func NewMetricsService(logger logging.Logger, repo MetricsRepository) *metricsService {
	if logger == nil {
		logger = logging.NopLogger
	}

	return &metricsService{
		logger: logger,
		repo:   repo,
	}
}

func (s *metricsService) UserCounts(ctx context.Context) (*UserCountMetrics, error) {
	result, err := s.repo.UserCounts(ctx)
	if err != nil {
		s.logger.Error("Failed to load user count metrics", "error", err)
		return nil, err
	}
	return result, nil
}

func (s *metricsService) UsersByCountry(ctx context.Context) ([]CountryCount, error) {
	result, err := s.repo.UsersByCountry(ctx)
	if err != nil {
		s.logger.Error("Failed to load users by country", "error", err)
		return nil, err
	}
	return result, nil
}

func (s *metricsService) SubscriptionCounts(ctx context.Context) ([]PlanCount, error) {
	result, err := s.repo.SubscriptionCounts(ctx)
	if err != nil {
		s.logger.Error("Failed to load subscription metrics", "error", err)
		return nil, err
	}
	return result, nil
}

func (s *metricsService) CampaignCounts(ctx context.Context) (*CampaignMetrics, error) {
	result, err := s.repo.CampaignCounts(ctx)
	if err != nil {
		s.logger.Error("Failed to load campaign metrics", "error", err)
		return nil, err
	}
	return result, nil
}

func (s *metricsService) ConversationCounts(ctx context.Context) (*ConversationMetrics, error) {
	result, err := s.repo.ConversationCounts(ctx)
	if err != nil {
		s.logger.Error("Failed to load conversation metrics", "error", err)
		return nil, err
	}
	return result, nil
}

func (s *metricsService) AppointmentCounts(ctx context.Context) (*AppointmentMetrics, error) {
	result, err := s.repo.AppointmentCounts(ctx)
	if err != nil {
		s.logger.Error("Failed to load appointment metrics", "error", err)
		return nil, err
	}
	return result, nil
}

func (s *metricsService) PlanChanges(ctx context.Context) ([]PlanChangeCount, error) {
	result, err := s.repo.PlanChanges(ctx)
	if err != nil {
		s.logger.Error("Failed to load plan change metrics", "error", err)
		return nil, err
	}
	return result, nil
}
