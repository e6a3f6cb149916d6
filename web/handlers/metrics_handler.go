package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/myairobotics/myaisells-admin/internal/ccc/logging"
	"github.com/myairobotics/myaisells-admin/internal/metrics"
)

type MetricsHandler struct {
	logger         logging.Logger
	metricsService metrics.MetricsService
}

func NewMetricsHandler(logger logging.Logger, metricsService metrics.MetricsService) *MetricsHandler {
	return &MetricsHandler{
		logger:         logger,
		metricsService: metricsService,
	}
}

// GetUserCounts handles GET /api/metrics/users-count
func (h *MetricsHandler) GetUserCounts(c *gin.Context) {
	result, err := h.metricsService.UserCounts(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to load user metrics")
		return
	}

	dailyCounts := make([]gin.H, 0, len(result.DailyCounts))
	for _, count := range result.DailyCounts {
		dailyCounts = append(dailyCounts, gin.H{
			"date":       count.Date,
			"verified":   count.Verified,
			"unverified": count.Unverified,
		})
	}

	respondData(c, gin.H{
		"dailyCounts": dailyCounts,
		"totalUsers":  result.TotalUsers,
	})
}

// GetUsersByCountry handles GET /api/metrics/users-by-country
func (h *MetricsHandler) GetUsersByCountry(c *gin.Context) {
	result, err := h.metricsService.UsersByCountry(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to load country metrics")
		return
	}

	counts := make([]gin.H, 0, len(result))
	for _, count := range result {
		counts = append(counts, gin.H{
			"country": count.Country,
			"count":   count.Count,
		})
	}

	respondData(c, counts)
}

// GetSubscriptions handles GET /api/metrics/subscriptions
func (h *MetricsHandler) GetSubscriptions(c *gin.Context) {
	result, err := h.metricsService.SubscriptionCounts(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to load subscription metrics")
		return
	}

	counts := make([]gin.H, 0, len(result))
	for _, count := range result {
		counts = append(counts, gin.H{
			"plan":  count.Plan,
			"count": count.Count,
		})
	}

	respondData(c, counts)
}

// GetCampaigns handles GET /api/metrics/campaigns
func (h *MetricsHandler) GetCampaigns(c *gin.Context) {
	result, err := h.metricsService.CampaignCounts(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to load campaign metrics")
		return
	}

	dailyCounts := make([]gin.H, 0, len(result.DailyCounts))
	for _, count := range result.DailyCounts {
		dailyCounts = append(dailyCounts, gin.H{
			"date":     count.Date,
			"outreach": count.Outreach,
			"sales":    count.Sales,
		})
	}

	respondData(c, gin.H{
		"dailyCounts":   dailyCounts,
		"totalOutreach": result.TotalOutreach,
		"totalSales":    result.TotalSales,
	})
}

// GetConversations handles GET /api/metrics/conversations
func (h *MetricsHandler) GetConversations(c *gin.Context) {
	result, err := h.metricsService.ConversationCounts(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to load conversation metrics")
		return
	}

	dailyCounts := make([]gin.H, 0, len(result.DailyCounts))
	for _, count := range result.DailyCounts {
		dailyCounts = append(dailyCounts, gin.H{
			"date":           count.Date,
			"outreach":       count.Outreach,
			"sales":          count.Sales,
			"web_agents":     count.WebAgents,
			"web_agent_chat": count.WebAgentChat,
		})
	}

	respondData(c, gin.H{
		"dailyCounts":       dailyCounts,
		"totalOutreach":     result.TotalOutreach,
		"totalSales":        result.TotalSales,
		"totalWebAgents":    result.TotalWebAgents,
		"totalWebAgentChat": result.TotalWebAgentChat,
	})
}

// GetAppointments handles GET /api/metrics/appointments
func (h *MetricsHandler) GetAppointments(c *gin.Context) {
	result, err := h.metricsService.AppointmentCounts(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to load appointment metrics")
		return
	}

	dailyAppointments := make([]gin.H, 0, len(result.DailyAppointments))
	for _, count := range result.DailyAppointments {
		dailyAppointments = append(dailyAppointments, gin.H{
			"date":  count.Date,
			"count": count.Count,
		})
	}

	respondData(c, gin.H{
		"dailyAppointments": dailyAppointments,
		"totalAppointments": result.TotalAppointments,
	})
}

// GetPlanChanges handles GET /api/metrics/downgrade-upgrade
func (h *MetricsHandler) GetPlanChanges(c *gin.Context) {
	result, err := h.metricsService.PlanChanges(c.Request.Context())
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to load plan change metrics")
		return
	}

	counts := make([]gin.H, 0, len(result))
	for _, count := range result {
		counts = append(counts, gin.H{
			"month":      count.Month,
			"year":       count.Year,
			"upgraded":   count.Upgraded,
			"downgraded": count.Downgraded,
		})
	}

	respondData(c, counts)
}
