package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/myairobotics/myaisells-admin/internal/ccc/db"
	"github.com/myairobotics/myaisells-admin/internal/ccc/logging"
	"github.com/myairobotics/myaisells-admin/internal/payments"
)

type PaymentHandler struct {
	logger         logging.Logger
	paymentService payments.PaymentService
}

func NewPaymentHandler(logger logging.Logger, paymentService payments.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		logger:         logger,
		paymentService: paymentService,
	}
}

// GetPayments handles GET /api/payment
func (h *PaymentHandler) GetPayments(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	result, err := h.paymentService.GetRecent(c.Request.Context(), limit)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to load payment history")
		return
	}

	data := make([]gin.H, 0, len(result))
	for _, payment := range result {
		data = append(data, gin.H{
			"id":       payment.ID,
			"amount":   payment.Amount,
			"currency": payment.Currency,
			"customer": gin.H{
				"id":    payment.Customer.ID,
				"email": payment.Customer.Email,
				"name":  payment.Customer.Name,
			},
			"status":      payment.Status,
			"paid":        payment.Paid,
			"description": payment.Description,
			"created":     db.TimeToString(payment.CreatedAt),
		})
	}

	respondData(c, data)
}
