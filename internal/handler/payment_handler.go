package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"hostel-service/internal/service"
	"hostel-service/pkg/logger"
)

// PaymentRequest defines the structure for payment creation requests
type PaymentRequest struct {
	StudentID uint    `json:"studentId" validate:"required"`
	Amount    float64 `json:"amount" validate:"required,gt=0"`
}

// PaymentUpdateRequest defines the structure for partial payment updates
type PaymentUpdateRequest struct {
	StudentID *uint    `json:"studentId"`
	Amount    *float64 `json:"amount"`
	Status    *string  `json:"status"`
}

// PaymentHandler exposes the payment endpoints
type PaymentHandler struct {
	payments *service.PaymentService
}

// NewPaymentHandler returns a payment handler
func NewPaymentHandler(payments *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{payments: payments}
}

// Register mounts the payment routes on g
func (h *PaymentHandler) Register(g *echo.Group) {
	g.POST("", h.CreatePayment)
	g.GET("", h.ListPayments)
	g.PUT("/:id", h.UpdatePayment)
	g.DELETE("/:id", h.DeletePayment)
}

// CreatePayment handles recording a completed payment
func (h *PaymentHandler) CreatePayment(c echo.Context) error {
	log := logger.FromContext(c)
	log.Info("Creating new payment")

	var req PaymentRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}
	if err := c.Validate(&req); err != nil {
		log.Warn("Payment request failed validation", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "studentId and amount are required"})
	}

	payment, err := h.payments.Create(c.Request().Context(), req.StudentID, req.Amount)
	if err != nil {
		return writeError(c, err)
	}

	log.Info("Payment created successfully",
		zap.Uint("payment_id", payment.ID),
		zap.Uint("student_id", payment.StudentID),
		zap.Float64("amount", payment.Amount))
	return c.JSON(http.StatusCreated, payment)
}

// ListPayments handles retrieving all payments
func (h *PaymentHandler) ListPayments(c echo.Context) error {
	log := logger.FromContext(c)

	payments, err := h.payments.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	log.Info("Payments retrieved successfully", zap.Int("count", len(payments)))
	return c.JSON(http.StatusOK, payments)
}

// UpdatePayment handles partial updates of an existing payment
func (h *PaymentHandler) UpdatePayment(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid id parameter"})
	}
	log.Info("Updating payment", zap.Uint("payment_id", id))

	var req PaymentUpdateRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	payment, err := h.payments.Update(c.Request().Context(), id, service.UpdatePaymentInput{
		StudentID: req.StudentID,
		Amount:    req.Amount,
		Status:    req.Status,
	})
	if err != nil {
		return writeError(c, err)
	}

	log.Info("Payment updated successfully", zap.Uint("payment_id", id))
	return c.JSON(http.StatusOK, payment)
}

// DeletePayment handles deleting a payment
func (h *PaymentHandler) DeletePayment(c echo.Context) error {
	log := logger.FromContext(c)

	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid id parameter"})
	}
	log.Info("Deleting payment", zap.Uint("payment_id", id))

	if err := h.payments.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}

	log.Info("Payment deleted successfully", zap.Uint("payment_id", id))
	return c.JSON(http.StatusOK, echo.Map{"message": "Payment deleted successfully"})
}
