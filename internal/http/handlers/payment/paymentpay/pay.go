// Package paymentpay реализует HTTP-обработчик оплаты остатка студентом.
package paymentpay

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/Vijay-lanka/hostel-management/internal/http/middlewarectx"
	"github.com/Vijay-lanka/hostel-management/internal/http/response"
	"github.com/Vijay-lanka/hostel-management/internal/lib/sl"
	"github.com/Vijay-lanka/hostel-management/internal/models"
	services "github.com/Vijay-lanka/hostel-management/internal/services/payment"
)

// Handler обрабатывает оплату.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает оплату остатка.
type Service interface {
	PayNow(ctx context.Context, studentID string) (*models.PaymentSummary, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Оплатить
// @Description Отмечает оплату студента как Paid на полную сумму и возвращает новую сводку.
// @Tags Student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=models.PaymentSummary}
// @Failure 401 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse "Остаток уже нулевой"
// @Failure 500 {object} response.ErrorResponse
// @Router /student/payments/pay [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.pay"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	studentID := middlewarectx.GetUserID(r.Context())
	if studentID == "" {
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	summary, err := h.service.PayNow(r.Context(), studentID)
	switch {
	case errors.Is(err, services.ErrNothingToPay):
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, response.Error("nothing to pay"))
		return
	case err != nil:
		log.Error("payment failed", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("payment failed"))
		return
	}

	log.Info("payment settled", slog.String("student_id", studentID))
	render.JSON(w, r, response.StatusOKWithData(summary))
}
