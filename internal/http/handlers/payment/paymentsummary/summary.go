// Package paymentsummary реализует HTTP-обработчик сводки по оплате студента.
package paymentsummary

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/Vijay-lanka/hostel-management/internal/http/middlewarectx"
	"github.com/Vijay-lanka/hostel-management/internal/http/response"
	"github.com/Vijay-lanka/hostel-management/internal/lib/sl"
	"github.com/Vijay-lanka/hostel-management/internal/models"
)

// Handler обрабатывает запрос сводки.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает расчёт сводки по оплате.
type Service interface {
	Summary(ctx context.Context, studentID string) (*models.PaymentSummary, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Моя оплата
// @Description Полная сумма, оплачено, остаток и история оплат текущего студента.
// @Tags Student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=models.PaymentSummary}
// @Failure 401 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /student/payments [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.summary"

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

	summary, err := h.service.Summary(r.Context(), studentID)
	if err != nil {
		log.Error("failed to load payment summary", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not load payments"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(summary))
}
