// Package dashboard реализует HTTP-обработчик агрегатов панели администратора.
package dashboard

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/Vijay-lanka/hostel-management/internal/http/response"
	"github.com/Vijay-lanka/hostel-management/internal/lib/sl"
	"github.com/Vijay-lanka/hostel-management/internal/models"
)

// Handler обрабатывает запрос агрегатов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает получение агрегатов.
type Service interface {
	Stats(ctx context.Context) (*models.DashboardStats, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Панель администратора
// @Description Число студентов и комнат, открытые жалобы, собранные и ожидаемые суммы.
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=models.DashboardStats}
// @Failure 500 {object} response.ErrorResponse
// @Router /admin/dashboard [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.dashboard.stats"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	stats, err := h.service.Stats(r.Context())
	if err != nil {
		log.Error("failed to load dashboard stats", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not load dashboard"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(stats))
}
