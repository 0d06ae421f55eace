// Package complaintlist реализует HTTP-обработчик списка жалоб текущего студента.
package complaintlist

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

// Handler обрабатывает запросы на получение своих жалоб.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка жалоб.
type Service interface {
	ListOwn(ctx context.Context, studentID string) ([]models.Complaint, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Мои жалобы
// @Tags Student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=[]models.Complaint}
// @Failure 500 {object} response.ErrorResponse
// @Router /student/complaints [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.complaint.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	complaints, err := h.service.ListOwn(r.Context(), middlewarectx.GetUserID(r.Context()))
	if err != nil {
		log.Error("failed to list complaints", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list complaints"))
		return
	}

	log.Info("success to list complaints", slog.Int("count", len(complaints)))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"complaints": complaints,
	}))
}
