// Package complaintstatus реализует HTTP-обработчик смены статуса жалобы администратором.
//
// Разрешён любой из статусов Open, In Progress, Resolved в любом порядке.
package complaintstatus

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/Vijay-lanka/hostel-management/internal/http/response"
	"github.com/Vijay-lanka/hostel-management/internal/lib/sl"
	"github.com/Vijay-lanka/hostel-management/internal/models"
	services "github.com/Vijay-lanka/hostel-management/internal/services/complaint"
)

// Handler обрабатывает смену статуса жалобы.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс смены статуса.
type Service interface {
	UpdateStatus(ctx context.Context, id int64, status string) (*models.Complaint, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Статус жалобы
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID жалобы"
// @Param request body models.DummyComplaintStatus true "Новый статус: Open, In Progress или Resolved"
// @Success 200 {object} response.Response{data=models.Complaint}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /admin/complaints/{id}/status [patch]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.complaint.status"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	var req models.DummyComplaintStatus
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	complaint, err := h.service.UpdateStatus(r.Context(), id, req.Status)
	switch {
	case errors.Is(err, services.ErrInvalidStatus):
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("status must be one of: Open, In Progress, Resolved"))
		return
	case errors.Is(err, services.ErrNotFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("complaint not found"))
		return
	case err != nil:
		log.Error("failed to update complaint status", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update complaint"))
		return
	}

	log.Info("complaint status updated", slog.Int64("id", id), slog.String("status", complaint.Status))
	render.JSON(w, r, response.StatusOKWithData(complaint))
}
