// Package complaintcreate реализует HTTP-обработчик создания жалобы студентом.
//
// Жалоба всегда создаётся от имени пользователя из токена со статусом Open.
package complaintcreate

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/Vijay-lanka/hostel-management/internal/http/middlewarectx"
	"github.com/Vijay-lanka/hostel-management/internal/http/response"
	"github.com/Vijay-lanka/hostel-management/internal/lib/sl"
	"github.com/Vijay-lanka/hostel-management/internal/models"
	services "github.com/Vijay-lanka/hostel-management/internal/services/complaint"
)

// Handler обрабатывает создание жалобы.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс создания жалобы.
type Service interface {
	Create(ctx context.Context, studentID string, req models.DummyComplaint) (*models.Complaint, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Новая жалоба
// @Description Создаёт жалобу текущего студента со статусом Open.
// @Tags Student
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.DummyComplaint true "Тема и описание"
// @Success 201 {object} response.Response{data=models.Complaint}
// @Failure 400 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /student/complaints [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.complaint.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyComplaint
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

	studentID := middlewarectx.GetUserID(r.Context())
	complaint, err := h.service.Create(r.Context(), studentID, req)
	if errors.Is(err, services.ErrEmptyFields) {
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("title and description are required"))
		return
	}
	if err != nil {
		log.Error("failed to create complaint", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create complaint"))
		return
	}

	log.Info("complaint created", slog.Int64("id", complaint.ID), slog.String("student_id", studentID))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(complaint))
}
