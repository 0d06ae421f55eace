// Package paymenttoggle реализует HTTP-обработчик переключения оплаты студента администратором.
//
// Ответ содержит обновлённый список комнат со студентами, чтобы клиент сразу показал новое состояние.
package paymenttoggle

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/Vijay-lanka/hostel-management/internal/http/response"
	"github.com/Vijay-lanka/hostel-management/internal/lib/sl"
	"github.com/Vijay-lanka/hostel-management/internal/models"
	services "github.com/Vijay-lanka/hostel-management/internal/services/room"
)

// Handler обрабатывает переключение оплаты.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает переключение оплаты.
type Service interface {
	TogglePayment(ctx context.Context, studentID string) ([]models.RoomRoster, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Переключить оплату
// @Description Paid становится Pending и наоборот. Если записи нет, создаётся оплаченная.
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param studentID path string true "ID студента"
// @Success 200 {object} response.Response{data=[]models.RoomRoster}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 422 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /admin/payments/{studentID}/toggle [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.room.paymenttoggle"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	studentID := chi.URLParam(r, "studentID")
	if _, err := uuid.Parse(studentID); err != nil {
		log.Error("invalid student id", slog.String("student_id", studentID), sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid student id"))
		return
	}

	roster, err := h.service.TogglePayment(r.Context(), studentID)
	switch {
	case errors.Is(err, services.ErrStudentNotFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("student not found"))
		return
	case errors.Is(err, services.ErrNotStudent):
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("profile is not a student"))
		return
	case err != nil:
		log.Error("failed to toggle payment", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update payment"))
		return
	}

	log.Info("payment toggled", slog.String("student_id", studentID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"rooms": roster,
	}))
}
