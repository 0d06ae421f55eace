// Package roomallocate реализует HTTP-обработчик заселения студента в комнату.
package roomallocate

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
	services "github.com/Vijay-lanka/hostel-management/internal/services/room"
)

// Handler обрабатывает заселение.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс заселения.
type Service interface {
	Allocate(ctx context.Context, roomID int64, studentID string) (*models.RoomAllocation, error)
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
// @Summary Заселение
// @Description Заселяет студента в комнату, если в ней есть свободное место.
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID комнаты"
// @Param request body models.DummyAllocation true "ID студента"
// @Success 201 {object} response.Response{data=models.RoomAllocation}
// @Failure 400 {object} response.ErrorResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 409 {object} response.ErrorResponse "Нет мест или студент уже заселён"
// @Failure 422 {object} response.ErrorResponse
// @Router /admin/rooms/{id}/allocations [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.room.allocate"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	roomID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	var req models.DummyAllocation
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

	alloc, err := h.service.Allocate(r.Context(), roomID, req.StudentID)
	switch {
	case errors.Is(err, services.ErrRoomNotFound), errors.Is(err, services.ErrStudentNotFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error(err.Error()))
		return
	case errors.Is(err, services.ErrRoomFull), errors.Is(err, services.ErrAlreadyAllocated):
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, response.Error(err.Error()))
		return
	case errors.Is(err, services.ErrNotStudent):
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error(err.Error()))
		return
	case err != nil:
		log.Error("failed to allocate student", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not allocate student"))
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(alloc))
}
