// Package roomroster реализует HTTP-обработчик списка комнат со студентами и их оплатой.
//
// Загрузка списка создаёт недостающие записи об оплате со статусом Pending.
package roomroster

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

// Handler обрабатывает запрос списка студентов по комнатам.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает сборку списка.
type Service interface {
	Roster(ctx context.Context) ([]models.RoomRoster, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Студенты по комнатам
// @Description Для каждой комнаты возвращает студентов, статус оплаты и оплаченную сумму.
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=[]models.RoomRoster}
// @Failure 500 {object} response.ErrorResponse
// @Router /admin/rooms/students [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.room.roster"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	roster, err := h.service.Roster(r.Context())
	if err != nil {
		log.Error("failed to build roster", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not load rooms"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"rooms": roster,
	}))
}
