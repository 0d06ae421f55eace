// Package admincreate реализует создание администратора другим администратором.
package admincreate

import (
	"context"
	"encoding/json"
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
	services "github.com/Vijay-lanka/hostel-management/internal/services/auth"
)

// Handler обрабатывает HTTP-запросы на создание администратора.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики создания администратора.
type Service interface {
	CreateAdmin(ctx context.Context, req models.DummyAdmin) (string, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Создание администратора
// @Description Администратор создаёт учётную запись другого администратора.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body models.DummyAdmin true "Данные администратора"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 409 {object} response.ErrorResponse "Почта уже занята"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Security BearerAuth
// @Router /admin/users [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.admincreate"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("created_by", middlewarectx.GetUserID(r.Context())),
	)

	var req models.DummyAdmin
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
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

	id, err := h.service.CreateAdmin(r.Context(), req)
	switch {
	case errors.Is(err, services.ErrUserExists):
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, response.Error("user with this email already exists"))
		return
	case err != nil:
		log.Error("failed to create admin", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to create admin"))
		return
	}

	log.Info("admin created", slog.String("id", id))
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"id":      id,
		"message": "admin created successfully",
	}))
}
