// Package register реализует открытый HTTP-обработчик регистрации студента.
//
// Обработчик декодирует JSON, валидирует поля и создаёт учётную запись вместе с профилем.
// Роль admin здесь отклоняется: администраторов создаёт только администратор.
package register

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/Vijay-lanka/hostel-management/internal/http/response"
	"github.com/Vijay-lanka/hostel-management/internal/lib/sl"
	"github.com/Vijay-lanka/hostel-management/internal/models"
	services "github.com/Vijay-lanka/hostel-management/internal/services/auth"
)

// Handler обрабатывает HTTP-запросы для регистрации пользователей.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики регистрации.
type Service interface {
	SignUp(ctx context.Context, req models.DummyRegister) (string, error)
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
// @Summary Регистрация пользователя
// @Description Создаёт учётную запись и профиль студента. Роль admin отклоняется с 403.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body models.DummyRegister true "Данные регистрации"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 403 {object} response.ErrorResponse "Регистрация администратора запрещена"
// @Failure 409 {object} response.ErrorResponse "Почта уже занята"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /auth/register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.DummyRegister
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	log.Info("request body decoded", slog.String("email", req.Email), slog.String("role", req.Role))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	id, err := h.service.SignUp(r.Context(), req)
	switch {
	case errors.Is(err, services.ErrUserExists):
		log.Info("email already registered")
		render.Status(r, http.StatusConflict)
		render.JSON(w, r, response.Error("user with this email already exists"))
		return
	case errors.Is(err, services.ErrAdminSignUp):
		log.Warn("anonymous admin sign-up rejected", slog.String("email", req.Email))
		render.Status(r, http.StatusForbidden)
		render.JSON(w, r, response.Error("admin accounts can only be created by an admin"))
		return
	case errors.Is(err, services.ErrInvalidRole):
		render.Status(r, http.StatusUnprocessableEntity)
		render.JSON(w, r, response.Error("invalid role"))
		return
	case err != nil:
		log.Error("registration failed", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to register user"))
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"id":      id,
		"message": "user created successfully",
	}))
}
