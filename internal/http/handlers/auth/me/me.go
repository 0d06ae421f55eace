// Package me реализует HTTP-обработчик получения профиля текущего пользователя.
package me

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/Vijay-lanka/hostel-management/internal/http/middlewarectx"
	"github.com/Vijay-lanka/hostel-management/internal/http/response"
	"github.com/Vijay-lanka/hostel-management/internal/lib/sl"
	"github.com/Vijay-lanka/hostel-management/internal/models"
	services "github.com/Vijay-lanka/hostel-management/internal/services/auth"
)

// Handler возвращает профиль вошедшего пользователя.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает получение текущего пользователя.
type Service interface {
	CurrentUser(ctx context.Context, userID string) (*models.CurrentUser, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Текущий пользователь
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=models.CurrentUser}
// @Failure 401 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse "Профиль не найден"
// @Router /auth/me [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.me"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user, err := h.service.CurrentUser(r.Context(), middlewarectx.GetUserID(r.Context()))
	if errors.Is(err, services.ErrProfileNotFound) {
		render.Status(r, http.StatusForbidden)
		render.JSON(w, r, response.Error("profile not found"))
		return
	}
	if err != nil {
		log.Error("failed to load current user", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal error"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(user))
}
