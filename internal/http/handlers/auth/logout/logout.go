// Package logout реализует HTTP-обработчик выхода: токен запроса отзывается до конца срока действия.
package logout

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/Vijay-lanka/hostel-management/internal/http/middlewarectx"
	"github.com/Vijay-lanka/hostel-management/internal/http/response"
	"github.com/Vijay-lanka/hostel-management/internal/lib/sl"
)

// Handler обрабатывает выход пользователя.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает отзыв токена.
type Service interface {
	SignOut(ctx context.Context, token string) error
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Выход
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /auth/logout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	token := middlewarectx.GetToken(r.Context())
	if token == "" {
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("missing token"))
		return
	}

	if err := h.service.SignOut(r.Context(), token); err != nil {
		log.Error("failed to sign out", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to sign out"))
		return
	}

	log.Info("user signed out", slog.String("user_id", middlewarectx.GetUserID(r.Context())))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"redirect": "/",
	}))
}
