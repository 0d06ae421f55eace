// Package complaintlistall реализует HTTP-обработчик списка всех жалоб для администратора.
package complaintlistall

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

type Handler struct {
	log     *slog.Logger
	service Service
}

type Service interface {
	ListAll(ctx context.Context) ([]models.Complaint, error)
}

func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Все жалобы
// @Description Жалобы всех студентов с именами, новые первыми.
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=[]models.Complaint}
// @Failure 500 {object} response.ErrorResponse
// @Router /admin/complaints [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.complaint.listall"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	complaints, err := h.service.ListAll(r.Context())
	if err != nil {
		log.Error("failed to list complaints", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not list complaints"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"complaints": complaints,
	}))
}
