// Package hostel собирает HTTP-сервис хостела: хранилище, кеш, брокер событий и маршруты.
package hostel

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/Vijay-lanka/hostel-management/internal/config"
	"github.com/Vijay-lanka/hostel-management/internal/http/handlers/auth/admincreate"
	"github.com/Vijay-lanka/hostel-management/internal/http/handlers/auth/login"
	"github.com/Vijay-lanka/hostel-management/internal/http/handlers/auth/logout"
	"github.com/Vijay-lanka/hostel-management/internal/http/handlers/auth/me"
	"github.com/Vijay-lanka/hostel-management/internal/http/handlers/auth/register"
	"github.com/Vijay-lanka/hostel-management/internal/http/handlers/complaint/complaintcreate"
	"github.com/Vijay-lanka/hostel-management/internal/http/handlers/complaint/complaintlist"
	"github.com/Vijay-lanka/hostel-management/internal/http/handlers/complaint/complaintlistall"
	"github.com/Vijay-lanka/hostel-management/internal/http/handlers/complaint/complaintstatus"
	"github.com/Vijay-lanka/hostel-management/internal/http/handlers/dashboard"
	"github.com/Vijay-lanka/hostel-management/internal/http/handlers/health"
	"github.com/Vijay-lanka/hostel-management/internal/http/handlers/payment/paymentlist"
	"github.com/Vijay-lanka/hostel-management/internal/http/handlers/payment/paymentpay"
	"github.com/Vijay-lanka/hostel-management/internal/http/handlers/payment/paymentsummary"
	"github.com/Vijay-lanka/hostel-management/internal/http/handlers/room/paymenttoggle"
	"github.com/Vijay-lanka/hostel-management/internal/http/handlers/room/roomallocate"
	"github.com/Vijay-lanka/hostel-management/internal/http/handlers/room/roomcreate"
	"github.com/Vijay-lanka/hostel-management/internal/http/handlers/room/roomlist"
	"github.com/Vijay-lanka/hostel-management/internal/http/handlers/room/roomroster"
	"github.com/Vijay-lanka/hostel-management/internal/http/middlewarectx"
	"github.com/Vijay-lanka/hostel-management/internal/models"
	authservice "github.com/Vijay-lanka/hostel-management/internal/services/auth"
	complaintservice "github.com/Vijay-lanka/hostel-management/internal/services/complaint"
	dashboardservice "github.com/Vijay-lanka/hostel-management/internal/services/dashboard"
	paymentservice "github.com/Vijay-lanka/hostel-management/internal/services/payment"
	roomservice "github.com/Vijay-lanka/hostel-management/internal/services/room"
)

// Services набор сервисов, которые обслуживают маршруты.
type Services struct {
	Auth      *authservice.AuthService
	Complaint *complaintservice.ComplaintService
	Room      *roomservice.RoomService
	Payment   *paymentservice.PaymentService
	Dashboard *dashboardservice.DashboardService
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg config.HTTPServer, svc Services, db health.Pinger, reg *prometheus.Registry) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
		middlewarectx.NewMetrics(reg).Handler,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RateLimitMiddleware(logger, cfg.RateLimit, cfg.RateBurst))
			r.Post("/auth/register", register.New(logger, svc.Auth).ServeHTTP)
			r.Post("/auth/login", login.New(logger, svc.Auth).ServeHTTP)
		})

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(svc.Auth, logger))

			r.Post("/auth/logout", logout.New(logger, svc.Auth).ServeHTTP)
			r.Get("/auth/me", me.New(logger, svc.Auth).ServeHTTP)

			r.Route("/student", func(r chi.Router) {
				r.Use(middlewarectx.RequireRole(logger, models.RoleStudent))
				r.Get("/complaints", complaintlist.New(logger, svc.Complaint).ServeHTTP)
				r.Post("/complaints", complaintcreate.New(logger, svc.Complaint).ServeHTTP)
				r.Get("/payments", paymentsummary.New(logger, svc.Payment).ServeHTTP)
				r.Post("/payments/pay", paymentpay.New(logger, svc.Payment).ServeHTTP)
			})

			r.Route("/admin", func(r chi.Router) {
				r.Use(middlewarectx.RequireRole(logger, models.RoleAdmin))
				r.Get("/dashboard", dashboard.New(logger, svc.Dashboard).ServeHTTP)
				r.Post("/users", admincreate.New(logger, svc.Auth).ServeHTTP)
				r.Get("/complaints", complaintlistall.New(logger, svc.Complaint).ServeHTTP)
				r.Patch("/complaints/{id}/status", complaintstatus.New(logger, svc.Complaint).ServeHTTP)
				r.Get("/rooms", roomlist.New(logger, svc.Room).ServeHTTP)
				r.Post("/rooms", roomcreate.New(logger, svc.Room).ServeHTTP)
				r.Get("/rooms/students", roomroster.New(logger, svc.Room).ServeHTTP)
				r.Post("/rooms/{id}/allocations", roomallocate.New(logger, svc.Room).ServeHTTP)
				r.Get("/payments", paymentlist.New(logger, svc.Payment).ServeHTTP)
				r.Post("/payments/{studentID}/toggle", paymenttoggle.New(logger, svc.Room).ServeHTTP)
			})
		})
	})

	r.Get("/health", health.New(logger, db).ServeHTTP)
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
