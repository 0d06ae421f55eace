package hostel

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/streadway/amqp"

	"github.com/Vijay-lanka/hostel-management/internal/cache"
	"github.com/Vijay-lanka/hostel-management/internal/config"
	"github.com/Vijay-lanka/hostel-management/internal/lib/jwt"
	"github.com/Vijay-lanka/hostel-management/internal/lib/rabbitmq"
	"github.com/Vijay-lanka/hostel-management/internal/lib/sl"
	"github.com/Vijay-lanka/hostel-management/internal/migrations"
	authservice "github.com/Vijay-lanka/hostel-management/internal/services/auth"
	complaintservice "github.com/Vijay-lanka/hostel-management/internal/services/complaint"
	dashboardservice "github.com/Vijay-lanka/hostel-management/internal/services/dashboard"
	paymentservice "github.com/Vijay-lanka/hostel-management/internal/services/payment"
	roomservice "github.com/Vijay-lanka/hostel-management/internal/services/room"
	"github.com/Vijay-lanka/hostel-management/internal/storage"
)

const shutdownTimeout = 15 * time.Second

type App struct {
	server *http.Server
	logger *slog.Logger
	db     *storage.Storage
	cache  *cache.Cache
	conn   *amqp.Connection
	ch     *amqp.Channel
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		_ = db.Close()
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		_ = cacheRedis.Close()
		_ = db.Close()
		return nil, err
	}
	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetEventQueues())
	if err != nil {
		_ = conn.Close()
		_ = cacheRedis.Close()
		_ = db.Close()
		return nil, err
	}
	publisher := rabbitmq.NewPublisher(ch)

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	services := Services{
		Auth:      authservice.NewAuthService(db, jwtMaker, cacheRedis, cacheRedis, logger),
		Complaint: complaintservice.NewComplaintService(db, cacheRedis, publisher, logger),
		Room:      roomservice.NewRoomService(db, cacheRedis, publisher, cfg.RoomFee, logger),
		Payment:   paymentservice.NewPaymentService(db, cacheRedis, publisher, cfg.TotalFee, logger),
		Dashboard: dashboardservice.NewDashboardService(db, cacheRedis, cfg.StatsTTL, logger),
	}

	if cfg.AdminEmail != "" {
		if err = services.Auth.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword, cfg.AdminName); err != nil {
			_ = ch.Close()
			_ = conn.Close()
			_ = cacheRedis.Close()
			_ = db.Close()
			return nil, err
		}
		logger.Info("bootstrap admin ensured", slog.String("email", cfg.AdminEmail))
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg.HTTPServer, services, db, reg)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
		conn:   conn,
		ch:     ch,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.close()
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.close()
		return err
	}
}

func (a *App) close() {
	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", sl.Err(err))
	}
	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", sl.Err(err))
	}
	if err := a.cache.Close(); err != nil {
		a.logger.Error("failed to close redis", sl.Err(err))
	}
	if err := a.db.Close(); err != nil {
		a.logger.Error("failed to close database", sl.Err(err))
	}
}
