// Package notifier собирает сервис уведомлений: читает события хостела из RabbitMQ и отправляет письма.
package notifier

import (
	"context"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/Vijay-lanka/hostel-management/internal/config"
	"github.com/Vijay-lanka/hostel-management/internal/lib/rabbitmq"
	"github.com/Vijay-lanka/hostel-management/internal/lib/sl"
	"github.com/Vijay-lanka/hostel-management/internal/lib/smtp"
	notifierservice "github.com/Vijay-lanka/hostel-management/internal/services/notifier"
	"github.com/Vijay-lanka/hostel-management/internal/storage"
)

type App struct {
	db              *storage.Storage
	conn            *amqp.Connection
	ch              *amqp.Channel
	notifierService *notifierservice.NotifierService
	logger          *slog.Logger
}

func New(_ context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	conn, err := rabbitmq.Connect(cfg.RabbitMQURL, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetEventQueues())
	if err != nil {
		_ = conn.Close()
		_ = db.Close()
		return nil, err
	}

	dialer := smtp.NewStartTLSDialer(cfg.SMTP, logger)
	notifierService := notifierservice.NewNotifierService(db, dialer, logger)

	return &App{
		db:              db,
		conn:            conn,
		ch:              ch,
		notifierService: notifierService,
		logger:          logger,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	handle := func(routingKey string, body []byte) error {
		return a.notifierService.Handle(ctx, routingKey, body)
	}

	for _, q := range rabbitmq.GetEventQueues() {
		if err := rabbitmq.ConsumerMessage(ctx, a.logger, a.ch, q.QueueName, handle); err != nil {
			a.logger.Error("failed to start consumer", slog.String("queue", q.QueueName), sl.Err(err))
			return err
		}
		a.logger.Info("consumer started", slog.String("queue", q.QueueName))
	}

	<-ctx.Done()
	a.logger.Info("notifier shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", sl.Err(err))
	}
	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", sl.Err(err))
	}
	if err := a.db.Close(); err != nil {
		a.logger.Error("failed to close database", sl.Err(err))
	}
	return nil
}
