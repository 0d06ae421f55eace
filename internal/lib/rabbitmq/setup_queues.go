package rabbitmq

// Exchange обменник доменных событий хостела.
const Exchange = "hostel.events"

// Ключи маршрутизации событий.
const (
	KeyComplaintCreated       = "complaint.created"
	KeyComplaintStatusChanged = "complaint.status_changed"
	KeyPaymentStatusChanged   = "payment.status_changed"
	KeyPaymentReminder        = "payment.reminder"
)

// Очереди, которые читает сервис уведомлений.
const (
	QueueComplaints = "hostel.complaints"
	QueuePayments   = "hostel.payments"
)

// QueueConfig описывает очередь и ключи, с которыми она привязана к обменнику.
type QueueConfig struct {
	QueueName   string
	RoutingKeys []string
}

// GetEventQueues возвращает очереди сервиса уведомлений.
func GetEventQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: QueueComplaints, RoutingKeys: []string{KeyComplaintCreated, KeyComplaintStatusChanged}},
		{QueueName: QueuePayments, RoutingKeys: []string{KeyPaymentStatusChanged, KeyPaymentReminder}},
	}
}
