package rabbitmq

import (
	"fmt"

	"github.com/streadway/amqp"
)

// Ключи маршрутизации событий.
const (
	RoutingDonationCreated = "donation.created"
	RoutingContactCreated  = "contact.created"
)

// QueueConfig очередь и шаблон ключа, которым она привязана к exchange.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// NotificationQueues очереди для уведомления администраторов.
func NotificationQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "foundation.donations", RoutingKey: "donation.*"},
		{QueueName: "foundation.contact", RoutingKey: "contact.*"},
	}
}

// SetupChannel открывает канал, объявляет durable topic-exchange и привязывает очереди.
func SetupChannel(conn *amqp.Connection, exchange string, queues []QueueConfig) (*amqp.Channel, error) {
	const op = "rabbitmq.SetupChannel"

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	err = ch.ExchangeDeclare(
		exchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for _, q := range queues {
		if _, err := ch.QueueDeclare(q.QueueName, true, false, false, false, nil); err != nil {
			_ = ch.Close()
			return nil, fmt.Errorf("%s: failed to declare queue %s: %w", op, q.QueueName, err)
		}
		if err := ch.QueueBind(q.QueueName, q.RoutingKey, exchange, false, nil); err != nil {
			_ = ch.Close()
			return nil, fmt.Errorf("%s: failed to bind queue %s with routing key %s: %w", op, q.QueueName, q.RoutingKey, err)
		}
	}

	return ch, nil
}
