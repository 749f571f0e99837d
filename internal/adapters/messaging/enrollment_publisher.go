package messaging

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/hangang-korean/admin-service/internal/core/ports"
)

type enrollmentMessage struct {
	EventType string                `json:"event_type"`
	Event     ports.EnrollmentEvent `json:"event"`
}

func (rmq *RabbitMQBroker) PublishEnrollmentEvent(ctx context.Context, eventType string, evt ports.EnrollmentEvent) error {
	body, err := json.Marshal(enrollmentMessage{EventType: eventType, Event: evt})
	if err != nil {
		return err
	}

	// Respect context deadline
	if deadline, ok := ctx.Deadline(); ok {
		if time.Until(deadline) <= 0 {
			return ctx.Err()
		}
	}

	// Use circuit breaker to protect RabbitMQ publish operation
	_, err = rmq.cb.Execute(func() (interface{}, error) {
		err := rmq.ch.PublishWithContext(
			ctx,
			"",            // exchange (default)
			rmq.queueName, // routing key == queue name
			false,         // mandatory
			false,         // immediate
			amqp.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp.Persistent,
				Type:         eventType,
				Body:         body,
			},
		)
		return nil, err
	})
	return err
}
