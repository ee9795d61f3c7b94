// Package queue_publisher publishes reservation events to RabbitMQ.
// Publishing is fire-and-forget from the caller's perspective: errors are
// logged and returned, and no booking response ever waits on or fails
// because of the broker.
package queue_publisher

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	q "berberi/internal/queue"
)

// PublishReservationEvent publishes a ReservationEvent to the
// "reservation.events" queue. The function attempts to be robust and never
// panics; any error is logged and returned so the caller can ignore it.
// Messages are marked persistent so they survive broker restarts.
func PublishReservationEvent(ctx context.Context, event q.ReservationEvent) error {
	conn, err := amqp.Dial(q.BrokerURL())
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(
		"reservation.events", // name
		true,                 // durable
		false,                // autoDelete
		false,                // exclusive
		false,                // noWait
		nil,                  // args
	); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx,
		"",                   // default exchange
		"reservation.events", // routing key = queue name
		false,                // mandatory
		false,                // immediate
		pub,
	); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}
	return nil
}
