package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	// StatusQueueName is the durable queue carrying outbound status
	// change events.
	StatusQueueName = "order.status.changed"

	connectRetries    = 10
	connectRetryDelay = 2 * time.Second
)

// AmqpNotifier publishes order status changes to RabbitMQ. It implements
// ports.Notifier; publish failures are logged and swallowed because
// notifications run outside the transaction that produced the change.
type AmqpNotifier struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *slog.Logger
}

// NewAmqpNotifier connects to RabbitMQ and declares the status queue.
// The connection is retried because the broker may still be starting
// when the service comes up.
func NewAmqpNotifier(url string, logger *slog.Logger) (*AmqpNotifier, error) {
	var conn *amqp.Connection
	var err error

	for i := range connectRetries {
		conn, err = amqp.Dial(url)
		if err == nil {
			break
		}
		logger.Warn("failed to connect to RabbitMQ, retrying",
			"attempt", i+1, "retries", connectRetries, "error", err)
		time.Sleep(connectRetryDelay)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	_, err = channel.QueueDeclare(
		StatusQueueName,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return nil, fmt.Errorf("failed to declare queue %s: %w", StatusQueueName, err)
	}

	return &AmqpNotifier{conn: conn, channel: channel, logger: logger}, nil
}

var _ ports.Notifier = (*AmqpNotifier)(nil)

// NotifyCreated publishes a CREATED status event.
func (n *AmqpNotifier) NotifyCreated(ctx context.Context, aggregate *order.Order) {
	n.publish(ctx, aggregate)
}

// NotifyInRelease publishes an IN_RELEASE status event.
func (n *AmqpNotifier) NotifyInRelease(ctx context.Context, aggregate *order.Order) {
	n.publish(ctx, aggregate)
}

// NotifyReleased publishes a RELEASED status event.
func (n *AmqpNotifier) NotifyReleased(ctx context.Context, aggregate *order.Order) {
	n.publish(ctx, aggregate)
}

// NotifyInShipment publishes an IN_SHIPMENT status event.
func (n *AmqpNotifier) NotifyInShipment(ctx context.Context, aggregate *order.Order) {
	n.publish(ctx, aggregate)
}

// NotifyShipped publishes a SHIPPED status event.
func (n *AmqpNotifier) NotifyShipped(ctx context.Context, aggregate *order.Order) {
	n.publish(ctx, aggregate)
}

// NotifyDelivered publishes a DELIVERED status event.
func (n *AmqpNotifier) NotifyDelivered(ctx context.Context, aggregate *order.Order) {
	n.publish(ctx, aggregate)
}

// NotifyCancelled publishes a CANCELLED status event.
func (n *AmqpNotifier) NotifyCancelled(ctx context.Context, aggregate *order.Order) {
	n.publish(ctx, aggregate)
}

// Close releases the channel and connection.
func (n *AmqpNotifier) Close() {
	_ = n.channel.Close()
	_ = n.conn.Close()
}

func (n *AmqpNotifier) publish(ctx context.Context, aggregate *order.Order) {
	event := newStatusChangeEvent(aggregate, time.Now().UTC())

	body, err := json.Marshal(event)
	if err != nil {
		n.logger.Error("failed to encode status event",
			"order", event.OrderNumber, "status", event.Status, "error", err)
		return
	}

	err = n.channel.PublishWithContext(ctx,
		"",              // exchange
		StatusQueueName, // routing key
		false,           // mandatory
		false,           // immediate
		amqp.Publishing{
			MessageId:    event.OrderNumber + ":" + event.Status,
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		})
	if err != nil {
		n.logger.Error("failed to publish status event",
			"order", event.OrderNumber, "status", event.Status, "error", err)
		return
	}

	n.logger.Info("published status event",
		"order", event.OrderNumber, "status", event.Status, "queue", StatusQueueName)
}
