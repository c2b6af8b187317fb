// Package amqp ingests upstream order events from RabbitMQ: order
// creations from the checkout, and release/shipment updates from the
// fulfillment systems. Messages are acknowledged only after successful
// handling. A message that fails domain validation or arrives as a
// duplicate is acknowledged anyway, so a poison message can never wedge a
// queue; infrastructure failures are nacked back for redelivery.
package amqp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/pkg/errs"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Queue names of the upstream event streams.
const (
	OrderCreatedQueue    = "order.created"
	ReleaseUpdatedQueue  = "order.release.updated"
	ShipmentUpdatedQueue = "order.shipment.updated"
)

const (
	connectRetries    = 10
	connectRetryDelay = 2 * time.Second
)

// Consumer subscribes to the three upstream queues and feeds each message
// through the matching command handler.
type Consumer struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *slog.Logger

	createOrderHandler   commands.CreateOrderCommandHandler
	applyReleaseHandler  commands.ApplyReleaseSnapshotCommandHandler
	applyShipmentHandler commands.ApplyShipmentSnapshotCommandHandler
}

// NewConsumer connects to RabbitMQ and declares the upstream queues. The
// connection is retried because the broker may still be starting when the
// service comes up.
func NewConsumer(
	url string,
	createOrderHandler commands.CreateOrderCommandHandler,
	applyReleaseHandler commands.ApplyReleaseSnapshotCommandHandler,
	applyShipmentHandler commands.ApplyShipmentSnapshotCommandHandler,
	logger *slog.Logger,
) (*Consumer, error) {
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

	for _, queue := range []string{OrderCreatedQueue, ReleaseUpdatedQueue, ShipmentUpdatedQueue} {
		_, err = channel.QueueDeclare(
			queue,
			true,  // durable
			false, // delete when unused
			false, // exclusive
			false, // no-wait
			nil,   // arguments
		)
		if err != nil {
			return nil, fmt.Errorf("failed to declare queue %s: %w", queue, err)
		}
	}

	return &Consumer{
		conn:                 conn,
		channel:              channel,
		logger:               logger,
		createOrderHandler:   createOrderHandler,
		applyReleaseHandler:  applyReleaseHandler,
		applyShipmentHandler: applyShipmentHandler,
	}, nil
}

// Start begins consuming all three queues. Each queue runs its own
// delivery loop; the loops stop when the context is cancelled or the
// channel closes.
func (c *Consumer) Start(ctx context.Context) error {
	routes := []struct {
		queue   string
		handler func(context.Context, []byte) error
	}{
		{OrderCreatedQueue, c.handleOrderCreated},
		{ReleaseUpdatedQueue, c.handleReleaseUpdated},
		{ShipmentUpdatedQueue, c.handleShipmentUpdated},
	}

	for _, route := range routes {
		deliveries, err := c.channel.Consume(
			route.queue,
			"",    // consumer
			false, // auto-ack: we ack only after successful handling
			false, // exclusive
			false, // no-local
			false, // no-wait
			nil,   // args
		)
		if err != nil {
			return fmt.Errorf("failed to consume queue %s: %w", route.queue, err)
		}

		go c.loop(ctx, route.queue, deliveries, route.handler)
	}

	return nil
}

// Close releases the channel and connection, which also terminates the
// delivery loops.
func (c *Consumer) Close() {
	_ = c.channel.Close()
	_ = c.conn.Close()
}

func (c *Consumer) loop(
	ctx context.Context, queue string,
	deliveries <-chan amqp.Delivery,
	handler func(context.Context, []byte) error,
) {
	for {
		select {
		case <-ctx.Done():
			return
		case delivery, ok := <-deliveries:
			if !ok {
				return
			}
			c.dispatch(ctx, queue, delivery, handler)
		}
	}
}

func (c *Consumer) dispatch(
	ctx context.Context, queue string,
	delivery amqp.Delivery,
	handler func(context.Context, []byte) error,
) {
	err := handler(ctx, delivery.Body)
	if err == nil {
		_ = delivery.Ack(false)
		return
	}

	if requeue(err) {
		c.logger.Error("event processing failed, requeueing",
			"queue", queue, "messageId", delivery.MessageId,
			"error", errs.NewProcessingError(queue, err))
		_ = delivery.Nack(false, true)
		return
	}

	// Validation failures and duplicates can never succeed on redelivery.
	c.logger.Warn("event rejected, acknowledging",
		"queue", queue, "messageId", delivery.MessageId, "error", err)
	_ = delivery.Ack(false)
}

// requeue reports whether a failed message should be redelivered. Domain
// rejections are final; everything else is assumed transient.
func requeue(err error) bool {
	for _, final := range []error{
		errs.ErrValueIsRequired,
		errs.ErrValueIsInvalid,
		errs.ErrValueIsOutOfRange,
		errs.ErrInvalidStateTransition,
		errs.ErrConflict,
		errs.ErrObjectNotFound,
	} {
		if errors.Is(err, final) {
			return false
		}
	}
	return true
}

func (c *Consumer) handleOrderCreated(ctx context.Context, body []byte) error {
	params, err := decodeOrderCreated(body)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCreateOrderCommand(params)
	if err != nil {
		return err
	}

	orderID, err := c.createOrderHandler.Handle(ctx, cmd)
	if err != nil {
		return err
	}

	c.logger.Info("order accepted from event stream",
		"order", orderID.String(), "customer", cmd.CustomerID())
	return nil
}

func (c *Consumer) handleReleaseUpdated(ctx context.Context, body []byte) error {
	cmd, err := decodeReleaseUpdated(body)
	if err != nil {
		return err
	}

	if err := c.applyReleaseHandler.Handle(ctx, cmd); err != nil {
		return err
	}

	c.logger.Info("release snapshot applied",
		"release", cmd.ReleaseID(), "order", cmd.OrderID().String(), "status", cmd.Status())
	return nil
}

func (c *Consumer) handleShipmentUpdated(ctx context.Context, body []byte) error {
	cmd, err := decodeShipmentUpdated(body)
	if err != nil {
		return err
	}

	if err := c.applyShipmentHandler.Handle(ctx, cmd); err != nil {
		return err
	}

	c.logger.Info("shipment snapshot applied",
		"shipment", cmd.ShipmentID(), "order", cmd.OrderID().String(), "status", cmd.Status())
	return nil
}
