package amqp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

// ErrPermanent marks a handler failure that retrying cannot fix. Deliveries
// failing with it are dropped instead of requeued.
var ErrPermanent = errors.New("permanent failure")

// ImportHandler processes one decoded batch.
type ImportHandler func(ctx context.Context, msg *ImportBatchMessage) error

// acknowledger is the part of amqp091.Delivery the consumer settles with.
type acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

type Client struct {
	conn         *amqp091.Connection
	channel      *amqp091.Channel
	exchangeName string
	queueName    string
}

func NewClient(url, exchangeName, queueName string) (*Client, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	client := &Client{
		conn:         conn,
		channel:      channel,
		exchangeName: exchangeName,
		queueName:    queueName,
	}

	if err := client.setup(); err != nil {
		client.Close()
		return nil, fmt.Errorf("setup exchange and queue: %w", err)
	}

	return client, nil
}

func (c *Client) setup() error {
	err := c.channel.ExchangeDeclare(
		c.exchangeName, // name
		"direct",       // type
		true,           // durable
		false,          // auto-deleted
		false,          // internal
		false,          // no-wait
		nil,            // arguments
	)
	if err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	_, err = c.channel.QueueDeclare(
		c.queueName, // name
		true,        // durable
		false,       // delete when unused
		false,       // exclusive
		false,       // no-wait
		nil,         // arguments
	)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	// routing key is the queue name on the direct exchange
	err = c.channel.QueueBind(c.queueName, c.queueName, c.exchangeName, false, nil)
	if err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}

	// one batch in flight per consumer
	if err := c.channel.Qos(1, 0, false); err != nil {
		return fmt.Errorf("set qos: %w", err)
	}

	return nil
}

// PublishImportBatch publishes a batch for the import worker.
func (c *Client) PublishImportBatch(ctx context.Context, msg *ImportBatchMessage) error {
	body, err := msg.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = c.channel.PublishWithContext(
		ctx,
		c.exchangeName, // exchange
		c.queueName,    // routing key
		false,          // mandatory
		false,          // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			MessageId:    msg.BatchID,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	slog.InfoContext(ctx, "Published import batch",
		"batch_id", msg.BatchID,
		"user_id", msg.UserID,
		"drafts", len(msg.Drafts),
		"queue", c.queueName)
	return nil
}

// ConsumeImportBatches delivers batches to handler until ctx is cancelled or
// the channel closes.
func (c *Client) ConsumeImportBatches(ctx context.Context, handler ImportHandler) error {
	msgs, err := c.channel.Consume(
		c.queueName, // queue
		"",          // consumer
		false,       // auto-ack
		false,       // exclusive
		false,       // no-local
		false,       // no-wait
		nil,         // args
	)
	if err != nil {
		return fmt.Errorf("start consuming: %w", err)
	}

	slog.InfoContext(ctx, "Started consuming import batches", "queue", c.queueName)

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "Stopping message consumption", "reason", ctx.Err())
			return ctx.Err()
		case delivery, ok := <-msgs:
			if !ok {
				return errors.New("message channel closed")
			}
			handleDelivery(ctx, delivery, delivery.Body, handler)
		}
	}
}

// handleDelivery decodes one delivery, runs handler and settles it: ack on
// success, drop on a malformed body or ErrPermanent, requeue otherwise.
func handleDelivery(ctx context.Context, d acknowledger, body []byte, handler ImportHandler) {
	msg, err := ImportBatchMessageFromJSON(body)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to decode import batch", "error", err)
		settle(ctx, d.Nack(false, false))
		return
	}

	slog.InfoContext(ctx, "Processing import batch", "batch_id", msg.BatchID, "user_id", msg.UserID, "drafts", len(msg.Drafts))

	if err := handler(ctx, msg); err != nil {
		requeue := !errors.Is(err, ErrPermanent)
		slog.ErrorContext(ctx, "Failed to handle import batch",
			"error", err,
			"batch_id", msg.BatchID,
			"requeue", requeue)
		settle(ctx, d.Nack(false, requeue))
		return
	}

	settle(ctx, d.Ack(false))
	slog.InfoContext(ctx, "Successfully processed import batch", "batch_id", msg.BatchID)
}

func settle(ctx context.Context, err error) {
	if err != nil {
		slog.ErrorContext(ctx, "Failed to settle delivery", "error", err)
	}
}

func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
