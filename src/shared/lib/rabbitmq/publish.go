package rabbitmq

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/apex/log"
	"github.com/cockroachdb/errors"
	"github.com/rabbitmq/amqp091-go"
)

//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 -generate

var _ Publisher = &QueuePublisher{}

//counterfeiter:generate . Publisher
type Publisher interface {
	Publish(ctx context.Context, msg amqp091.Publishing) error
}

// PublishJSON publishes body as a persistent JSON message of the given job type
func PublishJSON(ctx context.Context, publisher Publisher, msgType string, body any) error {
	jsonBytes, err := json.Marshal(body)
	if err != nil {
		return errors.Wrap(err, "Failed to marshal message body")
	}

	err = publisher.Publish(ctx, amqp091.Publishing{
		Type: msgType,
		Body: jsonBytes,
	})
	if err != nil {
		return errors.Wrapf(err, "Failed to publish %s message", msgType)
	}

	return nil
}

const publishAttempts = 2

func NewQueuePublisher(rabbitMQURL string, queueName string) (*QueuePublisher, error) {
	publisher := &QueuePublisher{
		rabbitMQURL: rabbitMQURL,
		queueName:   queueName,
	}

	if err := publisher.reconnect(); err != nil {
		return nil, errors.Wrap(err, "Failed to connect to RabbitMQ")
	}

	return publisher, nil
}

// QueuePublisher publishes persistent JSON messages to a single durable
// queue. A closed connection is redialled once per publish.
type QueuePublisher struct {
	rabbitMQURL string
	queueName   string

	lock    sync.Mutex
	conn    *amqp091.Connection
	channel *amqp091.Channel
}

// reconnect must be called with lock held, or before the publisher is shared
func (q *QueuePublisher) reconnect() error {
	q.disconnect()

	conn, err := amqp091.Dial(q.rabbitMQURL)
	if err != nil {
		return errors.Wrap(err, "Failed to dial RabbitMQ")
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return errors.Wrap(err, "Failed to open a channel")
	}

	if _, err = channel.QueueDeclare(q.queueName, true, false, false, false, nil); err != nil {
		_ = conn.Close()
		return errors.Wrapf(err, "Failed to declare queue %s", q.queueName)
	}

	q.conn = conn
	q.channel = channel
	return nil
}

func (q *QueuePublisher) disconnect() error {
	if q.conn == nil {
		return nil
	}

	// closing the connection closes its channels
	err := q.conn.Close()
	q.conn = nil
	q.channel = nil

	if errors.Is(err, amqp091.ErrClosed) {
		return nil
	}
	return err
}

func (q *QueuePublisher) Publish(ctx context.Context, msg amqp091.Publishing) error {
	q.lock.Lock()
	defer q.lock.Unlock()

	msg.ContentType = "application/json"
	msg.DeliveryMode = amqp091.Persistent

	var err error
	for attempt := 1; attempt <= publishAttempts; attempt++ {
		if q.conn == nil || q.conn.IsClosed() {
			if err = q.reconnect(); err != nil {
				log.WithError(err).
					WithField("attempt", attempt).
					Warn("Unable to reconnect to RabbitMQ")
				continue
			}
		}

		err = q.channel.PublishWithContext(ctx, "", q.queueName, true, false, msg)
		if err == nil {
			return nil
		}

		if !errors.Is(err, amqp091.ErrClosed) {
			break
		}
	}

	return errors.Wrapf(err, "Failed to publish %s message", msg.Type)
}

func (q *QueuePublisher) Close() error {
	q.lock.Lock()
	defer q.lock.Unlock()

	return q.disconnect()
}
