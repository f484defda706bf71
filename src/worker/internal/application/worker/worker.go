package worker

import (
	"context"
	"sync"

	"github.com/apex/log"
	"github.com/cockroachdb/errors"
	"github.com/rabbitmq/amqp091-go"
)

type MessageChannel interface {
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp091.Table) (<-chan amqp091.Delivery, error)
	Close() error
}

type MessageHandler interface {
	HandleMessage(ctx context.Context, message amqp091.Delivery) error
}

type QueueWorker struct {
	channel     MessageChannel
	channelLock sync.Mutex
	handler     MessageHandler
	queueName   string
}

func NewQueueWorker(channel MessageChannel, queueName string, handler MessageHandler) *QueueWorker {
	return &QueueWorker{
		channel:   channel,
		queueName: queueName,
		handler:   handler,
	}
}

func NewQueueWorkerFromConnection(conn *amqp091.Connection, queueName string, handler MessageHandler) (*QueueWorker, error) {
	rabbitChannel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, errors.Wrap(err, "Failed to get channel")
	}

	queue, err := rabbitChannel.QueueDeclare(
		queueName,
		true,
		false,
		false,
		false,
		nil,
	)

	if err != nil {
		_ = rabbitChannel.Close()
		return nil, errors.Wrap(err, "Failed to declare queue")
	}

	// one unacked message at a time, jobs are slow compared to delivery
	if err := rabbitChannel.Qos(1, 0, false); err != nil {
		_ = rabbitChannel.Close()
		return nil, errors.Wrap(err, "Failed to set channel prefetch")
	}

	return NewQueueWorker(rabbitChannel, queue.Name, handler), nil
}

// Start consumes until the channel closes. Every message is acked on success
// and nacked without requeue on failure.
func (q *QueueWorker) Start() error {
	log.WithField("queue_name", q.queueName).Info("Starting worker")

	q.channelLock.Lock()
	if q.channel == nil {
		q.channelLock.Unlock()
		return errors.New("Worker has been stopped")
	}

	messageStream, err := q.channel.Consume(
		q.queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	q.channelLock.Unlock()

	if err != nil {
		return errors.Wrapf(err, "Failed to start consuming from queue %s", q.queueName)
	}

	for message := range messageStream {
		q.process(message)
	}

	return nil
}

func (q *QueueWorker) process(message amqp091.Delivery) {
	logger := log.WithField("message_type", message.Type)
	logger.Info("Handling message")

	err := q.handler.HandleMessage(context.Background(), message)
	if err != nil {
		logger.WithError(err).Error("Failed to process message")

		if err = message.Nack(false, false); err != nil {
			logger.WithError(err).Error("Failed to nack message")
		}
		return
	}

	logger.Info("Successfully processed message")
	if err = message.Ack(false); err != nil {
		logger.WithError(err).Error("Failed to ack message")
	}
}

func (q *QueueWorker) Stop() {
	q.channelLock.Lock()
	defer q.channelLock.Unlock()

	if q.channel == nil {
		return
	}

	_ = q.channel.Close()
	q.channel = nil
}
