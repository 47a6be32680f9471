// Package notifier publishes order and review events.
//
// Delivery is fire-and-forget: a failed publish is logged and dropped, and it never
// fails or delays the operation that produced the event.
package notifier

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"foodorder/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

const (
	DefaultPublishTimeout = 5 * time.Second

	// DefaultQueueSize bounds the events waiting for the publisher. Events arriving
	// while the queue is full are dropped.
	DefaultQueueSize = 1024

	writerBatchTimeout = 10 * time.Millisecond
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type envelope struct {
	ctx       context.Context
	eventType ports.EventType
	orderID   string
	msg       kafka.Message
}

// KafkaNotifier writes one message per event, keyed by order id so that all events
// of an order land on the same partition in order.
//
// Notify only enqueues; a single background publisher owns the writer, so events are
// written in the order they were produced.
type KafkaNotifier struct {
	writer  messageWriter
	timeout time.Duration
	logger  *slog.Logger

	queue     chan envelope
	done      chan struct{}
	closeOnce sync.Once
	mu        sync.RWMutex
	closed    bool
}

func NewKafkaNotifier(writer messageWriter, timeout time.Duration, logger *slog.Logger) *KafkaNotifier {
	if timeout <= 0 {
		timeout = DefaultPublishTimeout
	}
	n := &KafkaNotifier{
		writer:  writer,
		timeout: timeout,
		logger:  logger.With("component", "KafkaNotifier"),
		queue:   make(chan envelope, DefaultQueueSize),
		done:    make(chan struct{}),
	}
	go n.run()
	return n
}

// NewWriter builds the kafka-go writer used in production. The default one second
// batch timeout would hold every single-message publish back for that long.
func NewWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		BatchTimeout:           writerBatchTimeout,
		AllowAutoTopicCreation: true,
	}
}

// Notify encodes the event and hands it to the publisher without waiting for the
// broker. The request context only contributes its values: a response that has
// already been written must not cancel the publish.
func (n *KafkaNotifier) Notify(ctx context.Context, event ports.Event) {
	payload, err := json.Marshal(newMessage(event))
	if err != nil {
		n.logger.ErrorContext(ctx, "failed to encode event", "type", event.Type, "error", err)
		return
	}

	env := envelope{
		ctx:       context.WithoutCancel(ctx),
		eventType: event.Type,
		orderID:   event.OrderID.String(),
		msg: kafka.Message{
			Key:   []byte(event.OrderID.String()),
			Value: payload,
			Headers: []kafka.Header{
				{Key: "type", Value: []byte(event.Type)},
			},
		},
	}

	n.mu.RLock()
	defer n.mu.RUnlock()
	if n.closed {
		n.logger.WarnContext(ctx, "notifier is closed, event dropped",
			"type", event.Type, "orderId", event.OrderID.String())
		return
	}

	select {
	case n.queue <- env:
	default:
		n.logger.WarnContext(ctx, "publish queue is full, event dropped",
			"type", event.Type, "orderId", event.OrderID.String())
	}
}

// Close stops accepting events and waits for the queued ones to be published.
func (n *KafkaNotifier) Close() error {
	n.closeOnce.Do(func() {
		n.mu.Lock()
		n.closed = true
		close(n.queue)
		n.mu.Unlock()
	})
	<-n.done
	return nil
}

func (n *KafkaNotifier) run() {
	defer close(n.done)
	for env := range n.queue {
		n.publish(env)
	}
}

func (n *KafkaNotifier) publish(env envelope) {
	ctx, cancel := context.WithTimeout(env.ctx, n.timeout)
	defer cancel()

	if err := n.writer.WriteMessages(ctx, env.msg); err != nil {
		n.logger.WarnContext(ctx, "failed to publish event",
			"type", env.eventType,
			"orderId", env.orderID,
			"error", err,
		)
		return
	}

	n.logger.DebugContext(ctx, "event published", "type", env.eventType, "orderId", env.orderID)
}
