package rabbitmq

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"sgp/pkg/logutils"

	amqp "github.com/streadway/amqp"
)

// Default topology for domain events.
const (
	DefaultExchange = "sgp.events"
	DefaultQueue    = "sgp_events"
)

// ErrMalformedEvent marks deliveries that can never be processed and must
// not be requeued.
var ErrMalformedEvent = errors.New("malformed event")

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	queue    string
	// amqp channels are not safe for concurrent publishing
	mu sync.Mutex
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL      string
	Exchange string
	Queue    string
}

// NewClient connects to RabbitMQ and declares the event exchange, the event
// queue and the binding between them.
func NewClient(cfg Config) (*Client, error) {
	if cfg.Exchange == "" {
		cfg.Exchange = DefaultExchange
	}
	if cfg.Queue == "" {
		cfg.Queue = DefaultQueue
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := declareTopology(ch, cfg.Exchange, cfg.Queue); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	logutils.Log.WithFields(logutils.Fields{"exchange": cfg.Exchange, "queue": cfg.Queue}).Info("RabbitMQ client connected")

	return &Client{
		conn:     conn,
		channel:  ch,
		exchange: cfg.Exchange,
		queue:    cfg.Queue,
	}, nil
}

func declareTopology(ch *amqp.Channel, exchange, queue string) error {
	err := ch.ExchangeDeclare(
		exchange,
		amqp.ExchangeTopic,
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}

	_, err = ch.QueueDeclare(
		queue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", queue, err)
	}

	if err := ch.QueueBind(queue, "#", exchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue %s to %s: %w", queue, exchange, err)
	}
	return nil
}

// Close closes the RabbitMQ connection and channel.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Publish sends a persistent JSON message to the event exchange.
func (c *Client) Publish(routingKey string, body []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}

	err := c.channel.Publish(
		c.exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		})
	if err != nil {
		return fmt.Errorf("failed to publish %s: %w", routingKey, err)
	}

	logutils.Log.WithField("routing_key", routingKey).Debug("Event published")
	return nil
}

// ConsumeEvents starts a goroutine that feeds every delivery of the event
// queue to messageHandler, acking on success. Failed deliveries are requeued
// unless the handler reports ErrMalformedEvent.
func (c *Client) ConsumeEvents(messageHandler func(msg amqp.Delivery) error) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available for consumption")
	}

	msgs, err := c.channel.Consume(
		c.queue,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	logutils.Log.WithField("queue", c.queue).Info("Waiting for events")

	go func() {
		for msg := range msgs {
			settle(msg, messageHandler(msg))
		}
		logutils.Log.Info("Event consumer stopped")
	}()

	return nil
}

// acknowledger is the part of amqp.Delivery used to settle a message.
type acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

func settle(msg acknowledger, handlerErr error) {
	if handlerErr == nil {
		if err := msg.Ack(false); err != nil {
			logutils.Log.WithError(err).Error("Error acking message")
		}
		return
	}

	requeue := !errors.Is(handlerErr, ErrMalformedEvent)
	logutils.Log.WithError(handlerErr).WithField("requeue", requeue).Error("Error processing message")
	if err := msg.Nack(false, requeue); err != nil {
		logutils.Log.WithError(err).Error("Error nacking message")
	}
}

// HandleEventMessage logs a received domain event.
func HandleEventMessage(msg amqp.Delivery) error {
	event, err := DecodeEvent(msg.Body)
	if err != nil {
		return err
	}
	logutils.Log.WithFields(logutils.Fields{
		"event_id":  event.ID,
		"type":      event.Type,
		"entity":    event.Entity,
		"entity_id": event.EntityID,
	}).Info("Event received")
	return nil
}
