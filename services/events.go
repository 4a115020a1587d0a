package services

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"sentipost/logger"
	"sentipost/store"
)

const storeExchange = "store_events"

// Dispatcher разносит события стора наружу. Основной путь - публикация в
// RabbitMQ, откуда consumer пушит их в WebSocket; при недоступном брокере
// события уходят в сокеты напрямую.
type Dispatcher struct {
	ws      *WSConnManager
	channel *amqp.Channel
	conn    *amqp.Connection
}

func NewDispatcher(ws *WSConnManager) *Dispatcher {
	return &Dispatcher{ws: ws}
}

// ConnectRabbitMQ инициализирует соединение и exchange; пустой url
// оставляет диспетчер в режиме чистого WebSocket
func (d *Dispatcher) ConnectRabbitMQ(url string) error {
	if url == "" {
		return nil
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to open channel: %w", err)
	}
	if err := channel.ExchangeDeclare(
		storeExchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,   // args
	); err != nil {
		channel.Close()
		conn.Close()
		return fmt.Errorf("failed to declare exchange: %w", err)
	}
	d.conn = conn
	d.channel = channel
	logger.L.Infof("RabbitMQ initialized with URL: %s", url)
	return nil
}

// StartConsumer слушает события из очереди и пушит их через WebSocket
func (d *Dispatcher) StartConsumer(ctx context.Context, queueName string) error {
	if d.channel == nil {
		return fmt.Errorf("RabbitMQ channel not initialized")
	}
	q, err := d.channel.QueueDeclare(
		queueName,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}
	if err := d.channel.QueueBind(q.Name, "#", storeExchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue: %w", err)
	}
	msgs, err := d.channel.Consume(
		q.Name,
		"",
		true,  // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to start consumer: %w", err)
	}
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-msgs:
				d.ws.Broadcast(msg.Body)
			}
		}
	}()
	return nil
}

// Attach подписывает диспетчер на события стора
func (d *Dispatcher) Attach(st *store.Store) {
	st.Subscribe(d.dispatch)
}

func (d *Dispatcher) dispatch(ev store.Event) {
	body, err := json.Marshal(ev)
	if err != nil {
		return
	}
	// Фолбэк: если брокер недоступен, шлем напрямую в сокеты
	if err := d.publish(ev.Name, body); err != nil {
		d.ws.Broadcast(body)
	}
}

func (d *Dispatcher) publish(routingKey string, body []byte) error {
	if d.channel == nil {
		return fmt.Errorf("RabbitMQ channel not initialized")
	}
	return d.channel.PublishWithContext(context.Background(),
		storeExchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

func (d *Dispatcher) Close() {
	if d.channel != nil {
		d.channel.Close()
	}
	if d.conn != nil {
		d.conn.Close()
	}
}
