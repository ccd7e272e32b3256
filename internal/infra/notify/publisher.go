package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Publisher публикует события бронирований в RabbitMQ.
// Все операции best-effort: ошибка публикации логируется и не влияет
// на результат бронирования — ответ клиенту никогда не ждёт брокера.
type Publisher struct {
	url   string
	queue string
	log   Logger

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewPublisher создает издателя событий. Соединение устанавливается лениво
// при первой публикации и переустанавливается после обрыва.
func NewPublisher(url, queue string, log Logger) *Publisher {
	return &Publisher{
		url:   url,
		queue: queue,
		log:   log,
	}
}

// Publish сериализует событие и отправляет его в очередь.
// Возвращаемая ошибка нужна только для логирования вызывающим кодом.
func (p *Publisher) Publish(ctx context.Context, event ReservationEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("notify: failed to marshal event: %w", err)
	}

	ch, err := p.channel()
	if err != nil {
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Type:         event.Type,
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx, "", p.queue, false, false, pub); err != nil {
		// Канал мог протухнуть, сбрасываем для переподключения
		p.reset()
		return fmt.Errorf("notify: failed to publish %s: %w", event.Type, err)
	}

	p.log.Info("notify: published %s reservation_id=%d restaurant_id=%d",
		event.Type, event.ReservationID, event.RestaurantID)
	return nil
}

// Close закрывает соединение с брокером
func (p *Publisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}

// channel возвращает живой канал, при необходимости переподключаясь
func (p *Publisher) channel() (*amqp.Channel, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch != nil && p.conn != nil && !p.conn.IsClosed() {
		return p.ch, nil
	}

	conn, err := amqp.Dial(p.url)
	if err != nil {
		return nil, fmt.Errorf("notify: dial failed: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("notify: channel open failed: %w", err)
	}

	// Durable очередь, объявление идемпотентно
	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("notify: queue declare failed: %w", err)
	}

	p.conn = conn
	p.ch = ch
	return ch, nil
}

func (p *Publisher) reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}
