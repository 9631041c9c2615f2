package notify

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// AMQPPublisher publishes notification events to durable queues.
type AMQPPublisher struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewAMQPPublisher(url string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to dial broker: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	for _, queue := range []string{OrderConfirmedQueue, WinnerDrawnQueue} {
		if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
			ch.Close()
			conn.Close()
			return nil, fmt.Errorf("failed to declare queue %s: %w", queue, err)
		}
	}
	return &AMQPPublisher{conn: conn, ch: ch}, nil
}

func (p *AMQPPublisher) OrderConfirmed(ctx context.Context, event OrderConfirmedEvent) error {
	return p.publish(ctx, OrderConfirmedQueue, event)
}

func (p *AMQPPublisher) WinnerDrawn(ctx context.Context, event WinnerDrawnEvent) error {
	return p.publish(ctx, WinnerDrawnQueue, event)
}

func (p *AMQPPublisher) publish(ctx context.Context, queue string, event any) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	err = p.ch.PublishWithContext(ctx, "", queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish to %s: %w", queue, err)
	}
	return nil
}

func (p *AMQPPublisher) Close() {
	if p.ch != nil {
		p.ch.Close()
	}
	if p.conn != nil {
		p.conn.Close()
	}
}

// NopPublisher is used when no broker is configured. Events are logged and
// dropped, which keeps local development free of infrastructure.
type NopPublisher struct{}

func (NopPublisher) OrderConfirmed(_ context.Context, event OrderConfirmedEvent) error {
	zap.L().Info("order confirmed (notifications disabled)", zap.Int("orderID", event.OrderID))
	return nil
}

func (NopPublisher) WinnerDrawn(_ context.Context, event WinnerDrawnEvent) error {
	zap.L().Info("winner drawn (notifications disabled)", zap.Int("competitionID", event.CompetitionID))
	return nil
}
