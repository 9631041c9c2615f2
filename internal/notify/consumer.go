package notify

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const maxBackoff = 30 * time.Second

// Consumer drains the notification queues and hands each event to the
// mailer through a bounded worker pool.
type Consumer struct {
	url        string
	mailer     Mailer
	workerPool WorkerPoolI
}

func NewConsumer(url string, mailer Mailer) *Consumer {
	return &Consumer{
		url:        url,
		mailer:     mailer,
		workerPool: NewWorkerPool(10),
	}
}

// Start runs the consume loop until ctx is cancelled, reconnecting with
// exponential backoff when the broker drops the connection.
func (c *Consumer) Start(ctx context.Context) {
	zap.L().Info("Notification consumer started")

	backoff := time.Second
	for {
		select {
		case <-ctx.Done():
			c.workerPool.Close()
			zap.L().Info("Context canceled, stopping notification consumer")
			return
		default:
		}

		conn, err := amqp.Dial(c.url)
		if err != nil {
			zap.L().Error("failed to dial broker, retrying", zap.Error(err), zap.Duration("backoff", backoff))
			select {
			case <-ctx.Done():
				continue
			case <-time.After(backoff):
			}
			if backoff < maxBackoff {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		if err := c.consume(ctx, conn); err != nil && !errors.Is(err, context.Canceled) {
			zap.L().Error("consume loop ended, reconnecting", zap.Error(err))
		}
		conn.Close()
	}
}

func (c *Consumer) consume(ctx context.Context, conn *amqp.Connection) error {
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return c.consumeQueue(ctx, conn, OrderConfirmedQueue, c.handleOrderConfirmed)
	})
	g.Go(func() error {
		return c.consumeQueue(ctx, conn, WinnerDrawnQueue, c.handleWinnerDrawn)
	})
	return g.Wait()
}

func (c *Consumer) consumeQueue(ctx context.Context, conn *amqp.Connection, queue string, handle func(ctx context.Context, body []byte) error) error {
	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	if err := ch.Qos(50, 0, false); err != nil {
		zap.L().Warn("failed to set QoS", zap.Error(err))
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return err
	}
	msgs, err := ch.Consume(queue, "", false, false, false, false, nil)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			err := c.workerPool.AddTask(ctx, func() error {
				if err := handle(ctx, d.Body); err != nil {
					// Do not requeue: a poison message would loop forever.
					d.Nack(false, false)
					return err
				}
				return d.Ack(false)
			})
			if err != nil {
				return err
			}
		}
	}
}

func (c *Consumer) handleOrderConfirmed(ctx context.Context, body []byte) error {
	var ev OrderConfirmedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return err
	}
	subject, html := orderConfirmedBody(ev)
	return c.mailer.Send(ctx, ev.Email, subject, html)
}

func (c *Consumer) handleWinnerDrawn(ctx context.Context, body []byte) error {
	var ev WinnerDrawnEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return err
	}
	subject, html := winnerDrawnBody(ev)
	return c.mailer.Send(ctx, ev.Email, subject, html)
}
