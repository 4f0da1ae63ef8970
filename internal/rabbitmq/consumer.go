package rabbitmq

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/foundation-backend/internal/lib/sl"
)

// ErrMalformed сообщение невозможно обработать повторно; оно отбрасывается без requeue.
var ErrMalformed = errors.New("malformed message")

// ErrPermanent обработка не удастся и при повторе; сообщение отбрасывается без requeue.
var ErrPermanent = errors.New("permanent failure")

// ErrDeliveryClosed брокер закрыл канал доставки.
var ErrDeliveryClosed = errors.New("delivery channel closed")

// Consumer часть *amqp.Channel, нужная для чтения очереди.
type Consumer interface {
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

// Handler обрабатывает тело сообщения.
type Handler func(ctx context.Context, body []byte) error

// ConsumeMessages читает очередь queue и передает сообщения handler, не более
// workers одновременно. Успех подтверждается Ack, ошибка возвращает сообщение
// в очередь, ErrMalformed и ErrPermanent отбрасывают его. Блокируется до отмены ctx или
// закрытия канала и дожидается обработчиков, которые уже запущены.
func ConsumeMessages(ctx context.Context, log *slog.Logger, ch Consumer, queue string, workers int, handler Handler) error {
	const op = "rabbitmq.ConsumeMessages"

	if workers <= 0 {
		workers = 1
	}
	deliveries, err := ch.Consume(queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	log = log.With(slog.String("queue", queue))

	var wg sync.WaitGroup
	defer wg.Wait()
	sem := make(chan struct{}, workers)

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("%s: %w", op, ErrDeliveryClosed)
			}
			sem <- struct{}{}
			wg.Add(1)
			go func(d amqp.Delivery) {
				defer wg.Done()
				defer func() { <-sem }()
				handle(ctx, log, d, handler)
			}(d)
		}
	}
}

func handle(ctx context.Context, log *slog.Logger, d amqp.Delivery, handler Handler) {
	err := handler(ctx, d.Body)
	switch {
	case err == nil:
		if ackErr := d.Ack(false); ackErr != nil {
			log.Error("failed to ack message", sl.Err(ackErr))
		}
	case errors.Is(err, ErrMalformed):
		log.Warn("dropping malformed message", sl.Err(err))
		if nackErr := d.Nack(false, false); nackErr != nil {
			log.Error("failed to nack message", sl.Err(nackErr))
		}
	case errors.Is(err, ErrPermanent):
		log.Error("dropping message after permanent failure", sl.Err(err))
		if nackErr := d.Nack(false, false); nackErr != nil {
			log.Error("failed to nack message", sl.Err(nackErr))
		}
	default:
		log.Error("failed to handle message", sl.Err(err))
		if nackErr := d.Nack(false, true); nackErr != nil {
			log.Error("failed to nack message", sl.Err(nackErr))
		}
	}
}
