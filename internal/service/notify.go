package service

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"

	"github.com/regulaworks/vendorcomply"
)

var tracer = otel.Tracer("notify")

// NotifyService fans workflow events out over redis pub/sub, one
// channel per recipient. It is the dispatcher behind the engine's
// fire-and-forget notification boundary.
type NotifyService struct {
	rdb *redis.Client
}

func NewNotifyService(redisClient *redis.Client) *NotifyService {
	return &NotifyService{
		rdb: redisClient,
	}
}

// Dispatch publishes each event to its recipient's channel. The first
// failure aborts the batch; the caller treats any error as a soft
// warning, never as an operation failure.
func (s *NotifyService) Dispatch(ctx context.Context, events []vendorcomply.Event) error {
	ctx, span := tracer.Start(ctx, "Notify.Service.Dispatch")
	defer span.End()

	for _, event := range events {
		jsonstr, err := json.Marshal(event)
		if err != nil {
			span.RecordError(err)
			return errors.Wrap(err, "NotifyService.Dispatch: marshal failed")
		}

		err = s.rdb.Publish(ctx, vendorcomply.NotifyChannel(event.Recipient), jsonstr).Err()
		if err != nil {
			span.RecordError(err)
			return errors.Wrap(err, "NotifyService.Dispatch: publish failed")
		}
	}

	return nil
}

// Realtime bridges redis pub/sub to a websocket session. Recipient
// lists arriving on input replace the current subscription set; events
// for subscribed recipients flow out on output until ctx is done.
func (s *NotifyService) Realtime(ctx context.Context, input <-chan []string, output chan<- vendorcomply.Event) {
	pubsub := s.rdb.Subscribe(ctx)
	defer pubsub.Close()

	messages := pubsub.Channel()
	var subscribed []string

	for {
		select {
		case <-ctx.Done():
			return

		case recipients, ok := <-input:
			if !ok {
				return
			}
			if len(subscribed) > 0 {
				if err := pubsub.Unsubscribe(ctx, subscribed...); err != nil {
					slog.ErrorContext(ctx, "Failed to unsubscribe",
						slog.String("error", err.Error()),
						slog.String("module", "notify"),
					)
				}
			}
			channels := make([]string, len(recipients))
			for i, recipient := range recipients {
				channels[i] = vendorcomply.NotifyChannel(recipient)
			}
			if err := pubsub.Subscribe(ctx, channels...); err != nil {
				slog.ErrorContext(ctx, "Failed to subscribe",
					slog.String("error", err.Error()),
					slog.String("module", "notify"),
				)
				continue
			}
			subscribed = channels

		case msg, ok := <-messages:
			if !ok {
				return
			}
			var event vendorcomply.Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				slog.ErrorContext(ctx, "Malformed event payload",
					slog.String("error", err.Error()),
					slog.String("module", "notify"),
				)
				continue
			}
			select {
			case output <- event:
			case <-ctx.Done():
				return
			}
		}
	}
}
