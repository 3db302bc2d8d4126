package realtime

import (
	"context"
	"strconv"

	"turfbook/internal/logger"

	"github.com/redis/go-redis/v9"
)

const DefaultChannel = "turfbook:slots"

// Fanout spreads slot-change notifications across server instances.
type Fanout interface {
	Publish(ctx context.Context, turfID int) error
	// Subscribe calls ready once the subscription is live, then onChange
	// for every notification. It returns when ctx ends or the
	// subscription breaks.
	Subscribe(ctx context.Context, ready func(), onChange func(ctx context.Context, turfID int)) error
}

type RedisFanout struct {
	rdb     *redis.Client
	channel string
}

func NewRedisFanout(rdb *redis.Client, channel string) *RedisFanout {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisFanout{rdb: rdb, channel: channel}
}

func (f *RedisFanout) Publish(ctx context.Context, turfID int) error {
	return f.rdb.Publish(ctx, f.channel, strconv.Itoa(turfID)).Err()
}

func (f *RedisFanout) Subscribe(ctx context.Context, ready func(), onChange func(ctx context.Context, turfID int)) error {
	sub := f.rdb.Subscribe(ctx, f.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return err
	}
	logger.Info("slot fan-out subscribed", "channel", f.channel)
	if ready != nil {
		ready()
	}

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			handlePayload(ctx, msg.Payload, onChange)
		}
	}
}

// handlePayload skips anything that is not a positive turf id.
func handlePayload(ctx context.Context, payload string, onChange func(ctx context.Context, turfID int)) bool {
	turfID, err := strconv.Atoi(payload)
	if err != nil || turfID <= 0 {
		logger.Warn("bad fan-out payload", "payload", payload)
		return false
	}
	onChange(ctx, turfID)
	return true
}
