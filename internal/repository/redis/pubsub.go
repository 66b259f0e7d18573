package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// PerformancesPubSub broadcasts that a performance's seating or schedule
// changed. Subscribers must re-read storage; messages carry no state.
type PerformancesPubSub struct {
	rdb     *redis.Client
	channel string
}

func NewPerformancesPubSub(rdb *redis.Client) *PerformancesPubSub {
	return &PerformancesPubSub{
		rdb:     rdb,
		channel: ChannelPerformancesChanged(),
	}
}

type PerformanceChanged struct {
	Type          string `json:"type"`
	PerformanceID int64  `json:"performance_id"`
	TsUnix        int64  `json:"ts_unix"`
}

func (p *PerformancesPubSub) PublishPerformanceChanged(ctx context.Context, reason string, performanceID int64) error {
	msg := PerformanceChanged{
		Type:          reason,
		PerformanceID: performanceID,
		TsUnix:        time.Now().Unix(),
	}

	b, _ := json.Marshal(msg)

	return p.rdb.Publish(ctx, p.channel, b).Err()
}

// Subscribe blocks delivering messages to handler until ctx is done or the
// subscription is closed.
func (p *PerformancesPubSub) Subscribe(ctx context.Context, handler func(ctx context.Context, msg PerformanceChanged)) error {
	sub := p.rdb.Subscribe(ctx, p.channel)
	defer sub.Close()

	// wait for the subscription to be confirmed so no publish is missed
	if _, err := sub.Receive(ctx); err != nil {
		return err
	}

	ch := sub.Channel(redis.WithChannelSize(256))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case m, ok := <-ch:
			if !ok {
				return nil
			}
			var ev PerformanceChanged
			if err := json.Unmarshal([]byte(m.Payload), &ev); err == nil &&
				ev.PerformanceID != 0 {
				handler(ctx, ev)
			}
		}
	}
}
