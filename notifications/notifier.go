package notifications

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/redis/go-redis/v9"
)

const updateChannelPrefix = "submissions:update:"

// Notifier publishes submission update events into Redis channels so every
// instance behind a load balancer sees them. A nil Redis client turns the
// Notifier into a no-op and events stay in-process.
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a Notifier using the provided Redis client.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// Enabled reports whether a Redis backend is configured.
func (n *Notifier) Enabled() bool {
	return n != nil && n.rdb != nil
}

// PublishUpdate sends an update payload to the channel of one submission.
func (n *Notifier) PublishUpdate(ctx context.Context, submissionID string, payload []byte) error {
	if !n.Enabled() {
		return nil
	}
	channel := fmt.Sprintf("%s%s", updateChannelPrefix, submissionID)
	return n.rdb.Publish(ctx, channel, payload).Err()
}

// StartSubscriber subscribes to all submission update channels and feeds
// incoming events into the local hub until ctx is done.
func (n *Notifier) StartSubscriber(ctx context.Context, hub *Hub) error {
	if !n.Enabled() {
		return nil
	}

	sub := n.rdb.PSubscribe(ctx, updateChannelPrefix+"*")
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				id := strings.TrimPrefix(msg.Channel, updateChannelPrefix)
				if id == "" {
					log.Printf("ignoring update on malformed channel %q", msg.Channel)
					continue
				}
				hub.Publish(id, []byte(msg.Payload))
			}
		}
	}()

	return nil
}
