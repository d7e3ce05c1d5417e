package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// Envelope is the wire form of an Event on the bus.
type Envelope struct {
	Topic      string                 `json:"topic"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurredAt"`
}

// Bus is the in-process broadcast channel for classified failure signals.
// Backed by watermill's gochannel pub/sub: one publisher (the gateway),
// any number of listeners.
type Bus struct {
	pubSub *gochannel.GoChannel
}

func NewBus() *Bus {
	return &Bus{
		pubSub: gochannel.NewGoChannel(gochannel.Config{
			OutputChannelBuffer: 16,
			// Publish must not return until every listener has acked, so a
			// caller that sees a request fail is guaranteed the matching
			// signal handlers already ran.
			BlockPublishUntilSubscriberAck: true,
		}, watermill.NopLogger{}),
	}
}

// Publish broadcasts the event to all current subscribers of its topic and
// blocks until each of them has processed it. Marshal failures are
// swallowed: a signal must never take down the request that triggered it.
func (b *Bus) Publish(e Event) {
	env := Envelope{
		Topic:      e.Topic(),
		Data:       e.Payload(),
		OccurredAt: e.Timestamp(),
	}
	payload, err := json.Marshal(env)
	if err != nil {
		return
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	_ = b.pubSub.Publish(e.Topic(), msg)
}

// Subscribe returns the raw message stream for a topic. Callers must Ack.
func (b *Bus) Subscribe(ctx context.Context, topic string) (<-chan *message.Message, error) {
	return b.pubSub.Subscribe(ctx, topic)
}

// Listen subscribes to a topic and invokes handler for every envelope on a
// background goroutine until ctx is done. Handlers must be idempotent. The
// message is acked only after the handler returns, which is what lets
// Publish block until every listener has run.
func (b *Bus) Listen(ctx context.Context, topic string, handler func(Envelope)) error {
	messages, err := b.pubSub.Subscribe(ctx, topic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			var env Envelope
			if err := json.Unmarshal(msg.Payload, &env); err == nil {
				handler(env)
			}
			msg.Ack()
		}
	}()

	return nil
}

func (b *Bus) Close() error {
	return b.pubSub.Close()
}
