package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/pkg/errors"

	Logger "github.com/ankh-social/ankh-backend/utils/log"
)

// Topics group events by entity family. A presentation layer subscribes to
// the families it renders.
const (
	TopicUsers = "ankh.users"
	TopicPosts = "ankh.posts"
	TopicReels = "ankh.reels"
)

// EventType identifies what happened to an entity.
type EventType string

const (
	PostCreated          EventType = "post.created"
	PostReacted          EventType = "post.reacted"
	PostCommented        EventType = "post.commented"
	ReelCreated          EventType = "reel.created"
	UserFollowed         EventType = "user.followed"
	VerificationResolved EventType = "verification.resolved"
)

// Event is the JSON envelope published on the bus.
type Event struct {
	Type     EventType `json:"type"`
	EntityId string    `json:"entityId"`
	ActorId  string    `json:"actorId,omitempty"`
	Detail   string    `json:"detail,omitempty"`
	At       time.Time `json:"at"`
}

// Bus is an in-process pub/sub channel for entity events. It exists so the
// presentation layer can react to mutations without polling the store; the
// service publishes fire-and-forget and never blocks on subscribers.
type Bus struct {
	pubSub *gochannel.GoChannel
}

func NewBus() *Bus {
	return &Bus{
		pubSub: gochannel.NewGoChannel(
			gochannel.Config{OutputChannelBuffer: 64},
			watermill.NopLogger{},
		),
	}
}

// Publish sends event on topic. Errors are logged, never returned: event
// delivery is best-effort and must not fail the mutation that produced it.
func (b *Bus) Publish(topic string, event Event) {
	if b == nil {
		return
	}
	if event.At.IsZero() {
		event.At = time.Now()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		Logger.LogV2.Error(fmt.Sprintf("failed to serialize %s event: %v", event.Type, err))
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := b.pubSub.Publish(topic, msg); err != nil {
		Logger.LogV2.Error(fmt.Sprintf("failed to publish %s event: %v", event.Type, err))
	}
}

// Subscribe returns a channel of events on topic. The subscription ends when
// ctx is cancelled or the bus is closed.
func (b *Bus) Subscribe(ctx context.Context, topic string) (<-chan Event, error) {
	msgs, err := b.pubSub.Subscribe(ctx, topic)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to subscribe to %s", topic)
	}

	out := make(chan Event)
	go func() {
		defer close(out)
		for msg := range msgs {
			var event Event
			if err := json.Unmarshal(msg.Payload, &event); err != nil {
				Logger.LogV2.Error(fmt.Sprintf("dropping undecodable event on %s: %v", topic, err))
				msg.Ack()
				continue
			}
			msg.Ack()
			select {
			case out <- event:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}

func (b *Bus) Close() error {
	return b.pubSub.Close()
}
