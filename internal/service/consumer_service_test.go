package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"campus-share-be/internal/dto"
	"campus-share-be/internal/pkg/logger"
	"campus-share-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingForwarder struct {
	mu     sync.Mutex
	events []events.Event
	err    error
}

func (f *recordingForwarder) Publish(ctx context.Context, event events.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return f.err
}

func (f *recordingForwarder) received() []events.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]events.Event(nil), f.events...)
}

func TestConsumer_ForwardsLibraryEvents(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	forwarder := &recordingForwarder{err: errors.New("nats down")}
	consumer := NewConsumerService(pubSub, "LIBRARY_EVENTS", logger.NewNopLogger(), forwarder)
	require.NoError(t, consumer.Consume(ctx))

	publisher := NewPublisherService("LIBRARY_EVENTS", pubSub)

	require.NoError(t, publisher.Publish(ctx, []byte("not json")))

	payload, err := json.Marshal(dto.LibraryEventMessage{
		Type:    events.TypeFileRated,
		FileId:  "f1",
		ActorId: "u1",
		Value:   4,
	})
	require.NoError(t, err)
	require.NoError(t, publisher.Publish(ctx, payload))

	require.Eventually(t, func() bool {
		return len(forwarder.received()) == 1
	}, time.Second, 10*time.Millisecond)

	got := forwarder.received()[0]
	assert.Equal(t, events.TypeFileRated, got.EventType())
	assert.Equal(t, "f1", got.Payload()["file_id"])
	assert.Equal(t, 4, got.Payload()["value"])
}

func TestConsumer_WithoutForwarderStillAcks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// publish returns only once the consumer has acked
	pubSub := gochannel.NewGoChannel(gochannel.Config{BlockPublishUntilSubscriberAck: true}, watermill.NopLogger{})
	defer pubSub.Close()

	consumer := NewConsumerService(pubSub, "LIBRARY_EVENTS", logger.NewNopLogger(), nil)
	require.NoError(t, consumer.Consume(ctx))

	msg := message.NewMessage(watermill.NewUUID(), []byte(`{"type":"file.downloaded","actor_id":"u1"}`))
	require.NoError(t, pubSub.Publish("LIBRARY_EVENTS", msg))

	bad := message.NewMessage(watermill.NewUUID(), []byte("{"))
	require.NoError(t, pubSub.Publish("LIBRARY_EVENTS", bad))
}
