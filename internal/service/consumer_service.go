package service

import (
	"context"
	"encoding/json"

	"campus-share-be/internal/dto"
	"campus-share-be/internal/pkg/logger"
	"campus-share-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
)

// EventForwarder sends library events off-process (NATS in production).
type EventForwarder interface {
	Publish(ctx context.Context, event events.Event) error
}

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the in-process library topic: every event is written
// to the audit log and, when a forwarder is configured, fanned out.
type consumerService struct {
	subscriber message.Subscriber
	topicName  string
	audit      logger.ILogger
	forwarder  EventForwarder
}

func NewConsumerService(
	subscriber message.Subscriber,
	topicName string,
	audit logger.ILogger,
	forwarder EventForwarder,
) IConsumerService {
	return &consumerService{
		subscriber: subscriber,
		topicName:  topicName,
		audit:      audit,
		forwarder:  forwarder,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.subscriber.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.LibraryEventMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.audit.Error("LIBRARY_EVENTS", "Dropping malformed event", map[string]interface{}{
			"error":      err.Error(),
			"message_id": msg.UUID,
		})
		// ack so a bad payload is not redelivered forever
		msg.Ack()
		return
	}

	evt := events.BaseEvent{
		Type: payload.Type,
		Data: map[string]interface{}{
			"file_id":  payload.FileId,
			"subject":  payload.Subject,
			"unit":     payload.Unit,
			"actor_id": payload.ActorId,
			"value":    payload.Value,
		},
		OccurredAt: payload.OccurredAt,
	}

	cs.audit.Info("LIBRARY_EVENTS", evt.Type, evt.Data)

	if cs.forwarder != nil {
		if err := cs.forwarder.Publish(ctx, evt); err != nil {
			cs.audit.Warn("LIBRARY_EVENTS", "Failed to forward event", map[string]interface{}{
				"error": err.Error(),
				"type":  evt.Type,
			})
		}
	}

	msg.Ack()
}
