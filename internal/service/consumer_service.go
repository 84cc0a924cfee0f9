package service

import (
	"context"
	"encoding/json"

	"ai-storevision-be/internal/dto"
	"ai-storevision-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the store-activity topic and records each event
// through the structured logger. Purely observational: losing messages on
// shutdown is acceptable.
type consumerService struct {
	pubSub *gochannel.GoChannel
	logger logger.ILogger
}

func NewConsumerService(pubSub *gochannel.GoChannel, logger logger.ILogger) IConsumerService {
	return &consumerService{
		pubSub: pubSub,
		logger: logger,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, StoreActivityTopic)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var payload dto.StoreActivityMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error("consumer", "failed to unmarshal store activity", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	cs.logger.Info("consumer", "store activity", map[string]interface{}{
		"action":     payload.Action,
		"collection": payload.Collection,
		"id":         payload.Id,
		"at":         payload.At,
	})
	msg.Ack()
}
