package service

import (
	"encoding/json"
	"time"

	"ai-storevision-be/internal/dto"
	"ai-storevision-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// StoreActivityTopic carries one message per successful store mutation.
const StoreActivityTopic = "STORE_ACTIVITY"

type IPublisherService interface {
	// PublishStoreActivity is best-effort: a publish failure is logged,
	// never surfaced to the mutating request.
	PublishStoreActivity(action, collection, id string)
}

type publisherService struct {
	pubSub *gochannel.GoChannel
	logger logger.ILogger
}

func NewPublisherService(pubSub *gochannel.GoChannel, logger logger.ILogger) IPublisherService {
	return &publisherService{
		pubSub: pubSub,
		logger: logger,
	}
}

func (p *publisherService) PublishStoreActivity(action, collection, id string) {
	payload, err := json.Marshal(dto.StoreActivityMessage{
		Action:     action,
		Collection: collection,
		Id:         id,
		At:         time.Now(),
	})
	if err != nil {
		p.logger.Error("publisher", "failed to marshal store activity", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := p.pubSub.Publish(StoreActivityTopic, msg); err != nil {
		p.logger.Error("publisher", "failed to publish store activity", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
