package storage

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"

	"canteen-orders/internal/domain"
	"canteen-orders/internal/service"
)

// KafkaPublisher emits a full header snapshot after every fulfillment-side
// write. Messages are keyed by order id so updates for one order stay on one
// partition.
type KafkaPublisher struct {
	Writer *kafka.Writer
}

func NewKafkaPublisher(writer *kafka.Writer) *KafkaPublisher {
	return &KafkaPublisher{Writer: writer}
}

func (p *KafkaPublisher) PublishUpdate(ctx context.Context, header *domain.OrderHeader) error {
	payload, err := json.Marshal(header)
	if err != nil {
		return err
	}
	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(header.ID),
		Value: payload,
	})
}

var _ service.UpdatePublisher = (*KafkaPublisher)(nil)
