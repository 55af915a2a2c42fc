package notify

import (
	"context"
	"encoding/json"
	"log"

	"github.com/segmentio/kafka-go"

	"canteen-orders/internal/domain"
)

// KafkaChannel consumes header snapshots from the order-updates topic and
// fans them out to per-order subscribers.
type KafkaChannel struct {
	Reader *kafka.Reader
	*Dispatcher
}

func NewKafkaChannel(reader *kafka.Reader) *KafkaChannel {
	return &KafkaChannel{Reader: reader, Dispatcher: NewDispatcher()}
}

func (c *KafkaChannel) Start(ctx context.Context) {
	log.Println("[order-svc] starting order update consumer...")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("[order-svc] error reading update message: %v", err)
			continue
		}

		var header domain.OrderHeader
		if err := json.Unmarshal(message.Value, &header); err != nil {
			log.Printf("[order-svc] error unmarshaling update message: %v", err)
			continue
		}

		c.Dispatch(header)
	}
}

var _ Channel = (*KafkaChannel)(nil)
