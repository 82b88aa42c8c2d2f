package realtime

import (
	"context"
	"encoding/json"
	"errors"

	"skybook/internal/shared/config"
	"skybook/pkg/logger"

	"github.com/IBM/sarama"
)

// Consumer reads seat change events from Kafka and forwards them to the hub.
type Consumer struct {
	group sarama.ConsumerGroup
	topic string
	hub   *Hub
	log   *logger.Logger
}

func NewConsumer(cfg config.KafkaConfig, hub *Hub, log *logger.Logger) (*Consumer, error) {
	saramaCfg := sarama.NewConfig()
	saramaCfg.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	saramaCfg.Consumer.Offsets.Initial = sarama.OffsetNewest

	group, err := sarama.NewConsumerGroup(cfg.Brokers, cfg.ConsumerGroup, saramaCfg)
	if err != nil {
		return nil, err
	}

	return &Consumer{
		group: group,
		topic: cfg.SeatTopic,
		hub:   hub,
		log:   log,
	}, nil
}

// Start consumes until ctx is cancelled. Run it in its own goroutine.
func (c *Consumer) Start(ctx context.Context) {
	handler := &consumerHandler{hub: c.hub, log: c.log}
	for {
		if err := c.group.Consume(ctx, []string{c.topic}, handler); err != nil {
			if errors.Is(err, sarama.ErrClosedConsumerGroup) {
				return
			}
			c.log.WithError(err).Error("consumer group error, retrying")
		}
		if ctx.Err() != nil {
			return
		}
	}
}

func (c *Consumer) Close() error {
	return c.group.Close()
}

type consumerHandler struct {
	hub *Hub
	log *logger.Logger
}

func (h *consumerHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *consumerHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *consumerHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for msg := range claim.Messages() {
		var event ChangeEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			h.log.WithError(err).Error("failed to decode seat change event",
				"partition", msg.Partition, "offset", msg.Offset)
			session.MarkMessage(msg, "")
			continue
		}

		h.hub.Broadcast(event)
		session.MarkMessage(msg, "")
	}
	return nil
}
