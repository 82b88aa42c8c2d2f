package realtime

import (
	"context"
	"encoding/json"
	"errors"

	"skybook/internal/shared/config"
	"skybook/pkg/logger"

	"github.com/IBM/sarama"
)

// ErrChannelUnavailable means the change channel could not accept the event.
// Reservations still commit; subscribers catch up on the next snapshot.
var ErrChannelUnavailable = errors.New("change channel unavailable")

// Publisher pushes seat change events toward subscribers.
type Publisher interface {
	Publish(ctx context.Context, event ChangeEvent) error
	Close() error
}

// kafkaPublisher writes events to Kafka keyed by flight ID so every seat
// change for one flight lands on one partition, preserving order.
type kafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
	log      *logger.Logger
}

func NewKafkaPublisher(cfg config.KafkaConfig, log *logger.Logger) (Publisher, error) {
	saramaCfg := sarama.NewConfig()
	saramaCfg.Producer.RequiredAcks = sarama.WaitForAll
	saramaCfg.Producer.Retry.Max = 3
	saramaCfg.Producer.Return.Successes = true
	saramaCfg.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(cfg.Brokers, saramaCfg)
	if err != nil {
		return nil, err
	}

	return &kafkaPublisher{
		producer: producer,
		topic:    cfg.SeatTopic,
		log:      log,
	}, nil
}

func (p *kafkaPublisher) Publish(ctx context.Context, event ChangeEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.FlightID.String()),
		Value: sarama.ByteEncoder(payload),
	}

	if _, _, err := p.producer.SendMessage(msg); err != nil {
		p.log.WithError(err).Error("failed to publish seat change event",
			"flight_id", event.FlightID.String(),
			"seat_number", event.SeatNumber)
		return ErrChannelUnavailable
	}

	p.log.LogChangeEventPublished(ctx, event.FlightID.String(), event.SeatNumber)
	return nil
}

func (p *kafkaPublisher) Close() error {
	return p.producer.Close()
}

// localPublisher delivers events straight to the hub. Used when Kafka is
// disabled so a single-node deployment still gets realtime updates.
type localPublisher struct {
	hub *Hub
	log *logger.Logger
}

func NewLocalPublisher(hub *Hub, log *logger.Logger) Publisher {
	return &localPublisher{hub: hub, log: log}
}

func (p *localPublisher) Publish(ctx context.Context, event ChangeEvent) error {
	p.hub.Broadcast(event)
	p.log.LogChangeEventPublished(ctx, event.FlightID.String(), event.SeatNumber)
	return nil
}

func (p *localPublisher) Close() error { return nil }
