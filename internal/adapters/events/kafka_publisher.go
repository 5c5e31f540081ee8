package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/courseworks/peer-review-service/internal/contracts"
	"github.com/segmentio/kafka-go"
)

// Topics names the destination topic for each event this service emits.
type Topics struct {
	SubmissionReceived string
	GradesCreated      string
}

type KafkaPublisher struct {
	writer *kafka.Writer
	topics Topics
}

func NewKafkaPublisher(brokers []string, topics Topics) (*KafkaPublisher, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("kafka publisher requires at least one broker")
	}
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			RequiredAcks: kafka.RequireAll,
			Balancer:     &kafka.Hash{},
		},
		topics: topics,
	}, nil
}

// Publish serializes the envelope and writes it keyed by partition key, so
// all events of one assignment land on one partition in order.
func (p *KafkaPublisher) Publish(ctx context.Context, envelope contracts.EventEnvelope) error {
	value, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("marshal event envelope: %w", err)
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Topic: p.topicFor(envelope.EventType),
		Key:   []byte(envelope.PartitionKey),
		Value: value,
		Time:  envelope.OccurredAt,
	})
}

func (p *KafkaPublisher) topicFor(eventType string) string {
	switch eventType {
	case contracts.EventTypeSubmissionReceived:
		if p.topics.SubmissionReceived != "" {
			return p.topics.SubmissionReceived
		}
	case contracts.EventTypeGradesCreated:
		if p.topics.GradesCreated != "" {
			return p.topics.GradesCreated
		}
	}
	return eventType
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
