package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/unity-app/unity-engine/internal/config"
	"github.com/unity-app/unity-engine/internal/core/domain"
)

var (
	_ domain.MilestonePublisher = (*KafkaPublisher)(nil)
	_ domain.MilestonePublisher = NoopPublisher{}

	ErrNoTopic = errors.New("kafka topic must not be empty")
)

const writeTimeout = 5 * time.Second

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes milestones as JSON, keyed by goal so one goal's
// events stay ordered within a partition.
type KafkaPublisher struct {
	writer messageWriter
	topic  string
}

func NewKafkaPublisher(cfg config.KafkaConfig) (*KafkaPublisher, error) {
	if cfg.Topic == "" {
		return nil, ErrNoTopic
	}
	if !cfg.Enabled() {
		return nil, fmt.Errorf("kafka publisher needs at least one broker")
	}

	w := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		BatchTimeout:           50 * time.Millisecond,
	}
	return newKafkaPublisher(w, cfg.Topic), nil
}

func newKafkaPublisher(w messageWriter, topic string) *KafkaPublisher {
	return &KafkaPublisher{writer: w, topic: topic}
}

type milestoneEvent struct {
	Type string `json:"type"`
	domain.Milestone
}

func (p *KafkaPublisher) Publish(ctx context.Context, m domain.Milestone) error {
	value, err := json.Marshal(milestoneEvent{Type: "milestone." + string(m.Kind), Milestone: m})
	if err != nil {
		return fmt.Errorf("encode milestone: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(m.GoalID),
		Value: value,
		Time:  m.OccurredAt,
		Headers: []kafka.Header{
			{Key: "kind", Value: []byte(m.Kind)},
		},
	})
	if err != nil {
		return fmt.Errorf("write to %s: %w", p.topic, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher logs milestones when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(_ context.Context, m domain.Milestone) error {
	log.Printf("[EVENTS] %s for goal %s (value=%d), no broker configured", m.Kind, m.GoalID, m.Value)
	return nil
}

// NewPublisher picks the Kafka publisher when brokers are configured. The
// returned close func is always safe to call.
func NewPublisher(cfg config.KafkaConfig) (domain.MilestonePublisher, func() error, error) {
	if !cfg.Enabled() {
		log.Println("[EVENTS] Kafka disabled, milestones will only be logged")
		return NoopPublisher{}, func() error { return nil }, nil
	}
	p, err := NewKafkaPublisher(cfg)
	if err != nil {
		return nil, nil, err
	}
	log.Printf("[EVENTS] Publishing milestones to %s via %v", cfg.Topic, cfg.Brokers)
	return p, p.Close, nil
}
