package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unity-app/unity-engine/internal/config"
	"github.com/unity-app/unity-engine/internal/core/domain"
)

type recordingWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaPublisher_Publish(t *testing.T) {
	at := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	m := domain.Milestone{Kind: domain.MilestoneFlexDayEarned, GoalID: "g1", UserID: "u1", Value: 2, OccurredAt: at}

	t.Run("Encodes the milestone keyed by goal", func(t *testing.T) {
		w := &recordingWriter{}
		p := newKafkaPublisher(w, "unity.milestones")

		require.NoError(t, p.Publish(context.Background(), m))
		require.Len(t, w.msgs, 1)

		msg := w.msgs[0]
		assert.Equal(t, "g1", string(msg.Key))
		assert.Equal(t, at, msg.Time)
		assert.Equal(t, "flex_day_earned", string(msg.Headers[0].Value))

		var decoded struct {
			Type   string `json:"type"`
			GoalID string `json:"goal_id"`
			Value  int    `json:"value"`
		}
		require.NoError(t, json.Unmarshal(msg.Value, &decoded))
		assert.Equal(t, "milestone.flex_day_earned", decoded.Type)
		assert.Equal(t, "g1", decoded.GoalID)
		assert.Equal(t, 2, decoded.Value)
	})

	t.Run("Wraps writer errors", func(t *testing.T) {
		boom := errors.New("leader not available")
		p := newKafkaPublisher(&recordingWriter{err: boom}, "unity.milestones")

		err := p.Publish(context.Background(), m)
		assert.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "unity.milestones")
	})

	t.Run("Close closes the writer", func(t *testing.T) {
		w := &recordingWriter{}
		require.NoError(t, newKafkaPublisher(w, "t").Close())
		assert.True(t, w.closed)
	})
}

func TestNewPublisher(t *testing.T) {
	t.Run("No brokers falls back to logging", func(t *testing.T) {
		p, closeFn, err := NewPublisher(config.KafkaConfig{Topic: "unity.milestones"})
		require.NoError(t, err)
		assert.IsType(t, NoopPublisher{}, p)
		assert.NoError(t, p.Publish(context.Background(), domain.Milestone{Kind: domain.MilestoneComeback}))
		assert.NoError(t, closeFn())
	})

	t.Run("Brokers without topic", func(t *testing.T) {
		_, _, err := NewPublisher(config.KafkaConfig{Brokers: []string{"kafka:9092"}})
		assert.ErrorIs(t, err, ErrNoTopic)
	})

	t.Run("Brokers configured", func(t *testing.T) {
		p, closeFn, err := NewPublisher(config.KafkaConfig{Brokers: []string{"kafka:9092"}, Topic: "unity.milestones"})
		require.NoError(t, err)
		assert.IsType(t, &KafkaPublisher{}, p)
		assert.NoError(t, closeFn())
	})
}
