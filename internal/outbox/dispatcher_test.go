package outbox

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	topics   []string
	payloads [][]byte
}

func (p *recordingPublisher) Publish(topic string, payload []byte) {
	p.topics = append(p.topics, topic)
	p.payloads = append(p.payloads, payload)
}

func TestHubSinkPublishesEnvelopePerEvent(t *testing.T) {
	pub := &recordingPublisher{}
	sink := NewHubSink(pub, "notifications")

	now := time.Now().UTC()
	events := []Event{
		{ID: 1, Type: TypeUserCreated, Topic: Topic, Payload: json.RawMessage(`{"user_id":1}`), CreatedAt: now},
		{ID: 2, Type: TypeGoalCompleted, Topic: Topic, Payload: json.RawMessage(`{"participation_id":5}`), CreatedAt: now},
	}
	require.NoError(t, sink.Deliver(context.Background(), events))

	require.Len(t, pub.payloads, 2)
	assert.Equal(t, []string{"notifications", "notifications"}, pub.topics)

	var envelope Envelope
	require.NoError(t, json.Unmarshal(pub.payloads[1], &envelope))
	assert.Equal(t, TypeGoalCompleted, envelope.Type)
	assert.JSONEq(t, `{"participation_id":5}`, string(envelope.Payload))
}
