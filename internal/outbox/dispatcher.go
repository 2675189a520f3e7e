package outbox

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

// Sink receives a batch of claimed events. Delivery is best effort;
// a sink error is logged and the batch is still marked published.
type Sink interface {
	Deliver(ctx context.Context, events []Event) error
}

// Dispatcher drains the outbox table and fans events out to the sinks.
type Dispatcher struct {
	pool             *pgxpool.Pool
	sinks            []Sink
	pollInterval     time.Duration
	batchSize        int
	log              zerolog.Logger
	shutdownComplete chan struct{}
}

// NewDispatcher constructs a Dispatcher.
func NewDispatcher(pool *pgxpool.Pool, log zerolog.Logger, pollInterval time.Duration, batchSize int, sinks ...Sink) *Dispatcher {
	return &Dispatcher{
		pool:             pool,
		sinks:            sinks,
		pollInterval:     pollInterval,
		batchSize:        batchSize,
		log:              log.With().Str("component", "outbox").Logger(),
		shutdownComplete: make(chan struct{}),
	}
}

// Start launches the polling loop. It should be called in a goroutine.
func (d *Dispatcher) Start(ctx context.Context) {
	ticker := time.NewTicker(d.pollInterval)
	defer func() {
		ticker.Stop()
		close(d.shutdownComplete)
	}()

	for {
		if err := d.processBatch(ctx); err != nil && !errors.Is(err, context.Canceled) {
			d.log.Error().Err(err).Msg("dispatcher batch failed")
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// Wait blocks until the dispatcher has stopped.
func (d *Dispatcher) Wait() {
	<-d.shutdownComplete
}

func (d *Dispatcher) processBatch(ctx context.Context) error {
	events, err := d.fetchAndClaim(ctx)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		return nil
	}

	for _, sink := range d.sinks {
		if err := sink.Deliver(ctx, events); err != nil {
			// At-most-once: log and move on, nothing is replayed.
			d.log.Warn().Err(err).Int("events", len(events)).Msg("sink delivery failed")
		}
	}

	return d.markPublished(ctx, events)
}

func (d *Dispatcher) fetchAndClaim(ctx context.Context) ([]Event, error) {
	tx, err := d.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	const query = `SELECT event_id, event_type, topic, payload, created_at
        FROM outbox
        WHERE published_at IS NULL
        ORDER BY event_id
        LIMIT $1
        FOR UPDATE SKIP LOCKED`

	rows, err := tx.Query(ctx, query, d.batchSize)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]Event, 0, d.batchSize)
	for rows.Next() {
		var ev Event
		if err := rows.Scan(&ev.ID, &ev.Type, &ev.Topic, &ev.Payload, &ev.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, tx.Commit(ctx)
}

func (d *Dispatcher) markPublished(ctx context.Context, events []Event) error {
	ids := make([]int64, 0, len(events))
	for _, ev := range events {
		ids = append(ids, ev.ID)
	}
	_, err := d.pool.Exec(ctx, `UPDATE outbox SET published_at = now() WHERE event_id = ANY($1)`, ids)
	return err
}

// KafkaSink delivers events to their Kafka topic.
type KafkaSink struct {
	producer *KafkaProducer
}

// NewKafkaSink constructs a KafkaSink.
func NewKafkaSink(producer *KafkaProducer) *KafkaSink {
	return &KafkaSink{producer: producer}
}

// Deliver writes one message per event keyed by event type.
func (s *KafkaSink) Deliver(ctx context.Context, events []Event) error {
	byTopic := make(map[string][]kafka.Message)
	for _, ev := range events {
		value, err := json.Marshal(Envelope{Type: ev.Type, Payload: ev.Payload, OccurredAt: ev.CreatedAt})
		if err != nil {
			return err
		}
		byTopic[ev.Topic] = append(byTopic[ev.Topic], kafka.Message{
			Key:   []byte(ev.Type),
			Value: value,
		})
	}

	for topic, msgs := range byTopic {
		if err := s.producer.WriteMessages(ctx, topic, msgs...); err != nil {
			return err
		}
	}
	return nil
}

// Publisher is the subset of the notification hub the sink needs.
type Publisher interface {
	Publish(topic string, payload []byte)
}

// HubSink broadcasts events to websocket subscribers.
type HubSink struct {
	hub   Publisher
	topic string
}

// NewHubSink constructs a HubSink publishing on topic.
func NewHubSink(hub Publisher, topic string) *HubSink {
	return &HubSink{hub: hub, topic: topic}
}

// Deliver publishes each event envelope to the hub topic.
func (s *HubSink) Deliver(_ context.Context, events []Event) error {
	for _, ev := range events {
		value, err := json.Marshal(Envelope{Type: ev.Type, Payload: ev.Payload, OccurredAt: ev.CreatedAt})
		if err != nil {
			return err
		}
		s.hub.Publish(s.topic, value)
	}
	return nil
}
