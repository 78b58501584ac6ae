package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/kantodex/pokedex-backend/pkg/logger"
)

// Publisher wraps a Kafka sync producer
type Publisher struct {
	producer sarama.SyncProducer
	brokers  []string
}

// NewPublisher creates a new Kafka publisher
func NewPublisher(brokers []string) (*Publisher, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.Retry.Max = 3
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Compression = sarama.CompressionSnappy

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	logger.Logger.Info().
		Strs("brokers", brokers).
		Msg("Kafka publisher initialized")

	return &Publisher{producer: producer, brokers: brokers}, nil
}

// PublishVoteCast publishes a vote cast event with tracing
func (p *Publisher) PublishVoteCast(ctx context.Context, event VoteCastEvent) error {
	tracer := otel.Tracer("kafka-publisher")
	ctx, span := tracer.Start(ctx, "kafka.publish.vote_cast",
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination", TopicVoteCast),
			attribute.String("event.type", EventTypeVoteCast),
			attribute.Int("pokemon.id", event.PokemonID),
			attribute.Int("vote.value", event.Vote),
		),
	)
	defer span.End()

	event.EventType = EventTypeVoteCast
	if err := p.publish(ctx, span, TopicVoteCast, keyForPokemon(event.PokemonID), &event.EventID, &event.Timestamp, event.EventType, &event); err != nil {
		return err
	}

	logger.Logger.Info().
		Str("event_id", event.EventID).
		Str("topic", TopicVoteCast).
		Int("pokemon_id", event.PokemonID).
		Int("vote", event.Vote).
		Msg("Vote cast event published")
	return nil
}

// PublishFavoriteToggled publishes a favorite toggled event with tracing
func (p *Publisher) PublishFavoriteToggled(ctx context.Context, event FavoriteToggledEvent) error {
	tracer := otel.Tracer("kafka-publisher")
	ctx, span := tracer.Start(ctx, "kafka.publish.favorite_toggled",
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination", TopicFavoriteToggled),
			attribute.String("event.type", EventTypeFavoriteToggled),
			attribute.Int("pokemon.id", event.PokemonID),
			attribute.Bool("favorite.state", event.IsFavorite),
		),
	)
	defer span.End()

	event.EventType = EventTypeFavoriteToggled
	if err := p.publish(ctx, span, TopicFavoriteToggled, keyForPokemon(event.PokemonID), &event.EventID, &event.Timestamp, event.EventType, &event); err != nil {
		return err
	}

	logger.Logger.Info().
		Str("event_id", event.EventID).
		Str("topic", TopicFavoriteToggled).
		Int("pokemon_id", event.PokemonID).
		Bool("is_favorite", event.IsFavorite).
		Msg("Favorite toggled event published")
	return nil
}

// publish fills event metadata, injects trace context into headers and
// sends the message.
func (p *Publisher) publish(ctx context.Context, span trace.Span, topic, key string, eventID *string, ts *time.Time, eventType string, event interface{}) error {
	if *eventID == "" {
		*eventID = uuid.NewString()
	}
	*ts = time.Now()
	span.SetAttributes(attribute.String("event.id", *eventID))

	eventBytes, err := json.Marshal(event)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to marshal event")
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)

	headers := []sarama.RecordHeader{
		{Key: []byte("event_type"), Value: []byte(eventType)},
		{Key: []byte("event_id"), Value: []byte(*eventID)},
	}
	for k, v := range carrier {
		headers = append(headers, sarama.RecordHeader{Key: []byte(k), Value: []byte(v)})
	}

	msg := &sarama.ProducerMessage{
		Topic:   topic,
		Key:     sarama.StringEncoder(key),
		Value:   sarama.ByteEncoder(eventBytes),
		Headers: headers,
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to send message")
		logger.Logger.Error().
			Err(err).
			Str("topic", topic).
			Msg("Failed to publish event")
		return fmt.Errorf("failed to send message to Kafka: %w", err)
	}

	span.SetAttributes(
		attribute.Int("messaging.kafka.partition", int(partition)),
		attribute.Int64("messaging.kafka.offset", offset),
	)
	span.SetStatus(codes.Ok, "Event published")
	return nil
}

func keyForPokemon(id int) string {
	return fmt.Sprintf("pokemon_%d", id)
}

// Close closes the Kafka producer
func (p *Publisher) Close() error {
	if p.producer != nil {
		return p.producer.Close()
	}
	return nil
}
