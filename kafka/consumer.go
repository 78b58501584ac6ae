package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/IBM/sarama"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/kantodex/pokedex-backend/pkg/logger"
)

// VoteEventHandler handles a decoded vote cast event
type VoteEventHandler func(ctx context.Context, event VoteCastEvent) error

// Consumer consumes vote cast events from Kafka
type Consumer struct {
	group   sarama.ConsumerGroup
	groupID string
	handler VoteEventHandler
}

// NewConsumer creates a new vote event consumer
func NewConsumer(brokers []string, groupID string, handler VoteEventHandler) (*Consumer, error) {
	config := sarama.NewConfig()
	config.Version = sarama.V2_6_0_0
	config.Consumer.Group.Rebalance.Strategy = sarama.NewBalanceStrategyRoundRobin()
	config.Consumer.Offsets.Initial = sarama.OffsetNewest
	config.Consumer.Return.Errors = true

	group, err := sarama.NewConsumerGroup(brokers, groupID, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka consumer: %w", err)
	}

	logger.Logger.Info().
		Strs("brokers", brokers).
		Str("group_id", groupID).
		Msg("Kafka consumer initialized")

	return &Consumer{group: group, groupID: groupID, handler: handler}, nil
}

// Start consumes the vote topic until ctx is cancelled
func (c *Consumer) Start(ctx context.Context) {
	topics := []string{TopicVoteCast}

	go func() {
		for {
			select {
			case <-ctx.Done():
				logger.Logger.Info().Msg("Consumer context cancelled, stopping")
				return
			default:
				if err := c.group.Consume(ctx, topics, &voteGroupHandler{consumer: c}); err != nil {
					logger.Logger.Error().Err(err).Msg("Error from consumer")
				}
			}
		}
	}()

	go func() {
		for err := range c.group.Errors() {
			logger.Logger.Error().Err(err).Msg("Consumer error")
		}
	}()

	logger.Logger.Info().
		Strs("topics", topics).
		Str("group_id", c.groupID).
		Msg("Kafka consumer started")
}

// Close closes the Kafka consumer
func (c *Consumer) Close() error {
	if c.group != nil {
		return c.group.Close()
	}
	return nil
}

// voteGroupHandler implements sarama.ConsumerGroupHandler
type voteGroupHandler struct {
	consumer *Consumer
}

func (h *voteGroupHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *voteGroupHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *voteGroupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for msg := range claim.Messages() {
		h.handleMessage(session.Context(), msg)
		session.MarkMessage(msg, "")
	}
	return nil
}

// handleMessage extracts the trace context, decodes the event and
// dispatches it. A handler failure is logged, not retried: the message
// is marked either way because trending scores tolerate gaps.
func (h *voteGroupHandler) handleMessage(ctx context.Context, msg *sarama.ConsumerMessage) {
	carrier := propagation.MapCarrier{}
	for _, header := range msg.Headers {
		carrier[string(header.Key)] = string(header.Value)
	}
	ctx = otel.GetTextMapPropagator().Extract(ctx, carrier)

	tracer := otel.Tracer("kafka-consumer")
	ctx, span := tracer.Start(ctx, "kafka.consume.vote_cast",
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination", msg.Topic),
			attribute.Int64("messaging.kafka.offset", msg.Offset),
		),
	)
	defer span.End()

	var event VoteCastEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to decode event")
		logger.Logger.Error().
			Err(err).
			Str("topic", msg.Topic).
			Msg("Failed to decode vote event")
		return
	}

	if err := h.consumer.handler(ctx, event); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Handler failed")
		logger.Logger.Error().
			Err(err).
			Str("event_id", event.EventID).
			Msg("Vote event handler failed")
		return
	}

	span.SetStatus(codes.Ok, "Event handled")
}
