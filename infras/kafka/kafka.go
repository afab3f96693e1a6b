package kafka

//go:generate go run go.uber.org/mock/mockgen -source=./kafka.go -destination=./mocks/kafka_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hotelier/config"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl"
	"github.com/segmentio/kafka-go/sasl/plain"
)

const (
	headerEventType = "event_type"
	headerMessageID = "message_id"
)

// Message is one event. ID is generated when empty so consumers can deduplicate redeliveries.
type Message struct {
	ID        string
	Key       string
	EventType string
	Value     any
}

func (m *Message) ToKafkaMessage() (kafkaGo.Message, error) {
	jsonValue, err := json.Marshal(m.Value)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal message value to JSON")

		return kafkaGo.Message{}, fmt.Errorf("failed to marshal message value to JSON: %w", err)
	}

	if m.ID == "" {
		m.ID = uuid.NewString()
	}

	message := kafkaGo.Message{
		Key:     []byte(m.Key),
		Value:   jsonValue,
		Headers: []kafkaGo.Header{{Key: headerMessageID, Value: []byte(m.ID)}},
	}

	if m.EventType != "" {
		message.Headers = append(message.Headers, kafkaGo.Header{Key: headerEventType, Value: []byte(m.EventType)})
	}

	return message, nil
}

// DecodeKafkaMessage turns a record back into a Message whose Value is a T.
func DecodeKafkaMessage[T any](msg kafkaGo.Message) (Message, error) {
	var value T

	err := json.Unmarshal(msg.Value, &value)
	if err != nil {
		log.Error().Err(err).Msg("Failed to unmarshal Kafka message value from JSON")

		return Message{}, fmt.Errorf("failed to unmarshal Kafka message value from JSON: %w", err)
	}

	decoded := Message{
		Key:   string(msg.Key),
		Value: value,
	}

	for _, header := range msg.Headers {
		switch header.Key {
		case headerEventType:
			decoded.EventType = string(header.Value)
		case headerMessageID:
			decoded.ID = string(header.Value)
		}
	}

	return decoded, nil
}

type Client interface {
	SendMessages(ctx context.Context, messages ...Message) (err error)
	Close() error
}

type kafkaClientImpl struct {
	writer *kafkaGo.Writer
}

func New(config *config.Config) Client {
	transport := &kafkaGo.Transport{}

	if config.External.Kafka.SASL.Username != "" {
		var mechanism sasl.Mechanism = plain.Mechanism{
			Username: config.External.Kafka.SASL.Username,
			Password: config.External.Kafka.SASL.Password,
		}

		transport.SASL = mechanism
	}

	writer := &kafkaGo.Writer{
		Addr:                   kafkaGo.TCP(config.External.Kafka.Brokers...),
		Topic:                  config.External.Kafka.Topic,
		Transport:              transport,
		Balancer:               &kafkaGo.Hash{},
		RequiredAcks:           kafkaGo.RequireOne,
		AllowAutoTopicCreation: true,
	}

	log.Info().Strs("brokers", config.External.Kafka.Brokers).Str("topic", config.External.Kafka.Topic).Msg("Kafka client initialized")

	return &kafkaClientImpl{
		writer: writer,
	}
}

func (k *kafkaClientImpl) SendMessages(ctx context.Context, messages ...Message) (err error) {
	msgs := make([]kafkaGo.Message, 0, len(messages))

	for _, message := range messages {
		msg, err := message.ToKafkaMessage()
		if err != nil {
			log.Error().Err(err).Str("topic", k.writer.Topic).Msg("Failed to convert message to Kafka message.")

			return fmt.Errorf("failed to convert message to Kafka message: %w", err)
		}

		msgs = append(msgs, msg)
	}

	err = k.writer.WriteMessages(ctx, msgs...)
	if err != nil {
		log.Error().Err(err).Str("topic", k.writer.Topic).Msg("Failed to send message to Kafka.")

		return fmt.Errorf("failed to send message to Kafka: %w", err)
	}

	log.Debug().Str("topic", k.writer.Topic).Int("count", len(msgs)).Msg("Sent message successfully.")

	return nil
}

func (k *kafkaClientImpl) Close() error {
	if err := k.writer.Close(); err != nil {
		return fmt.Errorf("failed to close Kafka writer: %w", err)
	}

	return nil
}

type noopClient struct{}

// NewNoop returns a client that drops every message, used when EXTERNAL_KAFKA_ENABLE is false.
func NewNoop() Client {
	return noopClient{}
}

func (noopClient) SendMessages(context.Context, ...Message) error {
	return nil
}

func (noopClient) Close() error {
	return nil
}
