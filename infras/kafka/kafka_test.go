package kafka_test

import (
	"context"
	"hotelier/infras/kafka"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookingEvent struct {
	BookingID int64  `json:"booking_id"`
	Status    string `json:"status"`
}

func TestMessageRoundTrip(t *testing.T) {
	msg := kafka.Message{
		Key:       "BK20250501-000001",
		EventType: "booking.created",
		Value:     bookingEvent{BookingID: 1, Status: "PENDING"},
	}

	record, err := msg.ToKafkaMessage()
	require.NoError(t, err)
	assert.Equal(t, []byte("BK20250501-000001"), record.Key)
	assert.JSONEq(t, `{"booking_id":1,"status":"PENDING"}`, string(record.Value))
	require.Len(t, record.Headers, 2)
	assert.NotEmpty(t, msg.ID)

	decoded, err := kafka.DecodeKafkaMessage[bookingEvent](record)
	require.NoError(t, err)
	assert.Equal(t, msg.ID, decoded.ID)
	assert.Equal(t, msg.Key, decoded.Key)
	assert.Equal(t, msg.EventType, decoded.EventType)
	assert.Equal(t, msg.Value, decoded.Value)
}

func TestToKafkaMessageKeepsGivenID(t *testing.T) {
	msg := kafka.Message{ID: "evt-1", Key: "k", Value: 1}

	record, err := msg.ToKafkaMessage()
	require.NoError(t, err)
	require.Len(t, record.Headers, 1)
	assert.Equal(t, "evt-1", string(record.Headers[0].Value))
}

func TestToKafkaMessageRejectsUnencodable(t *testing.T) {
	msg := kafka.Message{Key: "k", Value: make(chan int)}

	_, err := msg.ToKafkaMessage()
	assert.Error(t, err)
}

func TestNoopClient(t *testing.T) {
	client := kafka.NewNoop()

	assert.NoError(t, client.SendMessages(context.Background(), kafka.Message{Key: "k", Value: 1}))
	assert.NoError(t, client.Close())
}
