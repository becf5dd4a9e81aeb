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
)

type captureWriter struct {
	messages []kafka.Message
	err      error
}

func (w *captureWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *captureWriter) Close() error { return nil }

func TestPublishOrderPlaced(t *testing.T) {
	w := &captureWriter{}
	p := &KafkaPublisher{writer: w}

	event := OrderPlaced{
		OrderID:    555,
		CustomerID: 314,
		SessionID:  "sess-1",
		ItemCount:  2,
		Total:      "BDT 2545.00",
		PlacedAt:   time.Now(),
	}
	require.NoError(t, p.PublishOrderPlaced(context.Background(), event))

	require.Len(t, w.messages, 1)
	assert.Equal(t, []byte("555"), w.messages[0].Key)

	var got OrderPlaced
	require.NoError(t, json.Unmarshal(w.messages[0].Value, &got))
	assert.Equal(t, event.OrderID, got.OrderID)
	assert.Equal(t, event.Total, got.Total)
}

func TestPublishOrderPlaced_WriterError(t *testing.T) {
	p := &KafkaPublisher{writer: &captureWriter{err: errors.New("broker down")}}

	err := p.PublishOrderPlaced(context.Background(), OrderPlaced{OrderID: 1})
	assert.Error(t, err)
}
