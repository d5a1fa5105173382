package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

type fakeReader struct {
	messages []kafka.Message
}

func (r *fakeReader) ReadMessage(context.Context) (kafka.Message, error) {
	if len(r.messages) == 0 {
		return kafka.Message{}, io.EOF
	}
	msg := r.messages[0]
	r.messages = r.messages[1:]
	return msg, nil
}

func (r *fakeReader) Close() error { return nil }

func TestProducer_Publish(t *testing.T) {
	w := &fakeWriter{}
	p := &Producer{writer: w}

	event := SavedFlightEvent{ID: "e1", Type: EventFlightSaved, FlightID: 3, FlightNumber: "UA 1234"}
	require.NoError(t, p.Publish(context.Background(), "saved-flight-events", "UA 1234", event))

	require.Len(t, w.messages, 1)
	assert.Equal(t, "saved-flight-events", w.messages[0].Topic)
	assert.Equal(t, []byte("UA 1234"), w.messages[0].Key)

	var decoded SavedFlightEvent
	require.NoError(t, json.Unmarshal(w.messages[0].Value, &decoded))
	assert.Equal(t, event, decoded)

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestProducer_PublishError(t *testing.T) {
	p := &Producer{writer: &fakeWriter{err: errors.New("broker down")}}

	err := p.Publish(context.Background(), "topic", "key", SavedFlightEvent{Type: EventFlightDeleted})
	assert.ErrorContains(t, err, "broker down")
}

func TestProducer_CheckConnectionWithoutBrokers(t *testing.T) {
	p := &Producer{}
	assert.Error(t, p.CheckConnection(context.Background()))
}

func TestDecodeEvent(t *testing.T) {
	event, err := DecodeEvent(kafka.Message{Value: []byte(`{"id":"e1","type":"flight_deleted","flight_number":"UA 1234","deleted_rows":1}`)})
	require.NoError(t, err)
	assert.Equal(t, EventFlightDeleted, event.Type)
	assert.Equal(t, int64(1), event.DeletedRows)

	_, err = DecodeEvent(kafka.Message{Value: []byte(`not json`)})
	assert.Error(t, err)

	_, err = DecodeEvent(kafka.Message{Value: []byte(`{"flight_number":"UA 1234"}`)})
	assert.Error(t, err)
}

func TestConsumer_ConsumeEventsSkipsMalformed(t *testing.T) {
	c := &Consumer{reader: &fakeReader{messages: []kafka.Message{
		{Value: []byte(`garbage`)},
		{Value: []byte(`{"id":"e1","type":"flight_saved","flight_number":"UA 1234"}`)},
	}}}

	var got []SavedFlightEvent
	err := c.ConsumeEvents(context.Background(), func(_ context.Context, e SavedFlightEvent) error {
		got = append(got, e)
		return nil
	})

	assert.ErrorIs(t, err, io.EOF)
	require.Len(t, got, 1)
	assert.Equal(t, "UA 1234", got[0].FlightNumber)
}

func TestConsumer_HandlerErrorStops(t *testing.T) {
	c := &Consumer{reader: &fakeReader{messages: []kafka.Message{
		{Value: []byte(`{"type":"flight_saved"}`)},
		{Value: []byte(`{"type":"flight_saved"}`)},
	}}}
	boom := errors.New("boom")

	calls := 0
	err := c.ConsumeEvents(context.Background(), func(context.Context, SavedFlightEvent) error {
		calls++
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func TestConsumer_CloseNil(t *testing.T) {
	var c *Consumer
	assert.NoError(t, c.Close())
}
