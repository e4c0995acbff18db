package event

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func (r *recorder) Publish(_ context.Context, e Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return r.err
}

func (r *recorder) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

type fakeWriter struct {
	msgs   []kafka.Message
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestMultiPublishesToAll(t *testing.T) {
	ok := &recorder{}
	failing := &recorder{err: errors.New("down")}
	m := Multi{failing, ok}

	err := m.Publish(context.Background(), New(ItemCreated, uuid.New(), uuid.New(), nil, "created"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "down")
	assert.Equal(t, 1, ok.len())
	assert.Equal(t, 1, failing.len())
}

func TestAsyncNeverFails(t *testing.T) {
	next := &recorder{err: errors.New("down")}
	a := NewAsync(next, zerolog.Nop())

	assert.NoError(t, a.Publish(context.Background(), New(BillCreated, uuid.New(), uuid.New(), nil, "")))
	assert.Eventually(t, func() bool { return next.len() == 1 }, time.Second, 10*time.Millisecond)
}

func TestKafkaPublisherMessage(t *testing.T) {
	w := &fakeWriter{}
	p := &KafkaPublisher{writer: w}
	shopID := uuid.New()
	e := New(BillCreated, shopID, uuid.New(), map[string]string{"bill_id": "b1"}, "bill created")

	require.NoError(t, p.Publish(context.Background(), e))
	require.Len(t, w.msgs, 1)

	msg := w.msgs[0]
	assert.Equal(t, shopID.String(), string(msg.Key))
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "event-type", msg.Headers[0].Key)
	assert.Equal(t, "bill_created", string(msg.Headers[0].Value))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "bill_created", decoded["type"])
	assert.Equal(t, shopID.String(), decoded["shop_id"])

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestNop(t *testing.T) {
	assert.NoError(t, Nop{}.Publish(context.Background(), Event{}))
}
