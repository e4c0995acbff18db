package ws

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"go-shopkeeper/internal/event"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	mu       sync.Mutex
	messages [][]byte
	closed   bool
	failWith error
}

func (c *fakeConn) WriteMessage(_ int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failWith != nil {
		return c.failWith
	}
	c.messages = append(c.messages, data)
	return nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConn) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.messages)
}

func (c *fakeConn) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func startHub(t *testing.T) *Hub {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	h := NewHub(zerolog.Nop())
	go h.Run(ctx)
	return h
}

func TestHubDeliversOnlyToOwnShop(t *testing.T) {
	h := startHub(t)
	shopA, shopB := uuid.New(), uuid.New()
	a1, a2, b1 := &fakeConn{}, &fakeConn{}, &fakeConn{}

	h.Join(Client{ShopID: shopA, Conn: a1})
	h.Join(Client{ShopID: shopA, Conn: a2})
	h.Join(Client{ShopID: shopB, Conn: b1})

	e := event.New(event.StockUpdated, shopA, uuid.New(), map[string]int{"new_stock_quantity": 4}, "stock updated")
	require.NoError(t, h.Publish(context.Background(), e))

	assert.Eventually(t, func() bool { return a1.count() == 1 && a2.count() == 1 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, 0, b1.count())

	var got event.Event
	a1.mu.Lock()
	require.NoError(t, json.Unmarshal(a1.messages[0], &got))
	a1.mu.Unlock()
	assert.Equal(t, event.StockUpdated, got.Type)
	assert.Equal(t, shopA, got.ShopID)
}

func TestHubDropsFailingConnection(t *testing.T) {
	h := startHub(t)
	shop := uuid.New()
	bad := &fakeConn{failWith: errors.New("broken pipe")}

	h.Join(Client{ShopID: shop, Conn: bad})
	require.NoError(t, h.Publish(context.Background(), event.New(event.ItemCreated, shop, uuid.New(), nil, "")))

	assert.Eventually(t, func() bool { return h.ClientCount(shop) == 0 }, time.Second, 10*time.Millisecond)
	assert.True(t, bad.isClosed())
}

func TestHubUnregister(t *testing.T) {
	h := startHub(t)
	shop := uuid.New()
	conn := &fakeConn{}

	h.Join(Client{ShopID: shop, Conn: conn})
	h.Leave(Client{ShopID: shop, Conn: conn})

	assert.Eventually(t, func() bool { return h.ClientCount(shop) == 0 }, time.Second, 10*time.Millisecond)
	assert.True(t, conn.isClosed())
}

func TestHubStopReleasesJoinAndLeave(t *testing.T) {
	h := NewHub(zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	go h.Run(ctx)

	shop := uuid.New()
	conn := &fakeConn{}
	require.True(t, h.Join(Client{ShopID: shop, Conn: conn}))

	cancel()
	select {
	case <-h.Done():
	case <-time.After(time.Second):
		t.Fatal("hub did not stop")
	}
	assert.True(t, conn.isClosed())

	left := make(chan struct{})
	go func() {
		h.Leave(Client{ShopID: shop, Conn: conn})
		close(left)
	}()
	select {
	case <-left:
	case <-time.After(time.Second):
		t.Fatal("Leave blocked after the hub stopped")
	}

	late := &fakeConn{}
	assert.False(t, h.Join(Client{ShopID: shop, Conn: late}))
	assert.True(t, late.isClosed())

	assert.NoError(t, h.Publish(context.Background(), event.New(event.ItemCreated, shop, uuid.New(), nil, "")))
}

func TestHubPublishHonoursContext(t *testing.T) {
	h := NewHub(zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// fill the buffer; nothing is draining it
	for i := 0; i < cap(h.broadcast); i++ {
		h.broadcast <- message{}
	}
	err := h.Publish(ctx, event.New(event.ItemDeleted, uuid.New(), uuid.New(), nil, ""))
	assert.ErrorIs(t, err, context.Canceled)
}
