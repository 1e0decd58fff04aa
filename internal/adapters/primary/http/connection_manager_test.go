package http

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fredcamaral/ezprez/internal/domain/ports"
)

func runManager(t *testing.T) (*ConnectionManager, context.CancelFunc) {
	t.Helper()
	cm := NewConnectionManager()
	ctx, cancel := context.WithCancel(context.Background())
	go cm.Run(ctx)
	t.Cleanup(cancel)
	return cm, cancel
}

func newConn(id string, buffer int) *Connection {
	return &Connection{ID: id, Send: make(chan ports.UpdateEvent, buffer)}
}

func waitCount(t *testing.T, cm *ConnectionManager, want int) {
	t.Helper()
	assert.Eventually(t, func() bool { return cm.Count() == want }, time.Second, 5*time.Millisecond)
}

func TestConnectionManager(t *testing.T) {
	t.Run("register and unregister connection", func(t *testing.T) {
		cm, _ := runManager(t)
		conn := newConn("test-conn", 1)

		require.True(t, cm.Register(conn))
		waitCount(t, cm, 1)

		cm.Unregister("test-conn")
		waitCount(t, cm, 0)

		_, ok := <-conn.Send
		assert.False(t, ok, "unregister closes the send channel")

		cm.Unregister("test-conn")
		cm.Unregister("never-registered")
	})

	t.Run("broadcast to connections", func(t *testing.T) {
		cm, _ := runManager(t)

		conns := make([]*Connection, 3)
		for i := range conns {
			conns[i] = newConn(fmt.Sprintf("client-%d", i), 1)
			require.True(t, cm.Register(conns[i]))
		}

		event := ports.UpdateEvent{Type: ports.EventTypeReload, Timestamp: time.Now()}
		cm.Broadcast(event)

		for _, conn := range conns {
			select {
			case got := <-conn.Send:
				assert.Equal(t, ports.EventTypeReload, got.Type)
			case <-time.After(time.Second):
				t.Fatalf("%s did not receive the event", conn.ID)
			}
		}
	})

	t.Run("slow client is dropped", func(t *testing.T) {
		cm, _ := runManager(t)
		slow := newConn("slow", 0)
		fast := newConn("fast", 4)
		require.True(t, cm.Register(slow))
		require.True(t, cm.Register(fast))

		cm.Broadcast(ports.UpdateEvent{Type: ports.EventTypeReload})
		waitCount(t, cm, 1)

		_, ok := <-slow.Send
		assert.False(t, ok)
		assert.Equal(t, ports.EventTypeReload, (<-fast.Send).Type)
	})

	t.Run("close all", func(t *testing.T) {
		cm, _ := runManager(t)
		conns := []*Connection{newConn("a", 1), newConn("b", 1)}
		for _, c := range conns {
			require.True(t, cm.Register(c))
		}

		cm.CloseAll()
		waitCount(t, cm, 0)

		for _, c := range conns {
			_, ok := <-c.Send
			assert.False(t, ok)
		}
	})

	t.Run("stops with context", func(t *testing.T) {
		cm, cancel := runManager(t)
		conn := newConn("a", 1)
		require.True(t, cm.Register(conn))

		cancel()
		select {
		case <-cm.Done():
		case <-time.After(time.Second):
			t.Fatal("manager did not stop")
		}

		_, ok := <-conn.Send
		assert.False(t, ok)

		assert.False(t, cm.Register(newConn("late", 1)))
		cm.Broadcast(ports.UpdateEvent{Type: ports.EventTypeReload})
		cm.Unregister("a")
		cm.CloseAll()
	})
}

func TestConnectionManagerConcurrentAccess(t *testing.T) {
	cm, _ := runManager(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			conn := newConn(fmt.Sprintf("conn-%d", i), 8)
			if !cm.Register(conn) {
				return
			}
			cm.Broadcast(ports.UpdateEvent{Type: ports.EventTypeFileChange})
			cm.Unregister(conn.ID)
		}(i)
	}
	wg.Wait()

	waitCount(t, cm, 0)
}
