package http

import (
	"context"
	"sync/atomic"

	"github.com/fredcamaral/ezprez/internal/domain/ports"
)

// Connection represents a WebSocket client's outbound queue
type Connection struct {
	ID   string
	Send chan ports.UpdateEvent
}

// ConnectionManager owns the set of live WebSocket clients. Only the Run
// goroutine touches the set and only it closes Send channels.
type ConnectionManager struct {
	register   chan *Connection
	unregister chan string
	broadcast  chan ports.UpdateEvent
	closeAll   chan struct{}
	done       chan struct{}
	count      atomic.Int64
}

// NewConnectionManager creates a new connection manager
func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{
		register:   make(chan *Connection),
		unregister: make(chan string),
		broadcast:  make(chan ports.UpdateEvent, 16),
		closeAll:   make(chan struct{}),
		done:       make(chan struct{}),
	}
}

// Run processes registrations and broadcasts until ctx is done, then closes
// every remaining connection
func (cm *ConnectionManager) Run(ctx context.Context) {
	connections := make(map[string]*Connection)

	drop := func(id string) {
		if conn, ok := connections[id]; ok {
			close(conn.Send)
			delete(connections, id)
		}
	}
	dropAll := func() {
		for id := range connections {
			drop(id)
		}
	}

	defer func() {
		dropAll()
		cm.count.Store(0)
		close(cm.done)
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case conn := <-cm.register:
			connections[conn.ID] = conn

		case id := <-cm.unregister:
			drop(id)

		case event := <-cm.broadcast:
			for id, conn := range connections {
				select {
				case conn.Send <- event:
				default:
					// slow client; its writer sees the closed channel and hangs up
					drop(id)
				}
			}

		case <-cm.closeAll:
			dropAll()
		}

		cm.count.Store(int64(len(connections)))
	}
}

// Register adds a connection. It returns false once the manager has stopped.
func (cm *ConnectionManager) Register(conn *Connection) bool {
	select {
	case cm.register <- conn:
		return true
	case <-cm.done:
		return false
	}
}

// Unregister removes a connection, closing its Send channel
func (cm *ConnectionManager) Unregister(connID string) {
	select {
	case cm.unregister <- connID:
	case <-cm.done:
	}
}

// Broadcast queues an event for every connection
func (cm *ConnectionManager) Broadcast(event ports.UpdateEvent) {
	select {
	case cm.broadcast <- event:
	case <-cm.done:
	}
}

// CloseAll disconnects every client
func (cm *ConnectionManager) CloseAll() {
	select {
	case cm.closeAll <- struct{}{}:
	case <-cm.done:
	}
}

// Count returns the number of registered connections
func (cm *ConnectionManager) Count() int {
	return int(cm.count.Load())
}

// Done is closed when Run has returned
func (cm *ConnectionManager) Done() <-chan struct{} {
	return cm.done
}
