package http

import (
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/fredcamaral/ezprez/internal/domain/ports"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer
	maxMessageSize = 512

	// EventTypeConnected greets a newly connected client
	EventTypeConnected = "connected"
)

// WebSocketClient is one browser tab listening for reloads
type WebSocketClient struct {
	id      string
	conn    *websocket.Conn
	send    chan ports.UpdateEvent
	manager *ConnectionManager
	logger  ports.Logger
}

func (s *Server) createUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.isValidOrigin,
	}
}

// handleWebSocket upgrades the request and registers the client for reload
// events
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	upgrader := s.createUpgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("WebSocket upgrade failed: %v", err)
		return
	}

	client := &WebSocketClient{
		id:      uuid.New().String(),
		conn:    conn,
		send:    make(chan ports.UpdateEvent, 16),
		manager: s.manager(),
		logger:  s.logger,
	}

	if !client.manager.Register(&Connection{ID: client.id, Send: client.send}) {
		_ = conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()

	s.logger.Debug("WebSocket client %s connected", client.id)

	select {
	case client.send <- ports.UpdateEvent{
		Type:      EventTypeConnected,
		Timestamp: time.Now(),
		Data:      map[string]string{"message": "Connected to ezprez preview"},
	}:
	default:
	}
}

// readPump drains client messages so pongs and close frames are processed
func (c *WebSocketClient) readPump() {
	defer func() {
		c.manager.Unregister(c.id)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn("WebSocket connection error: %v", err)
			}
			return
		}
		c.logger.Debug("Ignoring message from client %s: %s", c.id, message)
	}
}

// writePump forwards queued events as JSON and keeps the connection alive.
// It exits when the manager closes the send channel.
func (c *WebSocketClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case event, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(event); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// BroadcastReload tells every client to reload the presentation
func (s *Server) BroadcastReload(source string) error {
	return s.NotifyClients(ports.UpdateEvent{
		Type:      ports.EventTypeReload,
		Timestamp: time.Now(),
		Data:      map[string]string{"file": source, "message": "Presentation updated"},
	})
}

// BroadcastFileChange tells clients the deck changed and a re-export started
func (s *Server) BroadcastFileChange(path, change string) error {
	return s.NotifyClients(ports.UpdateEvent{
		Type:      ports.EventTypeFileChange,
		Timestamp: time.Now(),
		Data:      map[string]string{"file": path, "change": change},
	})
}

// BroadcastError reports a failed re-export to every client
func (s *Server) BroadcastError(err error) error {
	return s.NotifyClients(ports.UpdateEvent{
		Type:      ports.EventTypeError,
		Timestamp: time.Now(),
		Data:      map[string]string{"message": err.Error()},
	})
}

// isValidOrigin accepts same-origin requests, loopback and private network
// hosts, and the configured CORS origins
func (s *Server) isValidOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}

	originURL, err := url.Parse(origin)
	if err != nil {
		s.logger.Warn("WebSocket connection rejected: invalid origin %q: %v", origin, err)
		return false
	}

	if strings.EqualFold(originURL.Host, r.Host) {
		return true
	}

	hostname := originURL.Hostname()
	if hostname == "localhost" {
		return true
	}
	if ip := net.ParseIP(hostname); ip != nil && (ip.IsLoopback() || ip.IsPrivate()) {
		return true
	}

	for _, allowed := range s.config.GetCORSOrigins() {
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return true
		}
	}

	s.logger.Warn("WebSocket connection rejected: origin %s not allowed", origin)
	return false
}
