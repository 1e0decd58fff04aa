package ports

import (
	"context"
	"time"
)

// PreviewServer serves an exported presentation and pushes reload events
type PreviewServer interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
	NotifyClients(event UpdateEvent) error
	IsRunning() bool
}

// UpdateEvent represents an event sent to WebSocket clients
type UpdateEvent struct {
	Type      string      `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data,omitempty"`
}

// UpdateEventType constants
const (
	EventTypeReload     = "reload"
	EventTypeFileChange = "file_change"
	EventTypeError      = "error"
)
