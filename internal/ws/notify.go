package ws

import (
	"encoding/json"
	"sync/atomic"
	"time"
)

type JobCreatedEvent struct {
	Type      string `json:"type"`
	Title     string `json:"title,omitempty"`
	Source    string `json:"source"`
	Timestamp string `json:"timestamp"`
}

type AlertsProcessedEvent struct {
	Type      string `json:"type"`
	Matched   int    `json:"matched"`
	Emailed   int    `json:"emailed"`
	Timestamp string `json:"timestamp"`
}

var defaultHub atomic.Pointer[Hub]

// SetDefaultHub wires the process-wide hub used by the package-level notify
// helpers. Callers that never set it get no-op notifications, which keeps
// the CLIs free of websocket plumbing.
func SetDefaultHub(h *Hub) {
	defaultHub.Store(h)
}

func NotifyJobCreated(title, source string) {
	h := defaultHub.Load()
	if h == nil {
		return
	}
	publish(h, JobCreatedEvent{
		Type:      "job_created",
		Title:     title,
		Source:    source,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func NotifyAlertsProcessed(matched, emailed int) {
	h := defaultHub.Load()
	if h == nil {
		return
	}
	publish(h, AlertsProcessedEvent{
		Type:      "alerts_processed",
		Matched:   matched,
		Emailed:   emailed,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func publish(h *Hub, evt any) {
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}
	h.Broadcast(b)
}
