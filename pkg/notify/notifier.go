package notify

import (
	"encoding/json"
	"log/slog"

	"github.com/vichannnnn/holy-grail-sub001/websocket"
)

// Notifier is the minimal interface for pushing real-time events to a user.
type Notifier interface {
	NotifyUser(userID int, event interface{})
}

// WSNotifier delivers events over the WebSocket hub.
type WSNotifier struct {
	Hub *websocket.Hub
}

func (n *WSNotifier) NotifyUser(userID int, event interface{}) {
	if n == nil || n.Hub == nil {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		slog.Error("failed to marshal notification", "err", err)
		return
	}
	n.Hub.NotifyUser(userID, payload)
}

// NopNotifier drops every event. Useful in tests and when the hub is disabled.
type NopNotifier struct{}

func (NopNotifier) NotifyUser(int, interface{}) {}
