// Copyright (c) 2025 BVK Chaitanya

package monitor

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/visvasity/topic"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// serveUpdates streams check events to a websocket client. Each completed
// product check is delivered as one JSON message. Slow clients are dropped
// when they fall too far behind.
func (s *Service) serveUpdates(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("could not upgrade updates stream connection (ignored)", "error", err)
		return
	}
	defer conn.Close()

	receiver, err := topic.Subscribe(s.events, 16, false)
	if err != nil {
		slog.Warn("could not subscribe to check events (ignored)", "error", err)
		return
	}
	defer receiver.Close()

	stopf := context.AfterFunc(r.Context(), receiver.Close)
	defer stopf()

	// Drain client messages so close and ping frames are processed.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				receiver.Close()
				return
			}
		}
	}()

	for {
		event, err := receiver.Receive()
		if err != nil {
			return
		}
		if err := conn.WriteJSON(event); err != nil {
			return
		}
	}
}
