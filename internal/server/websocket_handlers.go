// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"context"
	"encoding/json"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"tribuna/internal/middleware"
)

// WebsocketHandler returns a websocket handler that registers connections with the Hub.
// Authentication is handled by route middleware and userID is read from connection locals.
func (s *Server) WebsocketHandler() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		middleware.ActiveWebSockets.Inc()
		defer middleware.ActiveWebSockets.Dec()

		userIDVal := conn.Locals("userID")
		if userIDVal == nil {
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"unauthorized"}`))
			if cerr := conn.Close(); cerr != nil {
				log.Printf("websocket close error: %v", cerr)
			}
			return
		}
		uid, ok := userIDVal.(uint)
		if !ok {
			if cerr := conn.Close(); cerr != nil {
				log.Printf("websocket close error: %v", cerr)
			}
			return
		}

		if s.hub == nil {
			_ = conn.Close()
			return
		}

		// Register connection with scaling guardrails
		client, err := s.hub.Register(uid, conn)
		if err != nil {
			log.Printf("WebSocket Notifications: Failed to register user %d: %v", uid, err)
			_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"`+err.Error()+`"}`))
			_ = conn.Close()
			return
		}

		defer s.hub.UnregisterClient(client)

		s.sendUnreadSnapshot(conn, uid)

		// Start pumps
		go client.WritePump()
		client.ReadPump()
	})
}

// sendUnreadSnapshot pushes the current unread notification count on connect so
// clients can render a badge without an extra HTTP round trip.
func (s *Server) sendUnreadSnapshot(conn *websocket.Conn, userID uint) {
	if s.notifService == nil {
		return
	}
	count, err := s.notifService.CountUnread(context.Background(), userID)
	if err != nil {
		log.Printf("failed to load unread count for user %d: %v", userID, err)
		return
	}
	msg, err := json.Marshal(map[string]interface{}{
		"type": "unread_snapshot",
		"payload": map[string]interface{}{
			"unread": count,
		},
	})
	if err != nil {
		log.Printf("failed to marshal unread snapshot: %v", err)
		return
	}
	if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
		log.Printf("failed to write unread snapshot: %v", err)
	}
}
