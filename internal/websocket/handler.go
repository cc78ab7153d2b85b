package websocket

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// RegisterRoutes exposes the push endpoint. Browsers cannot set an
// Authorization header on the upgrade request, so the session token travels
// as a query parameter.
func RegisterRoutes(r fiber.Router, hub *Hub) {
	r.Get("/ws", websocket.New(func(conn *websocket.Conn) {
		ownerID, ok := ownerFromToken(conn.Query("token"))
		if !ok {
			conn.Close()
			return
		}
		ServeWs(hub, conn, ownerID)
	}))
}

func ownerFromToken(tokenStr string) (uuid.UUID, bool) {
	if tokenStr == "" {
		return uuid.Nil, false
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, false
	}

	for _, key := range []string{"guest_id", "user_id"} {
		if raw, ok := claims[key].(string); ok && raw != "" {
			if id, err := uuid.Parse(raw); err == nil {
				return id, true
			}
		}
	}
	return uuid.Nil, false
}

// ServeWs wires one upgraded connection into the hub.
func ServeWs(hub *Hub, c *websocket.Conn, ownerID uuid.UUID) {
	client := &Client{Hub: hub, Conn: c, OwnerID: ownerID, Send: make(chan []byte, 256)}
	client.Hub.register <- client

	go client.writePump()
	client.readPump() // Runs on the handler goroutine; returning closes the conn.
}
