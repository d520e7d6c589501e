package stream

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// TokenValidator resolves an access token to a user id.
type TokenValidator interface {
	ValidateAccessToken(token string) (string, error)
}

const userIDKey = "user_id"

// RegisterRoutes mounts GET /ws?token=<access token>. Browsers cannot set
// headers on websocket requests, hence the query parameter.
func RegisterRoutes(r fiber.Router, hub *Hub, tokens TokenValidator) {
	r.Get("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		token := c.Query("token")
		if token == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "missing token")
		}
		userID, err := tokens.ValidateAccessToken(token)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "token invalid")
		}
		c.Locals(userIDKey, userID)
		return c.Next()
	}, websocket.New(func(c *websocket.Conn) {
		userID, _ := c.Locals(userIDKey).(string)
		client := hub.Register(userID)
		defer hub.Unregister(client)

		// the reader notices the peer going away; the writer notices
		// the client being unregistered.
		closed := make(chan struct{})
		go func() {
			for {
				if _, _, err := c.ReadMessage(); err != nil {
					close(closed)
					return
				}
			}
		}()

		for {
			select {
			case msg, ok := <-client.Send:
				if !ok {
					return
				}
				if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
					return
				}
			case <-closed:
				return
			}
		}
	}))
}
