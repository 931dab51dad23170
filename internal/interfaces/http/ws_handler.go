package http

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/conversahub/billing-api/internal/infrastructure/ws"
)

// RegisterWebSocket monta GET /ws/:companyId. La conexión queda suscrita a los
// eventos de la empresa (company-{id}-payment).
func RegisterWebSocket(app *fiber.App, hub *ws.Hub) {
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/:companyId", websocket.New(func(conn *websocket.Conn) {
		hub.Serve(conn.Params("companyId"), conn)
	}))
}
