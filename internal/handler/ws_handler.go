package handler

import (
	"go-shopkeeper/internal/middleware"
	"go-shopkeeper/internal/service"
	"go-shopkeeper/internal/ws"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// WSHandler attaches authenticated websocket connections to their shop's feed.
type WSHandler struct {
	hub   *ws.Hub
	shops service.ShopService
	log   zerolog.Logger
}

func NewWSHandler(hub *ws.Hub, shops service.ShopService, log zerolog.Logger) *WSHandler {
	return &WSHandler{hub: hub, shops: shops, log: log}
}

// Resolve runs before the upgrade so a caller without a shop gets a plain 404.
func (h *WSHandler) Resolve(c *fiber.Ctx) error {
	accountID, err := currentAccount(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	shop, err := h.shops.GetShop(c.UserContext(), accountID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	c.Locals("shop_id", shop.ID)
	return c.Next()
}

func (h *WSHandler) Serve() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		shopID, ok := conn.Locals("shop_id").(uuid.UUID)
		if !ok {
			conn.Close()
			return
		}
		client := ws.Client{ShopID: shopID, Conn: conn}
		if !h.hub.Join(client) {
			return
		}
		defer h.hub.Leave(client)

		accountID, _ := conn.Locals(middleware.LocalAccountID).(uuid.UUID)
		h.log.Debug().Str("account_id", accountID.String()).Msg("ws session started")

		// The feed is one-way; reading only detects the close.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})
}
