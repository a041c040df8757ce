package user

import (
	"context"
	"log"
	"net/http"
	"time"

	"wellnexus_back_end/internal/cart"
	"wellnexus_back_end/internal/database"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins (tighten in production)
		return true
	},
}

// CartWebSocket streams cart changes to a connected client. The Redis
// channel carries the change signal across server instances; the fresh
// state is re-read from the store so the socket never serves stale bytes.
func CartWebSocket(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("❌ WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	ctx := context.Background()

	pubsub := database.Redis.Subscribe(ctx, cart.Key(userID))
	defer pubsub.Close()

	ch := pubsub.Channel()

	conn.WriteJSON(map[string]interface{}{
		"type":    "connected",
		"message": "Cart sync enabled",
	})

	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if msg.Payload != "updated" && msg.Payload != "cleared" {
				continue
			}

			current := Carts.Read(ctx, userID)
			response := map[string]interface{}{
				"type":     "cart_updated",
				"products": current.Products,
				"sessions": current.Sessions,
				"total":    current.GrandTotal(),
				"count":    len(current.Products) + len(current.Sessions),
			}

			if err := conn.WriteJSON(response); err != nil {
				log.Printf("❌ WebSocket send failed: %v", err)
				return
			}
		case <-time.After(30 * time.Second):
			// Ping to keep the connection alive
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
