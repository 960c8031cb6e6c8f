package cartControllers

import (
	"net/http"
	"time"

	"github.com/Keerthims13/ecommerce-platform/cart"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// GET /api/cart/:session/ws
//
// Pushes the cart, then every later change to it, until the client goes
// away. Snapshots that arrive while the client is still busy are dropped
// in favour of newer ones.
func StreamCart(reg *cart.Registry, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, crt, ok := lookup(c, reg)
		if !ok {
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Warn("cart websocket upgrade failed", zap.Error(err))
			return
		}
		defer conn.Close()

		updates := make(chan cart.Snapshot, 1)
		unsubscribe := crt.Subscribe(func(s cart.Snapshot) {
			select {
			case updates <- s:
			default:
				// replace the stale pending snapshot
				select {
				case <-updates:
				default:
				}
				select {
				case updates <- s:
				default:
				}
			}
		})
		defer unsubscribe()

		// reader: only used to notice the close
		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		send := func(s cart.Snapshot) bool {
			_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
			return conn.WriteJSON(toResponse(id, s)) == nil
		}

		if !send(crt.Snapshot()) {
			return
		}
		for {
			select {
			case <-done:
				return
			case s := <-updates:
				if !send(s) {
					return
				}
			}
		}
	}
}
