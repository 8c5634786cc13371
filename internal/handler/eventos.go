package handler

import (
	"io"

	"github.com/Diegosuar/control-gastos-alpha-style/internal/notify"

	"github.com/gin-gonic/gin"
)

// Eventos streams inventory and ledger change notifications over SSE so
// clients can refresh their snapshots instead of polling.
func Eventos(notifier *notify.Notifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/event-stream")
		c.Header("Cache-Control", "no-cache")
		c.Header("Connection", "keep-alive")

		eventos, cerrar := notifier.Suscribir(c.Request.Context(),
			notify.CanalInventario, notify.CanalTransacciones)
		defer cerrar()

		c.Stream(func(w io.Writer) bool {
			select {
			case ev, ok := <-eventos:
				if !ok {
					return false
				}
				c.SSEvent(ev.Canal, ev)
				return true
			case <-c.Request.Context().Done():
				return false
			}
		})
	}
}
