// Package notify publishes repository change events over Redis pub/sub.
// Clients holding a live view (inventory table, movement history) subscribe
// and re-read their snapshot when a change lands; core logic never consumes
// these events, it always receives snapshots explicitly.
package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	CanalInventario    = "cambios:inventario"
	CanalTransacciones = "cambios:transacciones"
)

// Evento is one change notification.
type Evento struct {
	Canal     string    `json:"-"`
	Tipo      string    `json:"tipo"` // e.g. "venta_registrada", "stock_ajustado"
	ID        string    `json:"id,omitempty"`
	EmitidoEn time.Time `json:"emitido_en"`
}

type Notifier struct {
	rdb *redis.Client
}

func NewNotifier(rdb *redis.Client) *Notifier { return &Notifier{rdb: rdb} }

// Publicar emits a change event. Best-effort: notifications ride outside the
// atomic commit, so a publish failure is logged and swallowed — readers fall
// back to polling their snapshot.
func (n *Notifier) Publicar(ctx context.Context, canal, tipo, id string) {
	if n == nil || n.rdb == nil {
		return
	}
	data, err := json.Marshal(Evento{Tipo: tipo, ID: id, EmitidoEn: time.Now()})
	if err != nil {
		return
	}
	if err := n.rdb.Publish(ctx, canal, data).Err(); err != nil {
		log.Warn().Str("canal", canal).Str("tipo", tipo).Err(err).
			Msg("no se pudo publicar el evento de cambio")
	}
}

// Suscribir subscribes to the given channels and delivers decoded events until
// ctx ends or the returned closer is called.
func (n *Notifier) Suscribir(ctx context.Context, canales ...string) (<-chan Evento, func()) {
	eventos := make(chan Evento)
	if n == nil || n.rdb == nil {
		close(eventos)
		return eventos, func() {}
	}

	sub := n.rdb.Subscribe(ctx, canales...)
	go func() {
		defer close(eventos)
		for msg := range sub.Channel() {
			var ev Evento
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				log.Warn().Str("canal", msg.Channel).Err(err).Msg("evento de cambio inválido")
				continue
			}
			ev.Canal = msg.Channel
			select {
			case eventos <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	return eventos, func() { _ = sub.Close() }
}
