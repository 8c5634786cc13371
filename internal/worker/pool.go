package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Diegosuar/control-gastos-alpha-style/internal/infra"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const QueueAlertasStock = "jobs:alertas_stock"

// Job is the generic envelope for all async tasks.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// AlertaStockPayload describes a product whose stock fell to the critical
// level after a sale committed.
type AlertaStockPayload struct {
	ProductoID string `json:"producto_id"`
	Nombre     string `json:"nombre"`
	Stock      int    `json:"stock"`
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher { return &Dispatcher{rdb: rdb} }

// EnqueueAlertaStock pushes a low-stock alert job. Best-effort: alerts ride
// outside the sale's atomic commit, so failures are the caller's to ignore.
func (d *Dispatcher) EnqueueAlertaStock(ctx context.Context, payload AlertaStockPayload) error {
	if d == nil || d.rdb == nil {
		return nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	encoded, err := json.Marshal(Job{Type: "alerta_stock", Payload: data})
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, QueueAlertasStock, encoded).Err()
}

// AlertaWorker mails low-stock warnings to the shop owner.
type AlertaWorker struct {
	mailer       *infra.Mailer
	destinatario string
}

func NewAlertaWorker(mailer *infra.Mailer, destinatario string) *AlertaWorker {
	return &AlertaWorker{mailer: mailer, destinatario: destinatario}
}

func (w *AlertaWorker) Procesar(payload AlertaStockPayload) {
	log.Warn().
		Str("producto_id", payload.ProductoID).
		Str("nombre", payload.Nombre).
		Int("stock", payload.Stock).
		Msg("stock en nivel crítico")

	if w.mailer == nil || w.destinatario == "" {
		return
	}
	if err := w.mailer.SendAlertaStock(w.destinatario, payload.Nombre, payload.Stock); err != nil {
		log.Error().Str("nombre", payload.Nombre).Err(err).Msg("no se pudo enviar la alerta de stock")
	}
}

// StartWorkerPool launches numWorkers goroutines consuming the alert queue.
// Each goroutine blocks on BRPOP — zero CPU when idle.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, w *AlertaWorker, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, w, i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, w *AlertaWorker, id int) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop — waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, QueueAlertasStock).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			processJob(w, result[1])
		}
	}
}

func processJob(w *AlertaWorker, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Err(err).Msg("failed to unmarshal job")
		return
	}
	switch job.Type {
	case "alerta_stock":
		var payload AlertaStockPayload
		if err := json.Unmarshal(job.Payload, &payload); err != nil {
			log.Error().Err(err).Msg("failed to unmarshal alerta_stock payload")
			return
		}
		w.Procesar(payload)
	default:
		log.Warn().Str("type", job.Type).Msg("unknown job type")
	}
}
