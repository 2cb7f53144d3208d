package worker

// Jobs that exhaust their retries land in a per-queue "fallidos" list
// (jobs:reportes -> fallidos:jobs:reportes) so an operator can inspect
// and replay them by hand.

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const fallidosPrefix = "fallidos:"

// FallidosKey is the Redis key holding the failed jobs of one queue.
func FallidosKey(cola string) string { return fallidosPrefix + cola }

// JobFallido records a failed job together with why and when it failed.
type JobFallido struct {
	Cola      string          `json:"cola"`
	Tipo      string          `json:"tipo"`
	Payload   json.RawMessage `json:"payload"`
	Motivo    string          `json:"motivo"`
	FallidoEn string          `json:"fallido_en"` // RFC 3339, UTC
	Intentos  int             `json:"intentos"`
}

// MarcarFallido parks a job in the fallidos list of its queue. Errors here
// are logged and swallowed: losing the record is better than blocking a
// worker on a broken Redis.
func MarcarFallido(ctx context.Context, rdb *redis.Client, cola, tipo string, payload json.RawMessage, motivo string, intentos int) {
	entry := JobFallido{
		Cola:      cola,
		Tipo:      tipo,
		Payload:   payload,
		Motivo:    motivo,
		FallidoEn: time.Now().UTC().Format(time.RFC3339),
		Intentos:  intentos,
	}

	data, err := json.Marshal(entry)
	if err != nil {
		log.Error().Err(err).Str("cola", cola).Msg("fallidos: no se pudo serializar el job")
		return
	}

	if err := rdb.LPush(ctx, FallidosKey(cola), data).Err(); err != nil {
		log.Error().Err(err).Str("key", FallidosKey(cola)).Msg("fallidos: no se pudo encolar")
		return
	}

	log.Warn().
		Str("cola", cola).
		Str("tipo", tipo).
		Str("motivo", motivo).
		Int("intentos", intentos).
		Msg("job movido a fallidos")
}

// ContarFallidos reports how many jobs one queue has parked, for monitoring.
func ContarFallidos(ctx context.Context, rdb *redis.Client, cola string) (int64, error) {
	return rdb.LLen(ctx, FallidosKey(cola)).Result()
}
