package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health pings Postgres and Redis and reports per-dependency state.
// It exposes only up/down flags, never connection details.
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		estadoDB := "ok"
		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(ctx) != nil {
			estadoDB = "caido"
		}

		estadoRedis := "ok"
		if rdb.Ping(ctx).Err() != nil {
			estadoRedis = "caido"
		}

		status := http.StatusOK
		estado := "ok"
		if estadoDB != "ok" || estadoRedis != "ok" {
			status = http.StatusServiceUnavailable
			estado = "degradado"
		}

		c.JSON(status, gin.H{
			"estado":   estado,
			"postgres": estadoDB,
			"redis":    estadoRedis,
		})
	}
}
