package middleware

import (
	"log/slog"
	"time"

	"github.com/aliwaqas-commits/QuickScribe-AI/internal/models"
	"github.com/aliwaqas-commits/QuickScribe-AI/internal/storage"
	"github.com/gin-gonic/gin"
)

const (
	requestLogBatchSize = 100
	requestLogFlushTick = 5 * time.Second
)

// RequestLogger persists request records to Postgres asynchronously. Records
// are batched and flushed on size or on a timer; when the buffer is full the
// record is dropped rather than blocking the request.
type RequestLogger struct {
	db   *storage.Postgres
	logs chan models.RequestLog
	log  *slog.Logger
}

func NewRequestLogger(db *storage.Postgres, bufferSize int, log *slog.Logger) *RequestLogger {
	rl := &RequestLogger{
		db:   db,
		logs: make(chan models.RequestLog, bufferSize),
		log:  log,
	}

	go rl.run()

	return rl
}

func (rl *RequestLogger) run() {
	batch := make([]models.RequestLog, 0, requestLogBatchSize)
	ticker := time.NewTicker(requestLogFlushTick)
	defer ticker.Stop()

	for {
		select {
		case entry := <-rl.logs:
			batch = append(batch, entry)
			if len(batch) >= requestLogBatchSize {
				rl.insertBatch(batch)
				batch = make([]models.RequestLog, 0, requestLogBatchSize)
			}
		case <-ticker.C:
			if len(batch) > 0 {
				rl.insertBatch(batch)
				batch = make([]models.RequestLog, 0, requestLogBatchSize)
			}
		}
	}
}

func (rl *RequestLogger) insertBatch(batch []models.RequestLog) {
	if err := rl.db.DB.Create(&batch).Error; err != nil {
		rl.log.Error("Failed to insert request logs",
			"error", err,
			"batchSize", len(batch))
	}
}

func (rl *RequestLogger) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		entry := models.RequestLog{
			Timestamp:      start,
			RequestID:      c.GetString("request_id"),
			Method:         c.Request.Method,
			Path:           c.Request.URL.Path,
			StatusCode:     c.Writer.Status(),
			ResponseTimeMs: int(time.Since(start).Milliseconds()),
			ClientKey:      c.GetString("client_key"),
			IPAddress:      c.ClientIP(),
			UserAgent:      c.Request.UserAgent(),
		}

		select {
		case rl.logs <- entry:
		default:
			rl.log.Warn("Request log buffer full, dropping entry",
				"requestID", entry.RequestID)
		}
	}
}
