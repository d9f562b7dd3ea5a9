package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/shyakx/akazuba-florist/internal/repository"
)

const IdempotencyKeyHeader = "Idempotency-Key"

// IdempotencyMiddleware lets a retried checkout return the order the first
// attempt created instead of placing a duplicate.
func IdempotencyMiddleware(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		idempotencyKey := c.GetHeader(IdempotencyKeyHeader)
		if idempotencyKey == "" {
			c.Next()
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			logger.Error("Failed to read request body for idempotency", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process request"})
			c.Abort()
			return
		}

		// Restore body for handler
		c.Request.Body = io.NopCloser(bytes.NewBuffer(body))

		hash := sha256.Sum256(body)
		requestHash := hex.EncodeToString(hash[:])

		existingKey, err := repos.IdempotencyKey.GetByKey(c.Request.Context(), idempotencyKey)
		if err != nil {
			logger.Error("Failed to check idempotency key", zap.Error(err))
			c.Next()
			return
		}

		if existingKey != nil {
			// Same key, different payload is a client bug
			if existingKey.RequestHash != requestHash {
				c.JSON(http.StatusConflict, gin.H{
					"error": "idempotency key conflict: same key used with different payload",
				})
				c.Abort()
				return
			}

			c.Set("idempotency_existing_order_id", existingKey.OrderID.String())
			c.Set("idempotency_key_used", true)
		} else {
			// New key; stored by the handler after the order is created
			c.Set("idempotency_key", idempotencyKey)
			c.Set("idempotency_request_hash", requestHash)
		}

		c.Next()
	}
}

// GetIdempotencyInfo retrieves idempotency information from context
func GetIdempotencyInfo(c *gin.Context) (key string, requestHash string, existingOrderID string, isExisting bool) {
	if existingID, exists := c.Get("idempotency_existing_order_id"); exists {
		if id, ok := existingID.(string); ok {
			return "", "", id, true
		}
	}

	keyVal, _ := c.Get("idempotency_key")
	hashVal, _ := c.Get("idempotency_request_hash")

	key, _ = keyVal.(string)
	requestHash, _ = hashVal.(string)

	return key, requestHash, "", false
}
