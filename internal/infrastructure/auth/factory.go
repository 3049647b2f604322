package auth

import (
	"go.uber.org/zap"

	"github.com/compras/backend/internal/infrastructure/config"
)

// NewRevocationList picks the revocation backend from configuration.
// Redis is tried first when enabled; on failure it falls back to the
// in-memory list with a warning. The in-memory list does not share state
// across instances, so revocations pushed by the identity provider are
// only honored on Redis.
func NewRevocationList(cfg config.RedisConfig, logger *zap.Logger) RevocationList {
	if !cfg.Enabled {
		logger.Info("Redis disabled, using in-memory session revocation list")
		return NewInMemoryRevocationList()
	}

	list, err := NewRedisRevocationList(cfg)
	if err != nil {
		logger.Warn("Redis unavailable, falling back to in-memory session revocation list. "+
			"Revocations from the identity provider will not be seen by this instance.",
			zap.Error(err),
		)
		return NewInMemoryRevocationList()
	}

	logger.Info("Using Redis session revocation list")
	return list
}
