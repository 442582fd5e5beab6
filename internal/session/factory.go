package session

import (
	"fmt"

	"github.com/amoylab/sessiongate/internal/common/cnst"
	"github.com/amoylab/sessiongate/internal/common/config"

	"go.uber.org/zap"
)

// NewStore creates a new store based on configuration
func NewStore(logger *zap.Logger, cfg *config.SessionConfig) (Store, error) {
	logger.Info("Initializing session store", zap.String("type", string(cfg.Type)))
	switch cfg.Type {
	case cnst.SessionStoreMemory:
		if cfg.Memory.File == "" {
			return nil, cnst.ErrMissingMemoryFile
		}
		s, err := LoadMemoryStore(cfg.Memory.File)
		if err != nil {
			return nil, err
		}
		logger.Info("Loaded memory sessions",
			zap.String("file", cfg.Memory.File),
			zap.Int("count", s.Len()),
		)
		return s, nil
	case cnst.SessionStoreRedis:
		return NewRedisStore(logger, &cfg.Redis)
	case cnst.SessionStoreDB:
		return NewDBStore(logger, &cfg.Database)
	default:
		return nil, fmt.Errorf("%w: %s", cnst.ErrUnsupportedStore, cfg.Type)
	}
}
