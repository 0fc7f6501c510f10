package retention_stats

import (
	"context"

	"github.com/m04kA/SMC-PetSittingService/internal/domain"
)

type RetentionStats interface {
	Stats(ctx context.Context) (*domain.CleanupStats, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
