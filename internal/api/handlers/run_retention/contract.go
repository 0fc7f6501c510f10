package run_retention

import (
	"context"

	retentionCleanup "github.com/m04kA/SMC-PetSittingService/internal/usecase/retention_cleanup"
)

type RetentionUseCase interface {
	Execute(ctx context.Context) (*retentionCleanup.Result, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}
