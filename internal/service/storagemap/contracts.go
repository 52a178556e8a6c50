package storagemap

import (
	"context"

	"github.com/m04kA/THS-StorageService/internal/domain"
)

// AssignmentRepository интерфейс репозитория назначений мест
type AssignmentRepository interface {
	ListOccupied(ctx context.Context) ([]domain.OccupiedSlot, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
