package get_storage_map

import (
	"context"

	"github.com/m04kA/THS-StorageService/internal/service/storagemap/models"
)

// StorageMapService интерфейс сервиса карты склада
type StorageMapService interface {
	Snapshot(ctx context.Context) (*models.MapResponse, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
