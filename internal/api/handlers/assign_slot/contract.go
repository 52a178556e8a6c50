package assign_slot

import (
	"context"

	assignSlot "github.com/m04kA/THS-StorageService/internal/usecase/assign_slot"
)

// AssignSlotUseCase интерфейс use case назначения места
type AssignSlotUseCase interface {
	Execute(ctx context.Context, req *assignSlot.Request) (*assignSlot.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
