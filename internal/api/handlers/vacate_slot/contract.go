package vacate_slot

import (
	"context"

	vacateSlot "github.com/m04kA/THS-StorageService/internal/usecase/vacate_slot"
)

// VacateSlotUseCase интерфейс use case снятия клиента с места
type VacateSlotUseCase interface {
	Execute(ctx context.Context, req *vacateSlot.Request) (*vacateSlot.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
