package assign_slot

import (
	"time"

	"github.com/m04kA/THS-StorageService/internal/domain"
)

// Request модель запроса на назначение клиента на место
type Request struct {
	CustomerID int64       // ID клиента
	Slot       domain.Slot // Целевое место (отель, секция, полка)
}

// Response модель ответа с итоговым назначением
type Response struct {
	AssignmentID int64       // ID записи назначения
	CustomerID   int64       // ID клиента
	Slot         domain.Slot // Занятое место
	LocationCode string      // Канонический код места (H1-A-3)

	// PreviousLocationCode код места, с которого клиент переехал
	// nil, если клиент до этого не был размещен
	PreviousLocationCode *string

	CreatedAt time.Time // Время создания назначения
	UpdatedAt time.Time // Время последнего изменения
}
