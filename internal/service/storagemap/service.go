package storagemap

import (
	"context"
	"fmt"

	"github.com/m04kA/THS-StorageService/internal/domain"
	"github.com/m04kA/THS-StorageService/internal/service/storagemap/models"
)

// Service сервис снимка сетки склада
type Service struct {
	assignmentRepo AssignmentRepository
	logger         Logger
}

// NewService создает новый экземпляр сервиса сетки склада
func NewService(assignmentRepo AssignmentRepository, logger Logger) *Service {
	return &Service{
		assignmentRepo: assignmentRepo,
		logger:         logger,
	}
}

// Snapshot строит полный снимок сетки склада с занимающими места клиентами
// Индекс занятости пересобирается из свежего списка назначений на каждый
// вызов, чтобы UI никогда не рисовал устаревшую занятость
func (s *Service) Snapshot(ctx context.Context) (*models.MapResponse, error) {
	occupied, err := s.assignmentRepo.ListOccupied(ctx)
	if err != nil {
		s.logger.Error("Snapshot: failed to list occupied slots: %v", err)
		return nil, fmt.Errorf("%w: Snapshot - repository error: %v", ErrInternal, err)
	}

	idx := domain.NewOccupancyIndex(occupied)

	// Дубликаты на одном месте невозможны при живых constraints,
	// но если данные их содержат - это сигнал о проблеме целостности
	for _, slot := range idx.Conflicts() {
		s.logger.Warn("Snapshot: data integrity: slot %s has multiple assignments", slot.LocationCode())
	}

	s.logger.Info("Snapshot: %d/%d slots occupied", idx.OccupiedCount(), domain.GridSize)
	return models.FromOccupancyIndex(idx), nil
}
