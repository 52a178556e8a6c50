package assign_slot

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/THS-StorageService/internal/domain"
	assignmentRepo "github.com/m04kA/THS-StorageService/internal/infra/storage/assignment"
	customerRepo "github.com/m04kA/THS-StorageService/internal/infra/storage/customer"
)

// UseCase use case назначения клиента на складское место
//
// Инварианты, которые обеспечивает Execute:
//   - на одном месте может находиться не более одного клиента
//   - у клиента может быть не более одного места
//   - перенос клиента обновляет существующую запись, а не создает вторую
type UseCase struct {
	customerRepo   CustomerRepository
	assignmentRepo AssignmentRepository
	txManager      TransactionManager
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	customerRepo CustomerRepository,
	assignmentRepo AssignmentRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		customerRepo:   customerRepo,
		assignmentRepo: assignmentRepo,
		txManager:      txManager,
		logger:         logger,
	}
}

// Execute выполняет назначение клиента на место
// Проверка занятости и запись выполняются в одной сериализуемой транзакции
// с блокировкой строки места (FOR UPDATE). Гонку, проскочившую проверку,
// останавливает unique constraint - обе ситуации возвращаются как
// ErrSlotOccupied, без частичной записи.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("AssignSlot: customer=%d, slot=%s", req.CustomerID, req.Slot.LocationCode())

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("AssignSlot: validation failed: %v", err)
		return nil, err
	}

	var result *domain.StorageAssignment
	var previous *domain.Slot

	// 2. Выполняем проверку занятости и запись в сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Проверяем существование клиента
		if _, err := uc.customerRepo.GetByID(txCtx, req.CustomerID); err != nil {
			if errors.Is(err, customerRepo.ErrCustomerNotFound) {
				uc.logger.Warn("AssignSlot: customer id=%d not found", req.CustomerID)
				return ErrCustomerNotFound
			}
			uc.logger.Error("AssignSlot: failed to get customer id=%d: %v", req.CustomerID, err)
			return fmt.Errorf("%w: failed to get customer: %v", ErrInternal, err)
		}

		// 2.2. Проверяем занятость места с блокировкой строки (FOR UPDATE)
		occupant, err := uc.assignmentRepo.GetBySlot(txCtx, req.Slot)
		if err != nil && !errors.Is(err, assignmentRepo.ErrAssignmentNotFound) {
			uc.logger.Error("AssignSlot: failed to check slot %s: %v", req.Slot.LocationCode(), err)
			return fmt.Errorf("%w: failed to check slot occupancy: %v", ErrInternal, err)
		}

		if occupant != nil {
			// Место занято другим клиентом - отказ без записи
			if occupant.CustomerID != req.CustomerID {
				uc.logger.Warn("AssignSlot: slot %s is occupied by customer id=%d",
					req.Slot.LocationCode(), occupant.CustomerID)
				return ErrSlotOccupied
			}

			// Клиент уже на этом месте - идемпотентный успех
			uc.logger.Info("AssignSlot: customer id=%d already occupies slot %s",
				req.CustomerID, req.Slot.LocationCode())
			result = occupant
			return nil
		}

		// 2.3. Смотрим, есть ли у клиента текущее место (move-семантика)
		current, err := uc.assignmentRepo.GetByCustomerID(txCtx, req.CustomerID)
		if err != nil && !errors.Is(err, assignmentRepo.ErrAssignmentNotFound) {
			uc.logger.Error("AssignSlot: failed to get current assignment of customer id=%d: %v",
				req.CustomerID, err)
			return fmt.Errorf("%w: failed to get current assignment: %v", ErrInternal, err)
		}

		if current != nil {
			// Перенос: обновляем существующую запись, а не создаем вторую
			prevSlot := current.Slot
			previous = &prevSlot

			if err := uc.assignmentRepo.UpdateSlot(txCtx, req.CustomerID, req.Slot); err != nil {
				return uc.mapWriteError(err, req)
			}

			moved, err := uc.assignmentRepo.GetByCustomerID(txCtx, req.CustomerID)
			if err != nil {
				uc.logger.Error("AssignSlot: failed to reload assignment of customer id=%d: %v",
					req.CustomerID, err)
				return fmt.Errorf("%w: failed to reload assignment: %v", ErrInternal, err)
			}

			uc.logger.Info("AssignSlot: moved customer id=%d from %s to %s",
				req.CustomerID, prevSlot.LocationCode(), req.Slot.LocationCode())
			result = moved
			return nil
		}

		// 2.4. Первое размещение клиента
		created, err := uc.assignmentRepo.Create(txCtx, &domain.StorageAssignment{
			CustomerID: req.CustomerID,
			Slot:       req.Slot,
		})
		if err != nil {
			return uc.mapWriteError(err, req)
		}

		uc.logger.Info("AssignSlot: assigned customer id=%d to slot %s",
			req.CustomerID, req.Slot.LocationCode())
		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	resp := &Response{
		AssignmentID: result.ID,
		CustomerID:   result.CustomerID,
		Slot:         result.Slot,
		LocationCode: result.Slot.LocationCode(),
		CreatedAt:    result.CreatedAt,
		UpdatedAt:    result.UpdatedAt,
	}
	if previous != nil {
		code := previous.LocationCode()
		resp.PreviousLocationCode = &code
	}

	return resp, nil
}

// mapWriteError конвертирует ошибку записи репозитория в ошибку usecase
// Нарушение constraint конкурентной записью эквивалентно проигранной
// проверке занятости
func (uc *UseCase) mapWriteError(err error, req *Request) error {
	switch {
	case errors.Is(err, assignmentRepo.ErrSlotTaken):
		uc.logger.Warn("AssignSlot: slot %s taken by concurrent write", req.Slot.LocationCode())
		return ErrSlotOccupied

	case errors.Is(err, assignmentRepo.ErrCustomerAlreadyAssigned):
		// Конкурентное назначение того же клиента - клиент уже размещен,
		// текущая попытка проигрывает как конфликт
		uc.logger.Warn("AssignSlot: customer id=%d assigned by concurrent write", req.CustomerID)
		return ErrSlotOccupied

	default:
		uc.logger.Error("AssignSlot: write failed for customer id=%d, slot=%s: %v",
			req.CustomerID, req.Slot.LocationCode(), err)
		return fmt.Errorf("%w: failed to write assignment: %v", ErrInternal, err)
	}
}
