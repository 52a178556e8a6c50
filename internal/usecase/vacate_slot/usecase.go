package vacate_slot

import (
	"context"
	"errors"
	"fmt"

	assignmentRepo "github.com/m04kA/THS-StorageService/internal/infra/storage/assignment"
	customerRepo "github.com/m04kA/THS-StorageService/internal/infra/storage/customer"
)

// UseCase use case снятия клиента со складского места
// Операция идемпотентна: повторный vacate для неразмещенного клиента
// не ошибка и не меняет состояние
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

// Execute снимает клиента с текущего места
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("VacateSlot: customer=%d", req.CustomerID)

	if req.CustomerID <= 0 {
		return nil, fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	resp := &Response{CustomerID: req.CustomerID}

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// Проверяем существование клиента
		if _, err := uc.customerRepo.GetByID(txCtx, req.CustomerID); err != nil {
			if errors.Is(err, customerRepo.ErrCustomerNotFound) {
				uc.logger.Warn("VacateSlot: customer id=%d not found", req.CustomerID)
				return ErrCustomerNotFound
			}
			uc.logger.Error("VacateSlot: failed to get customer id=%d: %v", req.CustomerID, err)
			return fmt.Errorf("%w: failed to get customer: %v", ErrInternal, err)
		}

		// Запоминаем освобождаемое место для ответа
		current, err := uc.assignmentRepo.GetByCustomerID(txCtx, req.CustomerID)
		if err != nil && !errors.Is(err, assignmentRepo.ErrAssignmentNotFound) {
			uc.logger.Error("VacateSlot: failed to get assignment of customer id=%d: %v",
				req.CustomerID, err)
			return fmt.Errorf("%w: failed to get assignment: %v", ErrInternal, err)
		}

		vacated, err := uc.assignmentRepo.DeleteByCustomerID(txCtx, req.CustomerID)
		if err != nil {
			uc.logger.Error("VacateSlot: failed to delete assignment of customer id=%d: %v",
				req.CustomerID, err)
			return fmt.Errorf("%w: failed to delete assignment: %v", ErrInternal, err)
		}

		resp.Vacated = vacated
		if vacated && current != nil {
			code := current.Slot.LocationCode()
			resp.FreedLocationCode = &code
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	if resp.FreedLocationCode != nil {
		uc.logger.Info("VacateSlot: customer id=%d removed from slot %s",
			req.CustomerID, *resp.FreedLocationCode)
	} else {
		uc.logger.Info("VacateSlot: customer id=%d was not stored, no-op", req.CustomerID)
	}

	return resp, nil
}
