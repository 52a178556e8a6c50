package customers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/THS-StorageService/internal/domain"
	assignmentRepo "github.com/m04kA/THS-StorageService/internal/infra/storage/assignment"
	customerRepo "github.com/m04kA/THS-StorageService/internal/infra/storage/customer"
	"github.com/m04kA/THS-StorageService/internal/service/customers/models"
)

// Service сервис справочника клиентов
type Service struct {
	customerRepo   CustomerRepository
	assignmentRepo AssignmentRepository
	logger         Logger
}

// NewService создает новый экземпляр сервиса клиентов
func NewService(
	customerRepo CustomerRepository,
	assignmentRepo AssignmentRepository,
	logger Logger,
) *Service {
	return &Service{
		customerRepo:   customerRepo,
		assignmentRepo: assignmentRepo,
		logger:         logger,
	}
}

// Create создает нового клиента
// Перед вставкой выполняется pre-check дедупликации по имени, госномеру,
// телефону и email. Гонку двух конкурентных созданий закрывает unique
// constraint в БД: нарушение тоже возвращается как ErrDuplicateCustomer.
func (s *Service) Create(ctx context.Context, req *models.CreateCustomerRequest) (*models.CustomerResponse, error) {
	s.logger.Info("Create: creating customer name=%s, plate=%s", req.Name, req.LicensePlate)

	if err := validateCreateRequest(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	status, err := models.ToDomainStatus(req.Status)
	if err != nil {
		s.logger.Warn("Create: invalid status=%s", req.Status)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	// Pre-check дедупликации: даёт дружелюбную ошибку до записи
	matching, err := s.customerRepo.FindMatching(ctx, req.Name, req.LicensePlate, req.Phone, req.Email)
	if err != nil {
		s.logger.Error("Create: duplicate pre-check failed: %v", err)
		return nil, fmt.Errorf("%w: Create - duplicate pre-check: %v", ErrInternal, err)
	}
	if len(matching) > 0 {
		s.logger.Warn("Create: duplicate customer, matches existing id=%d", matching[0].ID)
		return nil, ErrDuplicateCustomer
	}

	customer := &domain.Customer{
		Name:           req.Name,
		LicensePlate:   req.LicensePlate,
		SummerTireSize: req.SummerTireSize,
		WinterTireSize: req.WinterTireSize,
		Phone:          req.Phone,
		Email:          req.Email,
		Status:         status,
	}

	created, err := s.customerRepo.Create(ctx, customer)
	if err != nil {
		if errors.Is(err, customerRepo.ErrDuplicate) {
			// Конкурентное создание проскочило pre-check, constraint его поймал
			s.logger.Warn("Create: duplicate caught by constraint: %v", err)
			return nil, ErrDuplicateCustomer
		}
		s.logger.Error("Create: repository error: %v", err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: successfully created customer id=%d", created.ID)
	return models.FromDomainCustomer(created), nil
}

// GetByID получает клиента по ID вместе с текущим местом на складе
func (s *Service) GetByID(ctx context.Context, id int64) (*models.CustomerResponse, error) {
	s.logger.Info("GetByID: fetching customer id=%d", id)

	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			s.logger.Warn("GetByID: customer id=%d not found", id)
			return nil, ErrCustomerNotFound
		}
		s.logger.Error("GetByID: repository error for customer id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainCustomer(customer), nil
}

// Update частично обновляет профиль клиента
// Назначение места не затрагивается - для этого есть отдельные операции
func (s *Service) Update(ctx context.Context, id int64, req *models.UpdateCustomerRequest) error {
	s.logger.Info("Update: updating customer id=%d", id)

	patch, err := req.ToDomainPatch()
	if err != nil {
		s.logger.Warn("Update: invalid patch for customer id=%d: %v", id, err)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	if patch.IsEmpty() {
		s.logger.Warn("Update: empty patch for customer id=%d", id)
		return fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	if err := s.customerRepo.Update(ctx, id, patch); err != nil {
		if errors.Is(err, customerRepo.ErrCustomerNotFound) {
			s.logger.Warn("Update: customer id=%d not found", id)
			return ErrCustomerNotFound
		}
		if errors.Is(err, customerRepo.ErrDuplicate) {
			s.logger.Warn("Update: update collides with existing customer: %v", err)
			return ErrDuplicateCustomer
		}
		s.logger.Error("Update: repository error for customer id=%d: %v", id, err)
		return fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: successfully updated customer id=%d", id)
	return nil
}

// Search ищет клиентов по свободному текстовому запросу
// Если запрос содержит код места (H1-A-3), возвращается клиент, занимающий
// это место. Иначе выполняется поиск по подстроке имени или госномера
// без учета регистра. Результат ограничен domain.SearchResultLimit.
func (s *Service) Search(ctx context.Context, req *models.SearchRequest) (*models.CustomerListResponse, error) {
	query := strings.TrimSpace(req.Query)
	s.logger.Info("Search: query=%q, unassignedOnly=%v", query, req.UnassignedOnly)

	if query == "" {
		return nil, fmt.Errorf("%w: empty search query", ErrInvalidInput)
	}

	// Маршрутизация: код места либо текстовый поиск
	if slot, ok := domain.ParseLocationCode(query); ok {
		return s.searchBySlot(ctx, slot, req.UnassignedOnly)
	}

	customers, err := s.customerRepo.SearchByText(ctx, query, domain.SearchResultLimit, req.UnassignedOnly)
	if err != nil {
		s.logger.Error("Search: repository error for query=%q: %v", query, err)
		return nil, fmt.Errorf("%w: Search - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Search: found %d customers for query=%q", len(customers), query)
	return models.FromDomainCustomerList(customers), nil
}

// searchBySlot ищет клиента, занимающего указанное место
func (s *Service) searchBySlot(ctx context.Context, slot domain.Slot, unassignedOnly bool) (*models.CustomerListResponse, error) {
	// Занимающий место клиент по определению имеет назначение
	if unassignedOnly {
		return models.FromDomainCustomerList(nil), nil
	}

	// Код вне сетки - валидный запрос с пустым результатом
	if !slot.InGrid() {
		s.logger.Info("Search: location code %s is outside the grid", slot.LocationCode())
		return models.FromDomainCustomerList(nil), nil
	}

	occupant, err := s.assignmentRepo.GetBySlot(ctx, slot)
	if err != nil {
		if errors.Is(err, assignmentRepo.ErrAssignmentNotFound) {
			s.logger.Info("Search: slot %s is empty", slot.LocationCode())
			return models.FromDomainCustomerList(nil), nil
		}
		s.logger.Error("Search: failed to get occupant of slot %s: %v", slot.LocationCode(), err)
		return nil, fmt.Errorf("%w: Search - assignment lookup: %v", ErrInternal, err)
	}

	customer, err := s.customerRepo.GetByID(ctx, occupant.CustomerID)
	if err != nil {
		s.logger.Error("Search: failed to get customer id=%d for slot %s: %v",
			occupant.CustomerID, slot.LocationCode(), err)
		return nil, fmt.Errorf("%w: Search - customer lookup: %v", ErrInternal, err)
	}

	s.logger.Info("Search: slot %s is occupied by customer id=%d", slot.LocationCode(), customer.ID)
	return models.FromDomainCustomerList([]*domain.Customer{customer}), nil
}

// validateCreateRequest валидирует запрос на создание клиента
func validateCreateRequest(req *models.CreateCustomerRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(req.Name) > domain.MaxNameLength {
		return fmt.Errorf("%w: name is too long", ErrInvalidInput)
	}

	if strings.TrimSpace(req.LicensePlate) == "" {
		return fmt.Errorf("%w: licensePlate is required", ErrInvalidInput)
	}
	if len(req.LicensePlate) > domain.MaxLicensePlateLength {
		return fmt.Errorf("%w: licensePlate is too long", ErrInvalidInput)
	}

	if len(req.Phone) > domain.MaxPhoneLength {
		return fmt.Errorf("%w: phone is too long", ErrInvalidInput)
	}
	if len(req.Email) > domain.MaxEmailLength {
		return fmt.Errorf("%w: email is too long", ErrInvalidInput)
	}

	if req.SummerTireSize != nil && len(*req.SummerTireSize) > domain.MaxTireSizeLength {
		return fmt.Errorf("%w: summerTireSize is too long", ErrInvalidInput)
	}
	if req.WinterTireSize != nil && len(*req.WinterTireSize) > domain.MaxTireSizeLength {
		return fmt.Errorf("%w: winterTireSize is too long", ErrInvalidInput)
	}

	return nil
}
