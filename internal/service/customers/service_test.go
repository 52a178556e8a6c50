package customers

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/THS-StorageService/internal/domain"
	assignmentRepo "github.com/m04kA/THS-StorageService/internal/infra/storage/assignment"
	customerRepo "github.com/m04kA/THS-StorageService/internal/infra/storage/customer"
	"github.com/m04kA/THS-StorageService/internal/service/customers/models"
	"github.com/m04kA/THS-StorageService/pkg/ptr"
)

// fakeCustomerRepo in-memory репозиторий клиентов, повторяет семантику
// поиска и дедупликации реального хранилища
type fakeCustomerRepo struct {
	customers map[int64]*domain.Customer
	nextID    int64
}

func newFakeCustomerRepo(customers ...*domain.Customer) *fakeCustomerRepo {
	repo := &fakeCustomerRepo{
		customers: make(map[int64]*domain.Customer),
		nextID:    1,
	}
	for _, c := range customers {
		repo.customers[c.ID] = c
		if c.ID >= repo.nextID {
			repo.nextID = c.ID + 1
		}
	}
	return repo
}

func (f *fakeCustomerRepo) Create(_ context.Context, c *domain.Customer) (*domain.Customer, error) {
	for _, existing := range f.customers {
		if existing.LicensePlate == c.LicensePlate {
			return nil, customerRepo.ErrDuplicate
		}
	}

	created := *c
	created.ID = f.nextID
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	f.nextID++

	f.customers[created.ID] = &created
	return &created, nil
}

func (f *fakeCustomerRepo) GetByID(_ context.Context, id int64) (*domain.Customer, error) {
	c, ok := f.customers[id]
	if !ok {
		return nil, customerRepo.ErrCustomerNotFound
	}
	return c, nil
}

func (f *fakeCustomerRepo) Update(_ context.Context, id int64, patch domain.CustomerPatch) error {
	c, ok := f.customers[id]
	if !ok {
		return customerRepo.ErrCustomerNotFound
	}
	if patch.Name != nil {
		c.Name = *patch.Name
	}
	if patch.LicensePlate != nil {
		c.LicensePlate = *patch.LicensePlate
	}
	if patch.Phone != nil {
		c.Phone = *patch.Phone
	}
	if patch.Status != nil {
		c.Status = *patch.Status
	}
	c.UpdatedAt = time.Now()
	return nil
}

func (f *fakeCustomerRepo) SearchByText(_ context.Context, text string, limit uint64, unassignedOnly bool) ([]*domain.Customer, error) {
	needle := strings.ToLower(text)

	result := make([]*domain.Customer, 0)
	for _, c := range f.customers {
		if uint64(len(result)) >= limit {
			break
		}
		if unassignedOnly && c.Assignment != nil {
			continue
		}
		if strings.Contains(strings.ToLower(c.Name), needle) ||
			strings.Contains(strings.ToLower(c.LicensePlate), needle) {
			result = append(result, c)
		}
	}
	return result, nil
}

func (f *fakeCustomerRepo) FindMatching(_ context.Context, name, licensePlate, phone, email string) ([]*domain.Customer, error) {
	result := make([]*domain.Customer, 0)
	for _, c := range f.customers {
		switch {
		case c.Name == name,
			c.LicensePlate == licensePlate,
			phone != "" && c.Phone == phone,
			email != "" && c.Email == email:
			result = append(result, c)
		}
	}
	return result, nil
}

// fakeAssignmentRepo возвращает занятость мест из статической карты
type fakeAssignmentRepo struct {
	bySlot map[domain.Slot]*domain.StorageAssignment
}

func newFakeAssignmentRepo(assignments ...*domain.StorageAssignment) *fakeAssignmentRepo {
	repo := &fakeAssignmentRepo{bySlot: make(map[domain.Slot]*domain.StorageAssignment)}
	for _, a := range assignments {
		repo.bySlot[a.Slot] = a
	}
	return repo
}

func (f *fakeAssignmentRepo) GetBySlot(_ context.Context, slot domain.Slot) (*domain.StorageAssignment, error) {
	a, ok := f.bySlot[slot]
	if !ok {
		return nil, assignmentRepo.ErrAssignmentNotFound
	}
	return a, nil
}

// nopLogger заглушка логгера
type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService(customers *fakeCustomerRepo, assignments *fakeAssignmentRepo) *Service {
	return NewService(customers, assignments, nopLogger{})
}

func TestCreate(t *testing.T) {
	svc := newTestService(newFakeCustomerRepo(), newFakeAssignmentRepo())

	resp, err := svc.Create(context.Background(), &models.CreateCustomerRequest{
		Name:         "Иванов Иван",
		LicensePlate: "А123ВС77",
		Phone:        "+79990001122",
		Status:       "active",
	})

	require.NoError(t, err)
	assert.NotZero(t, resp.ID)
	assert.Equal(t, "Иванов Иван", resp.Name)
	assert.Equal(t, "active", resp.Status)
	assert.Nil(t, resp.StorageSlot)
}

func TestCreate_DuplicateByPlate(t *testing.T) {
	repo := newFakeCustomerRepo(&domain.Customer{
		ID:           1,
		Name:         "Иванов Иван",
		LicensePlate: "А123ВС77",
		Status:       domain.StatusActive,
	})
	svc := newTestService(repo, newFakeAssignmentRepo())

	_, err := svc.Create(context.Background(), &models.CreateCustomerRequest{
		Name:         "Другой Клиент",
		LicensePlate: "А123ВС77",
		Status:       "active",
	})

	require.ErrorIs(t, err, ErrDuplicateCustomer)
}

func TestCreate_DuplicateByName(t *testing.T) {
	repo := newFakeCustomerRepo(&domain.Customer{
		ID:           1,
		Name:         "Иванов Иван",
		LicensePlate: "А123ВС77",
		Phone:        "+79990001122",
		Email:        "ivanov@example.com",
		Status:       domain.StatusActive,
	})
	svc := newTestService(repo, newFakeAssignmentRepo())

	// Совпадение только по имени, остальные поля другие
	_, err := svc.Create(context.Background(), &models.CreateCustomerRequest{
		Name:         "Иванов Иван",
		LicensePlate: "В456ЕК99",
		Phone:        "+79990003344",
		Email:        "other@example.com",
		Status:       "active",
	})

	require.ErrorIs(t, err, ErrDuplicateCustomer)
}

func TestCreate_DuplicateByPhone(t *testing.T) {
	repo := newFakeCustomerRepo(&domain.Customer{
		ID:           1,
		Name:         "Иванов Иван",
		LicensePlate: "А123ВС77",
		Phone:        "+79990001122",
		Status:       domain.StatusActive,
	})
	svc := newTestService(repo, newFakeAssignmentRepo())

	_, err := svc.Create(context.Background(), &models.CreateCustomerRequest{
		Name:         "Другой Клиент",
		LicensePlate: "В456ЕК99",
		Phone:        "+79990001122",
		Status:       "active",
	})

	require.ErrorIs(t, err, ErrDuplicateCustomer)
}

func TestCreate_EmptyContactsAreNotDuplicates(t *testing.T) {
	// Два клиента без телефона и email не считаются дубликатами
	repo := newFakeCustomerRepo(&domain.Customer{
		ID:           1,
		Name:         "Иванов Иван",
		LicensePlate: "А123ВС77",
		Status:       domain.StatusActive,
	})
	svc := newTestService(repo, newFakeAssignmentRepo())

	resp, err := svc.Create(context.Background(), &models.CreateCustomerRequest{
		Name:         "Петров Петр",
		LicensePlate: "В456ЕК99",
		Status:       "active",
	})

	require.NoError(t, err)
	assert.NotZero(t, resp.ID)
}

func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  *models.CreateCustomerRequest
	}{
		{
			name: "empty name",
			req:  &models.CreateCustomerRequest{LicensePlate: "А123ВС77", Status: "active"},
		},
		{
			name: "empty license plate",
			req:  &models.CreateCustomerRequest{Name: "Иванов", Status: "active"},
		},
		{
			name: "unknown status",
			req:  &models.CreateCustomerRequest{Name: "Иванов", LicensePlate: "А123ВС77", Status: "archived"},
		},
		{
			name: "name too long",
			req: &models.CreateCustomerRequest{
				Name:         strings.Repeat("а", domain.MaxNameLength+1),
				LicensePlate: "А123ВС77",
				Status:       "active",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(newFakeCustomerRepo(), newFakeAssignmentRepo())

			_, err := svc.Create(context.Background(), tt.req)
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestGetByID_NotFound(t *testing.T) {
	svc := newTestService(newFakeCustomerRepo(), newFakeAssignmentRepo())

	_, err := svc.GetByID(context.Background(), 999)

	require.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestUpdate_EmptyPatch(t *testing.T) {
	repo := newFakeCustomerRepo(&domain.Customer{
		ID:           1,
		Name:         "Иванов",
		LicensePlate: "А123ВС77",
		Status:       domain.StatusActive,
	})
	svc := newTestService(repo, newFakeAssignmentRepo())

	err := svc.Update(context.Background(), 1, &models.UpdateCustomerRequest{})

	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdate(t *testing.T) {
	repo := newFakeCustomerRepo(&domain.Customer{
		ID:           1,
		Name:         "Иванов",
		LicensePlate: "А123ВС77",
		Status:       domain.StatusActive,
	})
	svc := newTestService(repo, newFakeAssignmentRepo())

	err := svc.Update(context.Background(), 1, &models.UpdateCustomerRequest{
		Name:   ptr.Ptr("Иванов Иван Иванович"),
		Status: ptr.Ptr("interim"),
	})
	require.NoError(t, err)

	updated, err := svc.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Иванов Иван Иванович", updated.Name)
	assert.Equal(t, "interim", updated.Status)
	// Незатронутые поля сохраняются
	assert.Equal(t, "А123ВС77", updated.LicensePlate)
}

func TestSearch_ByText(t *testing.T) {
	repo := newFakeCustomerRepo(
		&domain.Customer{ID: 1, Name: "Иванов Иван", LicensePlate: "А123ВС77", Status: domain.StatusActive},
		&domain.Customer{ID: 2, Name: "Петров Петр", LicensePlate: "В456ЕК99", Status: domain.StatusActive},
	)
	svc := newTestService(repo, newFakeAssignmentRepo())

	resp, err := svc.Search(context.Background(), &models.SearchRequest{Query: "иванов"})

	require.NoError(t, err)
	require.Len(t, resp.Customers, 1)
	assert.Equal(t, int64(1), resp.Customers[0].ID)
}

func TestSearch_ByLicensePlate(t *testing.T) {
	repo := newFakeCustomerRepo(
		&domain.Customer{ID: 1, Name: "Иванов Иван", LicensePlate: "А123ВС77", Status: domain.StatusActive},
	)
	svc := newTestService(repo, newFakeAssignmentRepo())

	resp, err := svc.Search(context.Background(), &models.SearchRequest{Query: "123вс"})

	require.NoError(t, err)
	require.Len(t, resp.Customers, 1)
	assert.Equal(t, "А123ВС77", resp.Customers[0].LicensePlate)
}

func TestSearch_ByLocationCode(t *testing.T) {
	slot := domain.Slot{Hotel: 1, Section: "A", Shelf: 3}
	repo := newFakeCustomerRepo(
		&domain.Customer{
			ID:           1,
			Name:         "Иванов Иван",
			LicensePlate: "А123ВС77",
			Status:       domain.StatusActive,
			Assignment:   &domain.StorageAssignment{ID: 5, CustomerID: 1, Slot: slot},
		},
	)
	assignments := newFakeAssignmentRepo(&domain.StorageAssignment{ID: 5, CustomerID: 1, Slot: slot})
	svc := newTestService(repo, assignments)

	// Запрос с кодом места идет через карту склада, а не текстовый поиск
	resp, err := svc.Search(context.Background(), &models.SearchRequest{Query: "h1-a-3"})

	require.NoError(t, err)
	require.Len(t, resp.Customers, 1)
	assert.Equal(t, int64(1), resp.Customers[0].ID)
	require.NotNil(t, resp.Customers[0].StorageSlot)
	assert.Equal(t, "H1-A-3", resp.Customers[0].StorageSlot.LocationCode)
}

func TestSearch_EmptySlot(t *testing.T) {
	svc := newTestService(newFakeCustomerRepo(), newFakeAssignmentRepo())

	resp, err := svc.Search(context.Background(), &models.SearchRequest{Query: "H2-B-4"})

	require.NoError(t, err)
	assert.Empty(t, resp.Customers)
}

func TestSearch_LocationCodeOutsideGrid(t *testing.T) {
	// Код вне сетки - валидный запрос с пустым результатом, не ошибка
	svc := newTestService(newFakeCustomerRepo(), newFakeAssignmentRepo())

	resp, err := svc.Search(context.Background(), &models.SearchRequest{Query: "H9-A-1"})

	require.NoError(t, err)
	assert.Empty(t, resp.Customers)
}

func TestSearch_UnassignedOnly(t *testing.T) {
	slot := domain.Slot{Hotel: 1, Section: "A", Shelf: 1}
	repo := newFakeCustomerRepo(
		&domain.Customer{
			ID: 1, Name: "Иванов Иван", LicensePlate: "А123ВС77", Status: domain.StatusActive,
			Assignment: &domain.StorageAssignment{ID: 5, CustomerID: 1, Slot: slot},
		},
		&domain.Customer{ID: 2, Name: "Иванов Петр", LicensePlate: "В456ЕК99", Status: domain.StatusActive},
	)
	svc := newTestService(repo, newFakeAssignmentRepo())

	resp, err := svc.Search(context.Background(), &models.SearchRequest{
		Query:          "Иванов",
		UnassignedOnly: true,
	})

	require.NoError(t, err)
	require.Len(t, resp.Customers, 1)
	assert.Equal(t, int64(2), resp.Customers[0].ID)
}

func TestSearch_UnassignedOnlyWithLocationCode(t *testing.T) {
	// Клиент на месте по определению размещен - фильтр делает результат пустым
	slot := domain.Slot{Hotel: 1, Section: "A", Shelf: 1}
	assignments := newFakeAssignmentRepo(&domain.StorageAssignment{ID: 5, CustomerID: 1, Slot: slot})
	svc := newTestService(newFakeCustomerRepo(), assignments)

	resp, err := svc.Search(context.Background(), &models.SearchRequest{
		Query:          "H1-A-1",
		UnassignedOnly: true,
	})

	require.NoError(t, err)
	assert.Empty(t, resp.Customers)
}

func TestSearch_EmptyQuery(t *testing.T) {
	svc := newTestService(newFakeCustomerRepo(), newFakeAssignmentRepo())

	_, err := svc.Search(context.Background(), &models.SearchRequest{Query: "   "})

	require.ErrorIs(t, err, ErrInvalidInput)
}
