package assign_slot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/THS-StorageService/internal/domain"
	assignmentRepo "github.com/m04kA/THS-StorageService/internal/infra/storage/assignment"
	customerRepo "github.com/m04kA/THS-StorageService/internal/infra/storage/customer"
)

// fakeCustomerRepo in-memory репозиторий клиентов для тестов
type fakeCustomerRepo struct {
	customers map[int64]*domain.Customer
}

func newFakeCustomerRepo(ids ...int64) *fakeCustomerRepo {
	repo := &fakeCustomerRepo{customers: make(map[int64]*domain.Customer)}
	for _, id := range ids {
		repo.customers[id] = &domain.Customer{ID: id, Name: "Клиент", Status: domain.StatusActive}
	}
	return repo
}

func (f *fakeCustomerRepo) GetByID(_ context.Context, id int64) (*domain.Customer, error) {
	c, ok := f.customers[id]
	if !ok {
		return nil, customerRepo.ErrCustomerNotFound
	}
	return c, nil
}

// fakeAssignmentRepo in-memory репозиторий назначений, повторяет семантику
// unique constraint'ов реального хранилища
type fakeAssignmentRepo struct {
	byCustomer map[int64]*domain.StorageAssignment
	nextID     int64
}

func newFakeAssignmentRepo() *fakeAssignmentRepo {
	return &fakeAssignmentRepo{
		byCustomer: make(map[int64]*domain.StorageAssignment),
		nextID:     1,
	}
}

func (f *fakeAssignmentRepo) GetBySlot(_ context.Context, slot domain.Slot) (*domain.StorageAssignment, error) {
	for _, a := range f.byCustomer {
		if a.Slot == slot {
			return a, nil
		}
	}
	return nil, assignmentRepo.ErrAssignmentNotFound
}

func (f *fakeAssignmentRepo) GetByCustomerID(_ context.Context, customerID int64) (*domain.StorageAssignment, error) {
	a, ok := f.byCustomer[customerID]
	if !ok {
		return nil, assignmentRepo.ErrAssignmentNotFound
	}
	return a, nil
}

func (f *fakeAssignmentRepo) Create(_ context.Context, a *domain.StorageAssignment) (*domain.StorageAssignment, error) {
	for _, existing := range f.byCustomer {
		if existing.Slot == a.Slot {
			return nil, assignmentRepo.ErrSlotTaken
		}
	}
	if _, ok := f.byCustomer[a.CustomerID]; ok {
		return nil, assignmentRepo.ErrCustomerAlreadyAssigned
	}

	created := *a
	created.ID = f.nextID
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	f.nextID++

	f.byCustomer[a.CustomerID] = &created
	return &created, nil
}

func (f *fakeAssignmentRepo) UpdateSlot(_ context.Context, customerID int64, slot domain.Slot) error {
	for id, existing := range f.byCustomer {
		if existing.Slot == slot && id != customerID {
			return assignmentRepo.ErrSlotTaken
		}
	}

	a, ok := f.byCustomer[customerID]
	if !ok {
		return assignmentRepo.ErrAssignmentNotFound
	}
	a.Slot = slot
	a.UpdatedAt = time.Now()
	return nil
}

func (f *fakeAssignmentRepo) DeleteByCustomerID(_ context.Context, customerID int64) (bool, error) {
	if _, ok := f.byCustomer[customerID]; !ok {
		return false, nil
	}
	delete(f.byCustomer, customerID)
	return true, nil
}

// fakeTxManager выполняет функцию без реальной транзакции
type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// nopLogger заглушка логгера
type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestUseCase(customers *fakeCustomerRepo, assignments *fakeAssignmentRepo) *UseCase {
	return NewUseCase(customers, assignments, fakeTxManager{}, nopLogger{})
}

func TestExecute_FirstAssignment(t *testing.T) {
	assignments := newFakeAssignmentRepo()
	uc := newTestUseCase(newFakeCustomerRepo(1), assignments)

	slot := domain.Slot{Hotel: 1, Section: "A", Shelf: 1}
	resp, err := uc.Execute(context.Background(), &Request{CustomerID: 1, Slot: slot})

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.CustomerID)
	assert.Equal(t, slot, resp.Slot)
	assert.Equal(t, "H1-A-1", resp.LocationCode)
	assert.Nil(t, resp.PreviousLocationCode)

	stored, err := assignments.GetByCustomerID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, slot, stored.Slot)
}

func TestExecute_SlotOccupiedByOtherCustomer(t *testing.T) {
	assignments := newFakeAssignmentRepo()
	uc := newTestUseCase(newFakeCustomerRepo(1, 2), assignments)

	slot := domain.Slot{Hotel: 1, Section: "A", Shelf: 1}

	_, err := uc.Execute(context.Background(), &Request{CustomerID: 1, Slot: slot})
	require.NoError(t, err)

	// Второй клиент на то же место - отказ без записи
	_, err = uc.Execute(context.Background(), &Request{CustomerID: 2, Slot: slot})
	require.ErrorIs(t, err, ErrSlotOccupied)

	_, err = assignments.GetByCustomerID(context.Background(), 2)
	assert.ErrorIs(t, err, assignmentRepo.ErrAssignmentNotFound)
}

func TestExecute_MoveUpdatesExistingAssignment(t *testing.T) {
	assignments := newFakeAssignmentRepo()
	uc := newTestUseCase(newFakeCustomerRepo(1), assignments)

	first := domain.Slot{Hotel: 1, Section: "A", Shelf: 1}
	second := domain.Slot{Hotel: 1, Section: "A", Shelf: 2}

	created, err := uc.Execute(context.Background(), &Request{CustomerID: 1, Slot: first})
	require.NoError(t, err)

	moved, err := uc.Execute(context.Background(), &Request{CustomerID: 1, Slot: second})
	require.NoError(t, err)

	// Перенос обновляет существующую запись, а не создает вторую
	assert.Equal(t, created.AssignmentID, moved.AssignmentID)
	assert.Equal(t, second, moved.Slot)
	require.NotNil(t, moved.PreviousLocationCode)
	assert.Equal(t, "H1-A-1", *moved.PreviousLocationCode)

	// Старое место освобождено
	_, err = assignments.GetBySlot(context.Background(), first)
	assert.ErrorIs(t, err, assignmentRepo.ErrAssignmentNotFound)
}

func TestExecute_SameSlotIsIdempotent(t *testing.T) {
	assignments := newFakeAssignmentRepo()
	uc := newTestUseCase(newFakeCustomerRepo(1), assignments)

	slot := domain.Slot{Hotel: 2, Section: "B", Shelf: 3}

	first, err := uc.Execute(context.Background(), &Request{CustomerID: 1, Slot: slot})
	require.NoError(t, err)

	second, err := uc.Execute(context.Background(), &Request{CustomerID: 1, Slot: slot})
	require.NoError(t, err)

	assert.Equal(t, first.AssignmentID, second.AssignmentID)
	assert.Equal(t, slot, second.Slot)
	assert.Nil(t, second.PreviousLocationCode)
}

func TestExecute_CustomerNotFound(t *testing.T) {
	uc := newTestUseCase(newFakeCustomerRepo(), newFakeAssignmentRepo())

	_, err := uc.Execute(context.Background(), &Request{
		CustomerID: 999,
		Slot:       domain.Slot{Hotel: 1, Section: "A", Shelf: 1},
	})

	require.ErrorIs(t, err, ErrCustomerNotFound)
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{
			name:    "non-positive customer id",
			req:     &Request{CustomerID: 0, Slot: domain.Slot{Hotel: 1, Section: "A", Shelf: 1}},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "hotel outside grid",
			req:     &Request{CustomerID: 1, Slot: domain.Slot{Hotel: 5, Section: "A", Shelf: 1}},
			wantErr: ErrSlotOutOfGrid,
		},
		{
			name:    "unknown section",
			req:     &Request{CustomerID: 1, Slot: domain.Slot{Hotel: 1, Section: "D", Shelf: 1}},
			wantErr: ErrSlotOutOfGrid,
		},
		{
			name:    "shelf outside grid",
			req:     &Request{CustomerID: 1, Slot: domain.Slot{Hotel: 1, Section: "A", Shelf: 7}},
			wantErr: ErrSlotOutOfGrid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newTestUseCase(newFakeCustomerRepo(1), newFakeAssignmentRepo())

			_, err := uc.Execute(context.Background(), tt.req)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExecute_ConcurrentWriteLosesAsConflict(t *testing.T) {
	// Create возвращает нарушение constraint - гонка, проскочившая проверку
	// занятости, выглядит для клиента так же, как занятое место
	assignments := newFakeAssignmentRepo()
	uc := newTestUseCase(newFakeCustomerRepo(1, 2), assignments)

	slot := domain.Slot{Hotel: 3, Section: "C", Shelf: 5}
	_, err := assignments.Create(context.Background(), &domain.StorageAssignment{CustomerID: 2, Slot: slot})
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), &Request{CustomerID: 1, Slot: slot})
	require.ErrorIs(t, err, ErrSlotOccupied)
}
