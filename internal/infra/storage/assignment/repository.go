package assignment

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/THS-StorageService/internal/domain"
	"github.com/m04kA/THS-StorageService/pkg/dbmetrics"
	"github.com/m04kA/THS-StorageService/pkg/psqlbuilder"
)

const (
	// pgUniqueViolation код ошибки PostgreSQL при нарушении unique constraint
	pgUniqueViolation = "23505"

	// constraintSlot имя unique constraint на (hotel, section, shelf)
	constraintSlot = "storage_assignments_slot_key"

	// constraintCustomer имя unique constraint на customer_id
	constraintCustomer = "storage_assignments_customer_id_key"
)

// assignmentColumns колонки назначения места
var assignmentColumns = []string{
	"id",
	"customer_id",
	"hotel",
	"section",
	"shelf",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с назначениями складских мест
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория назначений
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByCustomerID получает текущее назначение клиента
func (r *Repository) GetByCustomerID(ctx context.Context, customerID int64) (*domain.StorageAssignment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(assignmentColumns...).
		From("storage_assignments").
		Where(squirrel.Eq{"customer_id": customerID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByCustomerID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanOne(executor.QueryRowContext(ctx, query, args...), "GetByCustomerID")
}

// GetBySlot получает назначение, занимающее указанное место
// Внутри транзакции строка блокируется (FOR UPDATE), чтобы два конкурентных
// назначения одного места были сериализованы
func (r *Repository) GetBySlot(ctx context.Context, slot domain.Slot) (*domain.StorageAssignment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(assignmentColumns...).
		From("storage_assignments").
		Where(squirrel.Eq{
			"hotel":   slot.Hotel,
			"section": slot.Section,
			"shelf":   slot.Shelf,
		})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBySlot - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanOne(executor.QueryRowContext(ctx, query, args...), "GetBySlot")
}

// Create создает назначение клиента на место
// Нарушение уникальности места конкурентной записью возвращается как
// ErrSlotTaken, нарушение уникальности клиента - как ErrCustomerAlreadyAssigned
func (r *Repository) Create(ctx context.Context, a *domain.StorageAssignment) (*domain.StorageAssignment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("storage_assignments").
		Columns(
			"customer_id",
			"hotel",
			"section",
			"shelf",
		).
		Values(
			a.CustomerID,
			a.Slot.Hotel,
			a.Slot.Section,
			a.Slot.Shelf,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&a.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if mapped := mapUniqueViolation(err); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return a, nil
}

// UpdateSlot переносит существующее назначение клиента на другое место
// (move-семантика: строка обновляется, а не дублируется)
func (r *Repository) UpdateSlot(ctx context.Context, customerID int64, slot domain.Slot) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("storage_assignments").
		Set("hotel", slot.Hotel).
		Set("section", slot.Section).
		Set("shelf", slot.Shelf).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"customer_id": customerID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateSlot - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if mapped := mapUniqueViolation(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("%w: UpdateSlot - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateSlot - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAssignmentNotFound
	}

	return nil
}

// DeleteByCustomerID снимает клиента с места
// Возвращает false без ошибки, если назначения не было (идемпотентный vacate)
func (r *Repository) DeleteByCustomerID(ctx context.Context, customerID int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("storage_assignments").
		Where(squirrel.Eq{"customer_id": customerID}).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: DeleteByCustomerID - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: DeleteByCustomerID - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: DeleteByCustomerID - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected > 0, nil
}

// ListOccupied возвращает все занятые места вместе с данными клиентов
// Используется для построения индекса занятости и отрисовки сетки склада
func (r *Repository) ListOccupied(ctx context.Context) ([]domain.OccupiedSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"a.id",
		"a.customer_id",
		"a.hotel",
		"a.section",
		"a.shelf",
		"a.created_at",
		"c.name",
		"c.license_plate",
		"c.status",
	).
		From("storage_assignments a").
		Join("customers c ON c.id = a.customer_id").
		OrderBy("a.hotel ASC, a.section ASC, a.shelf ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListOccupied - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOccupied - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	occupied := make([]domain.OccupiedSlot, 0)
	for rows.Next() {
		var o domain.OccupiedSlot
		var assignedAt sql.NullTime

		err := rows.Scan(
			&o.AssignmentID,
			&o.CustomerID,
			&o.Slot.Hotel,
			&o.Slot.Section,
			&o.Slot.Shelf,
			&assignedAt,
			&o.CustomerName,
			&o.CustomerLicensePlate,
			&o.CustomerStatus,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: ListOccupied - scan row: %v", ErrScanRow, err)
		}

		o.AssignedAt = assignedAt.Time
		occupied = append(occupied, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListOccupied - rows error: %v", ErrScanRow, err)
	}

	return occupied, nil
}

// scanOne сканирует одну строку назначения
func (r *Repository) scanOne(row *sql.Row, op string) (*domain.StorageAssignment, error) {
	var a domain.StorageAssignment
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&a.ID,
		&a.CustomerID,
		&a.Slot.Hotel,
		&a.Slot.Section,
		&a.Slot.Shelf,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrAssignmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan assignment: %v", ErrScanRow, op, err)
	}

	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return &a, nil
}

// mapUniqueViolation конвертирует нарушение unique constraint в доменную
// ошибку репозитория. Возвращает nil для всех прочих ошибок.
func mapUniqueViolation(err error) error {
	pqErr, ok := err.(*pq.Error)
	if !ok || pqErr.Code != pgUniqueViolation {
		return nil
	}

	switch pqErr.Constraint {
	case constraintCustomer:
		return fmt.Errorf("%w: %v", ErrCustomerAlreadyAssigned, err)
	case constraintSlot:
		return fmt.Errorf("%w: %v", ErrSlotTaken, err)
	default:
		return fmt.Errorf("%w: %v", ErrSlotTaken, err)
	}
}
