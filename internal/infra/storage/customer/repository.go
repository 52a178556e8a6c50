package customer

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

// pgUniqueViolation код ошибки PostgreSQL при нарушении unique constraint
const pgUniqueViolation = "23505"

// customerColumns колонки клиента вместе с текущим назначением места
// (LEFT JOIN на storage_assignments)
var customerColumns = []string{
	"c.id",
	"c.name",
	"c.license_plate",
	"c.summer_tire_size",
	"c.winter_tire_size",
	"c.phone",
	"c.email",
	"c.status",
	"c.created_at",
	"c.updated_at",
	"a.id",
	"a.hotel",
	"a.section",
	"a.shelf",
	"a.created_at",
	"a.updated_at",
}

// Repository репозиторий для работы с клиентами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория клиентов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает нового клиента
// Нарушение уникальности (конкурентное создание дубликата, прошедшее
// pre-check сервиса) возвращается как ErrDuplicate
func (r *Repository) Create(ctx context.Context, c *domain.Customer) (*domain.Customer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("customers").
		Columns(
			"name",
			"license_plate",
			"summer_tire_size",
			"winter_tire_size",
			"phone",
			"email",
			"status",
		).
		Values(
			c.Name,
			c.LicensePlate,
			c.SummerTireSize,
			c.WinterTireSize,
			c.Phone,
			c.Email,
			c.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&c.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: Create: %v", ErrDuplicate, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time

	return c, nil
}

// GetByID получает клиента по ID вместе с текущим назначением места
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.selectWithAssignment().
		Where(squirrel.Eq{"c.id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	c, err := scanCustomer(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan customer: %v", ErrScanRow, err)
	}

	return c, nil
}

// Update частично обновляет профиль клиента
// nil-поля патча не изменяются. Назначение места не затрагивается.
func (r *Repository) Update(ctx context.Context, id int64, patch domain.CustomerPatch) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("customers").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if patch.Name != nil {
		updateBuilder = updateBuilder.Set("name", *patch.Name)
	}
	if patch.LicensePlate != nil {
		updateBuilder = updateBuilder.Set("license_plate", *patch.LicensePlate)
	}
	if patch.SummerTireSize != nil {
		updateBuilder = updateBuilder.Set("summer_tire_size", *patch.SummerTireSize)
	}
	if patch.WinterTireSize != nil {
		updateBuilder = updateBuilder.Set("winter_tire_size", *patch.WinterTireSize)
	}
	if patch.Phone != nil {
		updateBuilder = updateBuilder.Set("phone", *patch.Phone)
	}
	if patch.Email != nil {
		updateBuilder = updateBuilder.Set("email", *patch.Email)
	}
	if patch.Status != nil {
		updateBuilder = updateBuilder.Set("status", *patch.Status)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: Update: %v", ErrDuplicate, err)
		}
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrCustomerNotFound
	}

	return nil
}

// SearchByText ищет клиентов по подстроке в имени или госномере
// (без учета регистра). Сортировка стабильная: created_at DESC.
// Если unassignedOnly = true, возвращаются только клиенты без места.
func (r *Repository) SearchByText(ctx context.Context, text string, limit uint64, unassignedOnly bool) ([]*domain.Customer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	pattern := "%" + text + "%"

	selectBuilder := r.selectWithAssignment().
		Where(squirrel.Or{
			squirrel.ILike{"c.name": pattern},
			squirrel.ILike{"c.license_plate": pattern},
		}).
		OrderBy("c.created_at DESC").
		Limit(limit)

	if unassignedOnly {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"a.id": nil})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: SearchByText - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: SearchByText - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanCustomers(rows)
}

// FindMatching ищет клиентов, совпадающих по любому из идентифицирующих
// полей: имя, госномер, телефон, email. Используется как pre-check
// дедупликации при создании. Пустые phone/email из сравнения исключаются,
// чтобы два клиента без email не считались дубликатами.
func (r *Repository) FindMatching(ctx context.Context, name, licensePlate, phone, email string) ([]*domain.Customer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	conditions := squirrel.Or{
		squirrel.Eq{"c.name": name},
		squirrel.Eq{"c.license_plate": licensePlate},
	}
	if phone != "" {
		conditions = append(conditions, squirrel.Eq{"c.phone": phone})
	}
	if email != "" {
		conditions = append(conditions, squirrel.Eq{"c.email": email})
	}

	query, args, err := r.selectWithAssignment().
		Where(conditions).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: FindMatching - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindMatching - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanCustomers(rows)
}

// selectWithAssignment базовый SELECT клиента с LEFT JOIN на назначение места
func (r *Repository) selectWithAssignment() squirrel.SelectBuilder {
	return psqlbuilder.Select(customerColumns...).
		From("customers c").
		LeftJoin("storage_assignments a ON a.customer_id = c.id")
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanCustomer сканирует одну строку клиента с назначением места
func scanCustomer(row rowScanner) (*domain.Customer, error) {
	var c domain.Customer
	var createdAt, updatedAt sql.NullTime

	var assignmentID sql.NullInt64
	var hotel, shelf sql.NullInt64
	var section sql.NullString
	var assignedAt, assignmentUpdatedAt sql.NullTime

	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.LicensePlate,
		&c.SummerTireSize,
		&c.WinterTireSize,
		&c.Phone,
		&c.Email,
		&c.Status,
		&createdAt,
		&updatedAt,
		&assignmentID,
		&hotel,
		&section,
		&shelf,
		&assignedAt,
		&assignmentUpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.CreatedAt = createdAt.Time
	c.UpdatedAt = updatedAt.Time

	if assignmentID.Valid {
		c.Assignment = &domain.StorageAssignment{
			ID:         assignmentID.Int64,
			CustomerID: c.ID,
			Slot: domain.Slot{
				Hotel:   int(hotel.Int64),
				Section: section.String,
				Shelf:   int(shelf.Int64),
			},
			CreatedAt: assignedAt.Time,
			UpdatedAt: assignmentUpdatedAt.Time,
		}
	}

	return &c, nil
}

// scanCustomers сканирует результаты запроса в слайс клиентов
func scanCustomers(rows *sql.Rows) ([]*domain.Customer, error) {
	customers := make([]*domain.Customer, 0)

	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanCustomers - scan row: %v", ErrScanRow, err)
		}
		customers = append(customers, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanCustomers - rows error: %v", ErrScanRow, err)
	}

	return customers, nil
}

// isUniqueViolation проверяет, является ли ошибка нарушением unique constraint
func isUniqueViolation(err error) bool {
	if pqErr, ok := err.(*pq.Error); ok {
		return pqErr.Code == pgUniqueViolation
	}
	return false
}
