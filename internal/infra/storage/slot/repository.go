package slot

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
)

var slotColumns = []string{
	"id",
	"label",
	"max_capacity",
	"booked_count",
	"is_active",
	"is_peak",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы со слотами и их счётчиками занятости
// Reserve и Release - единственные операции, изменяющие booked_count
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новый слот
func (r *Repository) Create(ctx context.Context, slot *domain.TimeSlot) (*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("time_slots").
		Columns("label", "max_capacity", "is_active", "is_peak").
		Values(slot.Label, slot.MaxCapacity, slot.IsActive, slot.IsPeak).
		Suffix("RETURNING id, booked_count, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&slot.ID,
		&slot.BookedCount,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return slot, nil
}

// GetByID получает слот по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("time_slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanSlot(executor.QueryRowContext(ctx, query, args...), "GetByID")
}

// List получает все слоты, отсортированные по времени
func (r *Repository) List(ctx context.Context) ([]*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("time_slots").
		OrderBy("label ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]*domain.TimeSlot, 0)

	for rows.Next() {
		var slot domain.TimeSlot
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&slot.ID,
			&slot.Label,
			&slot.MaxCapacity,
			&slot.BookedCount,
			&slot.IsActive,
			&slot.IsPeak,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}

		slot.CreatedAt = createdAt.Time
		slot.UpdatedAt = updatedAt.Time

		slots = append(slots, &slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// Reserve атомарно занимает одно место в слоте
// Условие is_active AND booked_count < max_capacity проверяется в том же UPDATE,
// поэтому два конкурентных вызова на почти полном слоте не могут превысить лимит
func (r *Repository) Reserve(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("time_slots").
		Set("booked_count", squirrel.Expr("booked_count + 1")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"is_active": true}).
		Where(squirrel.Expr("booked_count < max_capacity")).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Reserve - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Reserve - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Reserve - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected > 0 {
		return nil
	}

	// Условный UPDATE не сработал - выясняем причину отказа
	slot, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !slot.IsActive {
		return ErrSlotInactive
	}
	return ErrSlotFull
}

// Release атомарно освобождает одно место в слоте
// Счётчик не опускается ниже нуля (защита от рассинхронизации)
func (r *Repository) Release(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("time_slots").
		Set("booked_count", squirrel.Expr("GREATEST(booked_count - 1, 0)")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Release - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Release - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Release - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// SetCapacity устанавливает максимальную вместимость слота
// newMax < booked_count допустимо: слот просто перестает принимать
// новые бронирования, пока счётчик не опустится ниже лимита
func (r *Repository) SetCapacity(ctx context.Context, id int64, newMax int) (*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("time_slots").
		Set("max_capacity", newMax).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + joinColumns(slotColumns)).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: SetCapacity - build update query: %v", ErrBuildQuery, err)
	}

	return r.scanSlot(executor.QueryRowContext(ctx, query, args...), "SetCapacity")
}

// BulkSetCapacity устанавливает вместимость всем активным слотам
// Отключенные слоты не затрагиваются
// Возвращает количество обновленных слотов
func (r *Repository) BulkSetCapacity(ctx context.Context, newMax int) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("time_slots").
		Set("max_capacity", newMax).
		Where(squirrel.Eq{"is_active": true}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: BulkSetCapacity - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: BulkSetCapacity - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: BulkSetCapacity - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// ToggleActive переключает флаг приема бронирований
// Отключение слота не изменяет booked_count и не отменяет существующие бронирования
func (r *Repository) ToggleActive(ctx context.Context, id int64) (*domain.TimeSlot, error) {
	return r.toggleFlag(ctx, id, "is_active", "ToggleActive")
}

// TogglePeak переключает пометку пикового слота
func (r *Repository) TogglePeak(ctx context.Context, id int64) (*domain.TimeSlot, error) {
	return r.toggleFlag(ctx, id, "is_peak", "TogglePeak")
}

func (r *Repository) toggleFlag(ctx context.Context, id int64, column, op string) (*domain.TimeSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("time_slots").
		Set(column, squirrel.Expr("NOT "+column)).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING " + joinColumns(slotColumns)).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	return r.scanSlot(executor.QueryRowContext(ctx, query, args...), op)
}

func (r *Repository) scanSlot(row *sql.Row, op string) (*domain.TimeSlot, error) {
	var slot domain.TimeSlot
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&slot.ID,
		&slot.Label,
		&slot.MaxCapacity,
		&slot.BookedCount,
		&slot.IsActive,
		&slot.IsPeak,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan slot: %v", ErrScanRow, op, err)
	}

	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return &slot, nil
}

func joinColumns(columns []string) string {
	joined := ""
	for i, c := range columns {
		if i > 0 {
			joined += ", "
		}
		joined += c
	}
	return joined
}
