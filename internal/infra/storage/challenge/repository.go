package challenge

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
	"github.com/m04kA/SMC-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ReservationService/pkg/psqlbuilder"
)

var challengeColumns = []string{
	"id",
	"booking_id",
	"purpose",
	"code",
	"masked_recipient",
	"expires_at",
	"consumed",
	"created_at",
}

// Repository репозиторий для работы с кодами подтверждения отмены
// Колонка booking_id уникальна: на одно бронирование существует
// не более одной записи, замещение происходит через upsert
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория кодов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Replace сохраняет код для бронирования, замещая предыдущий (если был)
// Выполняется одним upsert, поэтому после повторной отправки
// действителен только последний код
func (r *Repository) Replace(ctx context.Context, ch *domain.OtpChallenge) (*domain.OtpChallenge, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("otp_challenges").
		Columns(
			"booking_id",
			"purpose",
			"code",
			"masked_recipient",
			"expires_at",
			"consumed",
		).
		Values(
			ch.BookingID,
			ch.Purpose,
			ch.Code,
			ch.MaskedRecipient,
			ch.ExpiresAt,
			false,
		).
		Suffix(`ON CONFLICT (booking_id) DO UPDATE SET
			purpose = EXCLUDED.purpose,
			code = EXCLUDED.code,
			masked_recipient = EXCLUDED.masked_recipient,
			expires_at = EXCLUDED.expires_at,
			consumed = FALSE,
			created_at = NOW()
		RETURNING id, created_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Replace - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&ch.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Replace - execute upsert: %v", ErrExecQuery, err)
	}

	ch.Consumed = false
	ch.CreatedAt = createdAt.Time

	return ch, nil
}

// GetByBookingID получает код, привязанный к бронированию
func (r *Repository) GetByBookingID(ctx context.Context, bookingID int64) (*domain.OtpChallenge, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(challengeColumns...).
		From("otp_challenges").
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - build select query: %v", ErrBuildQuery, err)
	}

	var ch domain.OtpChallenge
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&ch.ID,
		&ch.BookingID,
		&ch.Purpose,
		&ch.Code,
		&ch.MaskedRecipient,
		&ch.ExpiresAt,
		&ch.Consumed,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrChallengeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBookingID - scan challenge: %v", ErrScanRow, err)
	}

	ch.CreatedAt = createdAt.Time

	return &ch, nil
}

// Consume помечает код использованным
// Условие NOT consumed входит в UPDATE: повторное использование того же кода
// проигрывает и возвращает ErrAlreadyConsumed
func (r *Repository) Consume(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("otp_challenges").
		Set("consumed", true).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"consumed": false}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Consume - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Consume - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Consume - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAlreadyConsumed
	}

	return nil
}

// DeleteByBookingID удаляет код бронирования (если был)
func (r *Repository) DeleteByBookingID(ctx context.Context, bookingID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("otp_challenges").
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: DeleteByBookingID - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: DeleteByBookingID - execute delete: %v", ErrExecQuery, err)
	}

	return nil
}

// DeleteExpired удаляет коды, истекшие раньше указанного момента
// Гигиеническая чистка хранилища; корректность истечения
// обеспечивается проверкой expires_at при верификации
func (r *Repository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("otp_challenges").
		Where(squirrel.Lt{"expires_at": before}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteExpired - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}
