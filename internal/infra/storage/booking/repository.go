package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-CarWashBooking/internal/domain"
	"github.com/m04kA/SMC-CarWashBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-CarWashBooking/pkg/psqlbuilder"
)

const (
	tableBookings = "bookings"

	constraintCancelToken = "bookings_cancel_token_key"
	constraintNoOverlap   = "bookings_no_overlap"

	codeUniqueViolation    = "23505"
	codeExclusionViolation = "23P01"
)

var bookingColumns = []string{
	"id",
	"customer_name",
	"customer_phone",
	"customer_email",
	"service_id",
	"start_time",
	"end_time",
	"status",
	"cancel_token",
	"canceled_at",
	"created_at",
}

// Repository репозиторий для работы с бронированиями в PostgreSQL
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новое подтверждённое бронирование.
// Если в контексте есть транзакция, запрос выполняется в ней.
// Пересечение с другим подтверждённым бронированием дополнительно отсекается
// exclusion constraint'ом на уровне БД.
func (r *Repository) Create(ctx context.Context, draft domain.BookingDraft) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableBookings).
		Columns(
			"customer_name",
			"customer_phone",
			"customer_email",
			"service_id",
			"start_time",
			"end_time",
			"status",
			"cancel_token",
		).
		Values(
			draft.CustomerName,
			draft.CustomerPhone,
			draft.CustomerEmail,
			draft.ServiceID,
			draft.StartTime,
			draft.EndTime,
			domain.StatusConfirmed,
			draft.CancelToken,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	booking := &domain.Booking{
		CustomerName:  draft.CustomerName,
		CustomerPhone: draft.CustomerPhone,
		CustomerEmail: draft.CustomerEmail,
		ServiceID:     draft.ServiceID,
		StartTime:     draft.StartTime,
		EndTime:       draft.EndTime,
		Status:        domain.StatusConfirmed,
		CancelToken:   draft.CancelToken,
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&booking.ID, &booking.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) {
			switch {
			case pqErr.Code == codeUniqueViolation && pqErr.Constraint == constraintCancelToken:
				return nil, ErrDuplicateToken
			case pqErr.Code == codeExclusionViolation && pqErr.Constraint == constraintNoOverlap:
				return nil, ErrSlotNotAvailable
			}
		}
		// %w для исходной ошибки: менеджер транзакций распознаёт конфликт сериализации
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByToken получает бронирование по токену отмены
func (r *Repository) GetByToken(ctx context.Context, token string) (*domain.Booking, error) {
	return r.getOne(ctx, "GetByToken", squirrel.Eq{"cancel_token": token})
}

// FindOverlapping возвращает подтверждённые бронирования, пересекающие [start, end).
// Внутри транзакции строки блокируются (FOR UPDATE); фантомные вставки
// отсекает изоляция SERIALIZABLE.
func (r *Repository) FindOverlapping(ctx context.Context, start, end time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"status": domain.StatusConfirmed}).
		Where(squirrel.Lt{"start_time": end}).
		Where(squirrel.Gt{"end_time": start}).
		OrderBy("start_time ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindOverlapping - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// ListAll возвращает все бронирования (включая отменённые), сначала поздние
func (r *Repository) ListAll(ctx context.Context) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		OrderBy("start_time DESC", "id DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListAll - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAll - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// ListConfirmed возвращает подтверждённые бронирования, пересекающие окно rng.
// Пустые границы окна не ограничивают выборку.
func (r *Repository) ListConfirmed(ctx context.Context, rng domain.TimeRange) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(squirrel.Eq{"status": domain.StatusConfirmed})

	if rng.To != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"start_time": *rng.To})
	}
	if rng.From != nil {
		selectBuilder = selectBuilder.Where(squirrel.Gt{"end_time": *rng.From})
	}

	query, args, err := selectBuilder.OrderBy("start_time ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListConfirmed - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListConfirmed - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// UpdateStatus атомарно меняет статус from -> to (compare-and-set).
// Возвращает ErrBookingNotFound, если бронирования нет, и ErrStatusConflict,
// если текущий статус уже не равен from.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) error {
	if !from.CanTransitionTo(to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidStatus, from, to)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update(tableBookings).
		Set("status", to).
		Where(squirrel.Eq{"id": id, "status": from})
	if to == domain.StatusCanceled {
		updateBuilder = updateBuilder.Set("canceled_at", squirrel.Expr("NOW()"))
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected > 0 {
		return nil
	}

	// Ничего не обновили: либо бронирования нет, либо статус уже другой
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	return ErrStatusConflict
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Eq) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From(tableBookings).
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan booking: %w", ErrScanRow, op, err)
	}

	return booking, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var canceledAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.CustomerName,
		&booking.CustomerPhone,
		&booking.CustomerEmail,
		&booking.ServiceID,
		&booking.StartTime,
		&booking.EndTime,
		&booking.Status,
		&booking.CancelToken,
		&canceledAt,
		&booking.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if canceledAt.Valid {
		t := canceledAt.Time
		booking.CanceledAt = &t
	}

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
