package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-PetSittingService/internal/domain"
	"github.com/m04kA/SMC-PetSittingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-PetSittingService/pkg/psqlbuilder"
)

// calendarLockNamespace первый ключ pg_advisory_xact_lock для календаря бронирований
const calendarLockNamespace = 0x5045

var bookingColumns = []string{
	"b.id",
	"b.customer_id",
	"b.total_price_cents",
	"b.notes",
	"b.status",
	"b.created_at",
	"b.updated_at",
	"c.id",
	"c.first_name",
	"c.last_name",
	"c.email",
	"c.phone",
	"c.created_at",
	"c.updated_at",
}

var itemColumns = []string{
	"bi.id",
	"bi.booking_id",
	"bi.service_id",
	"bi.start_datetime",
	"bi.end_datetime",
	"bi.unit_price_cents",
	"bi.created_at",
}

// Repository репозиторий для работы с бронированиями и их позициями
type Repository struct {
	db  DBExecutor
	loc *time.Location
}

// NewRepository создает новый экземпляр репозитория бронирований.
// loc - часовой пояс, в котором хранятся наивные start/end datetime.
func NewRepository(db DBExecutor, loc *time.Location) *Repository {
	return &Repository{db: db, loc: loc}
}

// LockCalendar берет транзакционную advisory-блокировку календаря.
// serviceID == nil - общий календарь, иначе календарь конкретной услуги.
// Блокировка снимается при commit/rollback, поэтому вызов возможен только внутри транзакции.
func (r *Repository) LockCalendar(ctx context.Context, serviceID *int64) error {
	if !dbmetrics.IsInTransaction(ctx) {
		return fmt.Errorf("%w: LockCalendar", ErrTransaction)
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	var key int64
	if serviceID != nil {
		key = *serviceID
	}

	query, args, err := psqlbuilder.Select().
		Column(squirrel.Expr("pg_advisory_xact_lock(?, ?)", calendarLockNamespace, key)).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: LockCalendar - build query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: LockCalendar - execute: %w", ErrExecQuery, err)
	}
	return nil
}

// Create создает запись бронирования (без позиций)
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if !booking.Status.IsValid() {
		return nil, fmt.Errorf("%w: Create - %q", ErrInvalidStatus, booking.Status)
	}

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"customer_id",
			"total_price_cents",
			"notes",
			"status",
		).
		Values(
			booking.CustomerID,
			booking.TotalPriceCents,
			booking.Notes,
			string(booking.Status),
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// CreateItems сохраняет позиции бронирования, проставляя им ID
func (r *Repository) CreateItems(ctx context.Context, bookingID int64, items []domain.BookingItem) ([]domain.BookingItem, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	created := make([]domain.BookingItem, 0, len(items))
	for _, item := range items {
		query, args, err := psqlbuilder.Insert("booking_items").
			Columns(
				"booking_id",
				"service_id",
				"start_datetime",
				"end_datetime",
				"unit_price_cents",
			).
			Values(
				bookingID,
				item.ServiceID,
				r.format(item.Start),
				r.format(item.End),
				item.UnitPriceCents,
			).
			Suffix("RETURNING id, created_at").
			ToSql()
		if err != nil {
			return nil, fmt.Errorf("%w: CreateItems - build insert query: %v", ErrBuildQuery, err)
		}

		var createdAt sql.NullTime
		if err := executor.QueryRowContext(ctx, query, args...).Scan(&item.ID, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: CreateItems - execute insert: %w", ErrExecQuery, err)
		}

		item.BookingID = bookingID
		item.CreatedAt = createdAt.Time
		created = append(created, item)
	}

	return created, nil
}

// GetByID получает бронирование по ID вместе с клиентом и позициями
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings b").
		Join("customers c ON c.id = b.customer_id").
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	items, err := r.itemsByBookingIDs(ctx, []int64{booking.ID})
	if err != nil {
		return nil, err
	}
	booking.Items = items[booking.ID]

	return booking, nil
}

// List получает бронирования с фильтрацией (для админки).
// Сортировка: сначала новые.
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings b").
		Join("customers c ON c.id = b.customer_id").
		OrderBy("b.created_at DESC", "b.id DESC")

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"b.status": string(*filter.Status)})
	}
	if filter.CreatedFrom != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"b.created_at": *filter.CreatedFrom})
	}
	if filter.CreatedTo != nil {
		selectBuilder = selectBuilder.Where(squirrel.Lt{"b.created_at": *filter.CreatedTo})
	}
	if filter.CustomerEmail != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"c.email": *filter.CustomerEmail})
	}
	if filter.Limit > 0 {
		selectBuilder = selectBuilder.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		selectBuilder = selectBuilder.Offset(filter.Offset)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	ids := make([]int64, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan booking: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
		ids = append(ids, booking.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows iteration: %v", ErrScanRow, err)
	}

	if len(ids) == 0 {
		return bookings, nil
	}

	items, err := r.itemsByBookingIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, booking := range bookings {
		booking.Items = items[booking.ID]
	}

	return bookings, nil
}

// ListConfirmedItems позиции подтвержденных бронирований, пересекающие [from, to).
// serviceID опционально сужает выборку до одной услуги.
func (r *Repository) ListConfirmedItems(ctx context.Context, from, to time.Time, serviceID *int64) ([]domain.BookingItem, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(itemColumns...).
		From("booking_items bi").
		Join("bookings b ON b.id = bi.booking_id").
		Where(squirrel.Eq{"b.status": string(domain.StatusConfirmed)}).
		Where(squirrel.Lt{"bi.start_datetime": r.format(to)}).
		Where(squirrel.Gt{"bi.end_datetime": r.format(from)}).
		OrderBy("bi.start_datetime ASC", "bi.id ASC")

	if serviceID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"bi.service_id": *serviceID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListConfirmedItems - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListConfirmedItems - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	items := make([]domain.BookingItem, 0)
	for rows.Next() {
		item, err := r.scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListConfirmedItems - scan item: %v", ErrScanRow, err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListConfirmedItems - rows iteration: %v", ErrScanRow, err)
	}

	return items, nil
}

// HasConflict проверяет, пересекает ли [start, end) позицию подтвержденного бронирования.
// Касание границ пересечением не считается.
func (r *Repository) HasConflict(ctx context.Context, start, end time.Time, serviceID, excludeBookingID *int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("COUNT(*)").
		From("booking_items bi").
		Join("bookings b ON b.id = bi.booking_id").
		Where(squirrel.Eq{"b.status": string(domain.StatusConfirmed)}).
		Where(squirrel.Lt{"bi.start_datetime": r.format(end)}).
		Where(squirrel.Gt{"bi.end_datetime": r.format(start)})

	if serviceID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"bi.service_id": *serviceID})
	}
	if excludeBookingID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"b.id": *excludeBookingID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: HasConflict - build select query: %v", ErrBuildQuery, err)
	}

	var count int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("%w: HasConflict - execute query: %w", ErrExecQuery, err)
	}

	return count > 0, nil
}

// CancelConfirmed переводит подтвержденное бронирование в cancelled.
// Возвращает false, если бронирования нет или оно уже отменено.
func (r *Repository) CancelConfirmed(ctx context.Context, id int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", string(domain.StatusCancelled)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": string(domain.StatusConfirmed)}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: CancelConfirmed - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("%w: CancelConfirmed - execute update: %w", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: CancelConfirmed - rows affected: %v", ErrExecQuery, err)
	}

	return affected > 0, nil
}

// DeleteItemsOfBookingsCreatedBefore удаляет позиции бронирований, созданных до cutoff
func (r *Repository) DeleteItemsOfBookingsCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query, args, err := psqlbuilder.Delete("booking_items").
		Where(squirrel.Expr("booking_id IN (SELECT id FROM bookings WHERE created_at < ?)", cutoff)).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteItemsOfBookingsCreatedBefore - build delete query: %v", ErrBuildQuery, err)
	}
	return r.execAffected(ctx, "DeleteItemsOfBookingsCreatedBefore", query, args)
}

// DeleteCreatedBefore удаляет бронирования, созданные до cutoff
func (r *Repository) DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query, args, err := psqlbuilder.Delete("bookings").
		Where(squirrel.Lt{"created_at": cutoff}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteCreatedBefore - build delete query: %v", ErrBuildQuery, err)
	}
	return r.execAffected(ctx, "DeleteCreatedBefore", query, args)
}

// CountCreatedBefore количество бронирований, созданных до cutoff
func (r *Repository) CountCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return r.count(ctx, "CountCreatedBefore", squirrel.Lt{"created_at": cutoff})
}

// CountAll общее количество бронирований
func (r *Repository) CountAll(ctx context.Context) (int64, error) {
	return r.count(ctx, "CountAll", nil)
}

func (r *Repository) count(ctx context.Context, op string, where squirrel.Sqlizer) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("COUNT(*)").From("bookings")
	if where != nil {
		selectBuilder = selectBuilder.Where(where)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	var count int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	return count, nil
}

func (r *Repository) execAffected(ctx context.Context, op, query string, args []interface{}) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: %s - execute: %w", ErrExecQuery, op, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %s - rows affected: %v", ErrExecQuery, op, err)
	}
	return affected, nil
}

func (r *Repository) itemsByBookingIDs(ctx context.Context, ids []int64) (map[int64][]domain.BookingItem, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(itemColumns...).
		From("booking_items bi").
		Where(squirrel.Eq{"bi.booking_id": ids}).
		OrderBy("bi.booking_id ASC", "bi.start_datetime ASC", "bi.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: itemsByBookingIDs - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: itemsByBookingIDs - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make(map[int64][]domain.BookingItem, len(ids))
	for rows.Next() {
		item, err := r.scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: itemsByBookingIDs - scan item: %v", ErrScanRow, err)
		}
		result[item.BookingID] = append(result[item.BookingID], item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: itemsByBookingIDs - rows iteration: %v", ErrScanRow, err)
	}

	return result, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		booking                              domain.Booking
		customer                             domain.Customer
		status                               string
		notes                                sql.NullString
		createdAt, updatedAt                 sql.NullTime
		customerCreatedAt, customerUpdatedAt sql.NullTime
	)

	err := row.Scan(
		&booking.ID,
		&booking.CustomerID,
		&booking.TotalPriceCents,
		&notes,
		&status,
		&createdAt,
		&updatedAt,
		&customer.ID,
		&customer.FirstName,
		&customer.LastName,
		&customer.Email,
		&customer.Phone,
		&customerCreatedAt,
		&customerUpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.Status = domain.BookingStatus(status)
	if !booking.Status.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	if notes.Valid {
		booking.Notes = &notes.String
	}
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time
	customer.CreatedAt = customerCreatedAt.Time
	customer.UpdatedAt = customerUpdatedAt.Time
	booking.Customer = &customer

	return &booking, nil
}

func (r *Repository) scanItem(row rowScanner) (domain.BookingItem, error) {
	var (
		item       domain.BookingItem
		start, end time.Time
		createdAt  sql.NullTime
	)

	err := row.Scan(
		&item.ID,
		&item.BookingID,
		&item.ServiceID,
		&start,
		&end,
		&item.UnitPriceCents,
		&createdAt,
	)
	if err != nil {
		return item, err
	}

	item.Start = domain.WallClockIn(start, r.loc)
	item.End = domain.WallClockIn(end, r.loc)
	item.CreatedAt = createdAt.Time

	return item, nil
}

// format наивная строка времени в часовом поясе календаря
func (r *Repository) format(t time.Time) string {
	return domain.FormatDateTime(t.In(r.loc))
}
