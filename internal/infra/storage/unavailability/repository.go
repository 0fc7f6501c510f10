package unavailability

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

// Repository репозиторий разовых и повторяющихся блокировок календаря
type Repository struct {
	db  dbmetrics.DBExecutor
	loc *time.Location
}

// NewRepository создает новый экземпляр репозитория.
// loc - часовой пояс наивных дат и времени в таблицах.
func NewRepository(db dbmetrics.DBExecutor, loc *time.Location) *Repository {
	return &Repository{db: db, loc: loc}
}

// ListOverlapping разовые блокировки, пересекающие [from, to)
func (r *Repository) ListOverlapping(ctx context.Context, from, to time.Time) ([]domain.Unavailability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"start_datetime",
		"end_datetime",
		"reason",
		"created_at",
	).
		From("unavailabilities").
		Where(squirrel.Lt{"start_datetime": r.format(to)}).
		Where(squirrel.Gt{"end_datetime": r.format(from)}).
		OrderBy("start_datetime ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListOverlapping - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListOverlapping - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]domain.Unavailability, 0)
	for rows.Next() {
		var (
			u          domain.Unavailability
			start, end time.Time
			reason     sql.NullString
			createdAt  sql.NullTime
		)
		if err := rows.Scan(&u.ID, &start, &end, &reason, &createdAt); err != nil {
			return nil, fmt.Errorf("%w: ListOverlapping - scan: %v", ErrScanRow, err)
		}
		u.Start = domain.WallClockIn(start, r.loc)
		u.End = domain.WallClockIn(end, r.loc)
		if reason.Valid {
			u.Reason = &reason.String
		}
		u.CreatedAt = createdAt.Time
		result = append(result, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListOverlapping - rows iteration: %v", ErrScanRow, err)
	}

	return result, nil
}

// HasOverlap проверяет, пересекает ли [start, end) хотя бы одну разовую блокировку
func (r *Repository) HasOverlap(ctx context.Context, start, end time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("unavailabilities").
		Where(squirrel.Lt{"start_datetime": r.format(end)}).
		Where(squirrel.Gt{"end_datetime": r.format(start)}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: HasOverlap - build select query: %v", ErrBuildQuery, err)
	}

	var count int64
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("%w: HasOverlap - execute query: %w", ErrExecQuery, err)
	}
	return count > 0, nil
}

// ListRecurringBetween правила, чей период действия пересекает даты [from, to]
func (r *Repository) ListRecurringBetween(ctx context.Context, from, to time.Time) ([]domain.RecurringUnavailability, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"weekday",
		"start_time",
		"end_time",
		"start_date",
		"end_date",
		"reason",
		"created_at",
	).
		From("recurring_unavailabilities").
		Where(squirrel.LtOrEq{"start_date": r.formatDate(to)}).
		Where(squirrel.Or{
			squirrel.Eq{"end_date": nil},
			squirrel.GtOrEq{"end_date": r.formatDate(from)},
		}).
		OrderBy("weekday ASC", "start_time ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListRecurringBetween - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListRecurringBetween - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]domain.RecurringUnavailability, 0)
	for rows.Next() {
		rule, err := r.scanRecurring(rows)
		if err != nil {
			return nil, fmt.Errorf("ListRecurringBetween: %w", err)
		}
		result = append(result, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListRecurringBetween - rows iteration: %v", ErrScanRow, err)
	}

	return result, nil
}

// DeleteEndedBefore удаляет разовые блокировки, закончившиеся до cutoff
func (r *Repository) DeleteEndedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query, args, err := psqlbuilder.Delete("unavailabilities").
		Where(squirrel.Lt{"end_datetime": r.format(cutoff)}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteEndedBefore - build delete query: %v", ErrBuildQuery, err)
	}
	return r.execAffected(ctx, "DeleteEndedBefore", query, args)
}

// DeleteRecurringEndedBefore удаляет правила, чей end_date раньше даты cutoff
func (r *Repository) DeleteRecurringEndedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query, args, err := psqlbuilder.Delete("recurring_unavailabilities").
		Where(squirrel.NotEq{"end_date": nil}).
		Where(squirrel.Lt{"end_date": r.formatDate(cutoff)}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteRecurringEndedBefore - build delete query: %v", ErrBuildQuery, err)
	}
	return r.execAffected(ctx, "DeleteRecurringEndedBefore", query, args)
}

// CountEndedBefore количество разовых блокировок, закончившихся до cutoff
func (r *Repository) CountEndedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return r.count(ctx, "CountEndedBefore", squirrel.Lt{"end_datetime": r.format(cutoff)})
}

// CountAll общее количество разовых блокировок
func (r *Repository) CountAll(ctx context.Context) (int64, error) {
	return r.count(ctx, "CountAll", nil)
}

func (r *Repository) count(ctx context.Context, op string, where squirrel.Sqlizer) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("COUNT(*)").From("unavailabilities")
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

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *Repository) scanRecurring(row rowScanner) (domain.RecurringUnavailability, error) {
	var (
		rule      domain.RecurringUnavailability
		weekday   int
		startDate time.Time
		endDate   sql.NullTime
		reason    sql.NullString
		createdAt sql.NullTime
	)

	err := row.Scan(
		&rule.ID,
		&weekday,
		&rule.StartTime,
		&rule.EndTime,
		&startDate,
		&endDate,
		&reason,
		&createdAt,
	)
	if err != nil {
		return rule, fmt.Errorf("%w: %v", ErrScanRow, err)
	}

	if weekday < 0 || weekday > 6 {
		return rule, fmt.Errorf("%w: rule %d has weekday %d", ErrInvalidRecord, rule.ID, weekday)
	}
	if !rule.StartTime.IsBefore(rule.EndTime) {
		return rule, fmt.Errorf("%w: rule %d has start_time >= end_time", ErrInvalidRecord, rule.ID)
	}

	rule.Weekday = time.Weekday(weekday)
	rule.StartDate = domain.StartOfDay(domain.WallClockIn(startDate, r.loc))
	if endDate.Valid {
		end := domain.StartOfDay(domain.WallClockIn(endDate.Time, r.loc))
		rule.EndDate = &end
	}
	if reason.Valid {
		rule.Reason = &reason.String
	}
	rule.CreatedAt = createdAt.Time

	return rule, nil
}

func (r *Repository) format(t time.Time) string {
	return domain.FormatDateTime(t.In(r.loc))
}

func (r *Repository) formatDate(t time.Time) string {
	return t.In(r.loc).Format(domain.DateFormat)
}
