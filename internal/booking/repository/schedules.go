package repository

import (
	"context"
	"errors"
	"time"

	"reserva_backend/internal/booking/domain"
	"reserva_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const scheduleColumns = `id, tenant_id, day_of_week, open_time, close_time, valid_from, valid_to, created_at, updated_at`

func scanSchedule(row pgx.Row) (*domain.Schedule, error) {
	var s domain.Schedule
	err := row.Scan(&s.ID, &s.TenantID, &s.DayOfWeek, &s.OpenTime, &s.CloseTime, &s.ValidFrom, &s.ValidTo, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load schedule", err)
	}
	return &s, nil
}

// GetTenantSchedulesForDate returns the weekly blocks applying on the given
// date: matching weekday and validity window covering the date. Date-string
// comparison is lexical, which matches chronological order for ISO dates.
func (r *Postgres) GetTenantSchedulesForDate(ctx context.Context, tenantID uuid.UUID, date time.Time) ([]domain.Schedule, error) {
	dateStr := domain.DateString(date)
	query := `
		SELECT ` + scheduleColumns + `
		FROM schedules
		WHERE tenant_id = $1 AND day_of_week = $2 AND valid_from <= $3 AND valid_to >= $3
		ORDER BY open_time`
	rows, err := r.pool.Query(ctx, query, tenantID, int(date.Weekday()), dateStr)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load schedules", err)
	}
	defer rows.Close()
	return collectSchedules(rows)
}

// ListSchedules returns all weekly blocks for the tenant.
func (r *Postgres) ListSchedules(ctx context.Context, tenantID uuid.UUID) ([]domain.Schedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM schedules WHERE tenant_id = $1 ORDER BY day_of_week, open_time`
	rows, err := r.pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list schedules", err)
	}
	defer rows.Close()
	return collectSchedules(rows)
}

func collectSchedules(rows pgx.Rows) ([]domain.Schedule, error) {
	schedules := make([]domain.Schedule, 0)
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, *s)
	}
	return schedules, rows.Err()
}

// CreateSchedule inserts a weekly block for the tenant.
func (r *Postgres) CreateSchedule(ctx context.Context, tenantID uuid.UUID, input ScheduleInput) (*domain.Schedule, error) {
	query := `
		INSERT INTO schedules (id, tenant_id, day_of_week, open_time, close_time, valid_from, valid_to)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + scheduleColumns
	return scanSchedule(r.pool.QueryRow(ctx, query,
		uuid.New(), tenantID, input.DayOfWeek, input.OpenTime, input.CloseTime, input.ValidFrom, input.ValidTo,
	))
}

// DeleteSchedule removes a weekly block scoped to the owning tenant.
func (r *Postgres) DeleteSchedule(ctx context.Context, tenantID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM schedules WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to delete schedule", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("schedule not found")
	}
	return nil
}

// =============================================================================
// Schedule exceptions
// =============================================================================

const exceptionColumns = `id, tenant_id, exception_date, is_closed, open_time, close_time, reason, created_at, updated_at`

func scanException(row pgx.Row) (*domain.ScheduleException, error) {
	var e domain.ScheduleException
	err := row.Scan(&e.ID, &e.TenantID, &e.ExceptionDate, &e.IsClosed, &e.OpenTime, &e.CloseTime, &e.Reason, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load schedule exception", err)
	}
	return &e, nil
}

// GetScheduleExceptionsByDate returns the per-date overrides for the given date.
func (r *Postgres) GetScheduleExceptionsByDate(ctx context.Context, tenantID uuid.UUID, date time.Time) ([]domain.ScheduleException, error) {
	query := `SELECT ` + exceptionColumns + ` FROM schedule_exceptions WHERE tenant_id = $1 AND exception_date = $2 ORDER BY open_time NULLS FIRST`
	rows, err := r.pool.Query(ctx, query, tenantID, domain.DateString(date))
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load schedule exceptions", err)
	}
	defer rows.Close()
	return collectExceptions(rows)
}

// ListScheduleExceptions returns all of the tenant's exceptions, soonest first.
func (r *Postgres) ListScheduleExceptions(ctx context.Context, tenantID uuid.UUID) ([]domain.ScheduleException, error) {
	query := `SELECT ` + exceptionColumns + ` FROM schedule_exceptions WHERE tenant_id = $1 ORDER BY exception_date`
	rows, err := r.pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list schedule exceptions", err)
	}
	defer rows.Close()
	return collectExceptions(rows)
}

func collectExceptions(rows pgx.Rows) ([]domain.ScheduleException, error) {
	exceptions := make([]domain.ScheduleException, 0)
	for rows.Next() {
		e, err := scanException(rows)
		if err != nil {
			return nil, err
		}
		exceptions = append(exceptions, *e)
	}
	return exceptions, rows.Err()
}

// CreateScheduleException inserts a per-date override for the tenant.
func (r *Postgres) CreateScheduleException(ctx context.Context, tenantID uuid.UUID, input ExceptionInput) (*domain.ScheduleException, error) {
	query := `
		INSERT INTO schedule_exceptions (id, tenant_id, exception_date, is_closed, open_time, close_time, reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + exceptionColumns
	return scanException(r.pool.QueryRow(ctx, query,
		uuid.New(), tenantID, input.ExceptionDate, input.IsClosed, input.OpenTime, input.CloseTime, input.Reason,
	))
}

// DeleteScheduleException removes an override scoped to the owning tenant.
func (r *Postgres) DeleteScheduleException(ctx context.Context, tenantID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM schedule_exceptions WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to delete schedule exception", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("schedule exception not found")
	}
	return nil
}
