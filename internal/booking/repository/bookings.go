package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"reserva_backend/internal/booking/domain"
	"reserva_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const bookingColumns = `id, tenant_id, service_id, customer_id, start_time, end_time,
	status, payment_status, payment_intent_id, management_token,
	confirmation_sent_at, reminder_sent_at, created_at, updated_at`

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking
	err := row.Scan(
		&b.ID, &b.TenantID, &b.ServiceID, &b.CustomerID, &b.StartTime, &b.EndTime,
		&b.Status, &b.PaymentStatus, &b.PaymentIntentID, &b.ManagementToken,
		&b.ConfirmationSentAt, &b.ReminderSentAt, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load booking", err)
	}
	return &b, nil
}

func collectBookings(rows pgx.Rows) ([]domain.Booking, error) {
	bookings := make([]domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *b)
	}
	return bookings, rows.Err()
}

// GetBookingsByDate returns every booking starting within the date's local
// day, cancelled ones included. The availability engine filters status itself.
func (r *Postgres) GetBookingsByDate(ctx context.Context, tenantID uuid.UUID, date time.Time) ([]domain.Booking, error) {
	dayStart := domain.StartOfDay(date)
	dayEnd := domain.EndOfDay(date)

	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE tenant_id = $1 AND start_time >= $2 AND start_time <= $3
		ORDER BY start_time`
	rows, err := r.pool.Query(ctx, query, tenantID, dayStart, dayEnd)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load bookings for date", err)
	}
	defer rows.Close()
	return collectBookings(rows)
}

// GetBookingByID loads a booking by primary key.
func (r *Postgres) GetBookingByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	return scanBooking(r.pool.QueryRow(ctx, query, id))
}

// ListBookings returns the tenant's bookings narrowed by the filter, soonest
// first.
func (r *Postgres) ListBookings(ctx context.Context, tenantID uuid.UUID, filter BookingFilter) ([]domain.Booking, error) {
	conditions := []string{"tenant_id = $1"}
	args := []interface{}{tenantID}

	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		conditions = append(conditions, fmt.Sprintf("start_time >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		conditions = append(conditions, fmt.Sprintf("start_time <= $%d", len(args)))
	}

	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE ` + strings.Join(conditions, " AND ") + ` ORDER BY start_time`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list bookings", err)
	}
	defer rows.Close()
	return collectBookings(rows)
}

// CreateBooking persists a new booking and returns the stored row.
func (r *Postgres) CreateBooking(ctx context.Context, input NewBooking) (*domain.Booking, error) {
	query := `
		INSERT INTO bookings (id, tenant_id, service_id, customer_id, start_time, end_time, status, payment_status, management_token)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + bookingColumns
	return scanBooking(r.pool.QueryRow(ctx, query,
		uuid.New(), input.TenantID, input.ServiceID, input.CustomerID,
		input.StartTime, input.EndTime, input.Status, input.PaymentStatus, input.ManagementToken,
	))
}

// UpdateBooking applies a partial update and returns the fresh row.
func (r *Postgres) UpdateBooking(ctx context.Context, id uuid.UUID, update BookingUpdate) (*domain.Booking, error) {
	sets := make([]string, 0, 5)
	args := make([]interface{}, 0, 6)
	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.Status != nil {
		add("status", *update.Status)
	}
	if update.PaymentStatus != nil {
		add("payment_status", *update.PaymentStatus)
	}
	if update.PaymentIntentID != nil {
		add("payment_intent_id", *update.PaymentIntentID)
	}
	if update.ConfirmationSentAt != nil {
		add("confirmation_sent_at", *update.ConfirmationSentAt)
	}
	if update.ReminderSentAt != nil {
		add("reminder_sent_at", *update.ReminderSentAt)
	}

	if len(sets) == 0 {
		return r.GetBookingByID(ctx, id)
	}

	sets = append(sets, "updated_at = now()")
	args = append(args, id)
	query := fmt.Sprintf(
		`UPDATE bookings SET %s WHERE id = $%d RETURNING `+bookingColumns,
		strings.Join(sets, ", "), len(args),
	)
	return scanBooking(r.pool.QueryRow(ctx, query, args...))
}

// GetPendingReminders returns confirmed bookings starting in (now, until]
// that have not had a reminder sent yet. The per-tenant reminder window is
// applied by the reminder service, not here.
func (r *Postgres) GetPendingReminders(ctx context.Context, now, until time.Time) ([]domain.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE status = $1 AND reminder_sent_at IS NULL AND start_time > $2 AND start_time <= $3
		ORDER BY start_time`
	rows, err := r.pool.Query(ctx, query, domain.BookingStatusConfirmed, now, until)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load pending reminders", err)
	}
	defer rows.Close()
	return collectBookings(rows)
}
