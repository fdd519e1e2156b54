package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"reserva_backend/internal/booking/domain"
	"reserva_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres implements Store on top of a pgx connection pool.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres creates the production store.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

var _ Store = (*Postgres)(nil)

const tenantColumns = `id, name, slug, preferred_currency, default_language,
	slot_interval_minutes, min_booking_notice_hours, max_booking_notice_days,
	reminder_hours_prior, reminder_template_body, telegram_chat_id,
	notify_email_confirmations, notify_telegram_confirmations,
	notify_email_reminders, notify_telegram_reminders,
	payment_account_id, created_at, updated_at`

func scanTenant(row pgx.Row) (*domain.Tenant, error) {
	var t domain.Tenant
	err := row.Scan(
		&t.ID, &t.Name, &t.Slug, &t.PreferredCurrency, &t.DefaultLanguage,
		&t.SlotIntervalMinutes, &t.MinBookingNoticeHours, &t.MaxBookingNoticeDays,
		&t.ReminderHoursPrior, &t.ReminderTemplateBody, &t.TelegramChatID,
		&t.NotifyEmailConfirmations, &t.NotifyTelegramConfirmations,
		&t.NotifyEmailReminders, &t.NotifyTelegramReminders,
		&t.PaymentAccountID, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load tenant", err)
	}
	return &t, nil
}

// GetTenantByID loads a tenant by primary key.
func (r *Postgres) GetTenantByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE id = $1`
	return scanTenant(r.pool.QueryRow(ctx, query, id))
}

// GetTenantBySlug loads a tenant by its public URL slug.
func (r *Postgres) GetTenantBySlug(ctx context.Context, slug string) (*domain.Tenant, error) {
	query := `SELECT ` + tenantColumns + ` FROM tenants WHERE slug = $1`
	return scanTenant(r.pool.QueryRow(ctx, query, slug))
}

// UpdateTenantSettings applies a partial policy update and returns the fresh row.
func (r *Postgres) UpdateTenantSettings(ctx context.Context, id uuid.UUID, update TenantSettingsUpdate) (*domain.Tenant, error) {
	sets := make([]string, 0, 14)
	args := make([]interface{}, 0, 15)
	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.Name != nil {
		add("name", *update.Name)
	}
	if update.DefaultLanguage != nil {
		add("default_language", *update.DefaultLanguage)
	}
	if update.PreferredCurrency != nil {
		add("preferred_currency", *update.PreferredCurrency)
	}
	if update.SlotIntervalMinutes != nil {
		add("slot_interval_minutes", *update.SlotIntervalMinutes)
	}
	if update.MinBookingNoticeHours != nil {
		add("min_booking_notice_hours", *update.MinBookingNoticeHours)
	}
	if update.MaxBookingNoticeDays != nil {
		add("max_booking_notice_days", *update.MaxBookingNoticeDays)
	}
	if update.ReminderHoursPrior != nil {
		add("reminder_hours_prior", *update.ReminderHoursPrior)
	}
	if update.ReminderTemplateBody != nil {
		add("reminder_template_body", *update.ReminderTemplateBody)
	}
	if update.TelegramChatID != nil {
		add("telegram_chat_id", *update.TelegramChatID)
	}
	if update.NotifyEmailConfirmations != nil {
		add("notify_email_confirmations", *update.NotifyEmailConfirmations)
	}
	if update.NotifyTelegramConfirmations != nil {
		add("notify_telegram_confirmations", *update.NotifyTelegramConfirmations)
	}
	if update.NotifyEmailReminders != nil {
		add("notify_email_reminders", *update.NotifyEmailReminders)
	}
	if update.NotifyTelegramReminders != nil {
		add("notify_telegram_reminders", *update.NotifyTelegramReminders)
	}

	if len(sets) == 0 {
		return r.GetTenantByID(ctx, id)
	}

	sets = append(sets, "updated_at = now()")
	args = append(args, id)
	query := fmt.Sprintf(
		`UPDATE tenants SET %s WHERE id = $%d RETURNING `+tenantColumns,
		strings.Join(sets, ", "), len(args),
	)
	return scanTenant(r.pool.QueryRow(ctx, query, args...))
}

// =============================================================================
// Customers
// =============================================================================

const customerColumns = `id, tenant_id, name, email, phone, telegram_chat_id, created_at, updated_at`

func scanCustomer(row pgx.Row) (*domain.Customer, error) {
	var c domain.Customer
	err := row.Scan(&c.ID, &c.TenantID, &c.Name, &c.Email, &c.Phone, &c.TelegramChatID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load customer", err)
	}
	return &c, nil
}

// GetCustomerByID loads a customer by primary key.
func (r *Postgres) GetCustomerByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	return scanCustomer(r.pool.QueryRow(ctx, query, id))
}

// GetCustomerEmail returns the customer's email, or "" when the customer does
// not exist or has no email on file.
func (r *Postgres) GetCustomerEmail(ctx context.Context, id uuid.UUID) (string, error) {
	var email *string
	err := r.pool.QueryRow(ctx, `SELECT email FROM customers WHERE id = $1`, id).Scan(&email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", apperr.Wrap(apperr.KindInternal, "failed to load customer email", err)
	}
	if email == nil {
		return "", nil
	}
	return *email, nil
}

// GetCustomerTelegramID returns the customer's telegram chat ID, or "" when
// the customer does not exist or never linked telegram.
func (r *Postgres) GetCustomerTelegramID(ctx context.Context, id uuid.UUID) (string, error) {
	var chatID *string
	err := r.pool.QueryRow(ctx, `SELECT telegram_chat_id FROM customers WHERE id = $1`, id).Scan(&chatID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", apperr.Wrap(apperr.KindInternal, "failed to load customer telegram id", err)
	}
	if chatID == nil {
		return "", nil
	}
	return *chatID, nil
}

// UpsertCustomerByEmail resolves a customer by (tenant, email), creating one
// when absent. Contact details are refreshed on conflict.
func (r *Postgres) UpsertCustomerByEmail(ctx context.Context, input NewCustomer) (*domain.Customer, error) {
	query := `
		INSERT INTO customers (id, tenant_id, name, email, phone, telegram_chat_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (tenant_id, email) DO UPDATE SET
			name = EXCLUDED.name,
			phone = COALESCE(EXCLUDED.phone, customers.phone),
			telegram_chat_id = COALESCE(EXCLUDED.telegram_chat_id, customers.telegram_chat_id),
			updated_at = now()
		RETURNING ` + customerColumns
	return scanCustomer(r.pool.QueryRow(ctx, query, uuid.New(), input.TenantID, input.Name, input.Email, input.Phone, input.TelegramChatID))
}
