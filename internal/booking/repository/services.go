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
)

const serviceColumns = `id, tenant_id, name_translatable, description_translatable,
	image_url, duration_minutes, price_cents, currency, created_at, updated_at`

func scanService(row pgx.Row) (*domain.Service, error) {
	var s domain.Service
	err := row.Scan(
		&s.ID, &s.TenantID, &s.Name, &s.Description,
		&s.ImageURL, &s.DurationMinutes, &s.PriceCents, &s.Currency,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load service", err)
	}
	return &s, nil
}

// GetServiceByID loads a service by primary key.
func (r *Postgres) GetServiceByID(ctx context.Context, id uuid.UUID) (*domain.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE id = $1`
	return scanService(r.pool.QueryRow(ctx, query, id))
}

// ListServicesByTenant returns all of a tenant's services, stable-ordered by
// creation time.
func (r *Postgres) ListServicesByTenant(ctx context.Context, tenantID uuid.UUID) ([]domain.Service, error) {
	query := `SELECT ` + serviceColumns + ` FROM services WHERE tenant_id = $1 ORDER BY created_at`
	rows, err := r.pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list services", err)
	}
	defer rows.Close()

	services := make([]domain.Service, 0)
	for rows.Next() {
		svc, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		services = append(services, *svc)
	}
	return services, rows.Err()
}

// CreateService inserts a new service for the tenant.
func (r *Postgres) CreateService(ctx context.Context, tenantID uuid.UUID, input ServiceInput) (*domain.Service, error) {
	query := `
		INSERT INTO services (id, tenant_id, name_translatable, description_translatable, image_url, duration_minutes, price_cents, currency)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + serviceColumns
	return scanService(r.pool.QueryRow(ctx, query,
		uuid.New(), tenantID, input.Name, input.Description,
		input.ImageURL, input.DurationMinutes, input.PriceCents, input.Currency,
	))
}

// UpdateService applies a partial update scoped to the owning tenant.
func (r *Postgres) UpdateService(ctx context.Context, tenantID, id uuid.UUID, update ServiceUpdate) (*domain.Service, error) {
	sets := make([]string, 0, 6)
	args := make([]interface{}, 0, 8)
	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.Name != nil {
		add("name_translatable", update.Name)
	}
	if update.Description != nil {
		add("description_translatable", update.Description)
	}
	if update.ImageURL != nil {
		add("image_url", *update.ImageURL)
	}
	if update.DurationMinutes != nil {
		add("duration_minutes", *update.DurationMinutes)
	}
	if update.PriceCents != nil {
		add("price_cents", *update.PriceCents)
	}
	if update.Currency != nil {
		add("currency", *update.Currency)
	}

	if len(sets) == 0 {
		return r.GetServiceByID(ctx, id)
	}

	sets = append(sets, "updated_at = now()")
	args = append(args, id, tenantID)
	query := fmt.Sprintf(
		`UPDATE services SET %s WHERE id = $%d AND tenant_id = $%d RETURNING `+serviceColumns,
		strings.Join(sets, ", "), len(args)-1, len(args),
	)
	return scanService(r.pool.QueryRow(ctx, query, args...))
}

// DeleteService removes a service scoped to the owning tenant.
func (r *Postgres) DeleteService(ctx context.Context, tenantID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM services WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "failed to delete service", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("service not found")
	}
	return nil
}
