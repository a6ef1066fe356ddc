package leads

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sluzebnosc-pro/lead-platform/internal/contact"
)

// PostgresRepository stores leads in the relational database.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("leads: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

// Create inserts a new row and returns the stored lead.
func (r *PostgresRepository) Create(ctx context.Context, lead *Lead) (*Lead, error) {
	id := uuid.New()
	query := `
		INSERT INTO leads (
			id, first_name, last_name, phone, email, postal_code, city,
			infrastructure, slup_params, gaz_params, status, has_kw,
			marketing_consent, source
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING created_at
	`
	infra := make([]string, len(lead.Infrastructure))
	for i, t := range lead.Infrastructure {
		infra[i] = string(t)
	}

	var createdAt time.Time
	if err := r.pool.QueryRow(ctx, query,
		id,
		lead.FirstName,
		lead.LastName,
		lead.Phone,
		lead.Email,
		lead.PostalCode,
		lead.City,
		infra,
		nullable(lead.SlupParams),
		nullable(lead.GazParams),
		nullable(string(lead.Status)),
		nullable(string(lead.HasKW)),
		lead.MarketingConsent,
		lead.Source,
	).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("leads: insert failed: %w", errors.Join(ErrStorageFailure, err))
	}

	stored := *lead
	stored.ID = id.String()
	stored.CreatedAt = createdAt
	return &stored, nil
}

// GetByID fetches a lead.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Lead, error) {
	query := `
		SELECT id, first_name, last_name, phone, email, postal_code, city,
		       infrastructure, slup_params, gaz_params, status, has_kw,
		       marketing_consent, source, created_at
		FROM leads
		WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)

	var (
		lead    Lead
		infra   []string
		slup    *string
		gaz     *string
		status  *string
		hasKW   *string
	)
	if err := row.Scan(
		&lead.ID,
		&lead.FirstName,
		&lead.LastName,
		&lead.Phone,
		&lead.Email,
		&lead.PostalCode,
		&lead.City,
		&infra,
		&slup,
		&gaz,
		&status,
		&hasKW,
		&lead.MarketingConsent,
		&lead.Source,
		&lead.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrLeadNotFound
		}
		return nil, fmt.Errorf("leads: select failed: %w", err)
	}

	lead.Infrastructure = make([]contact.InfraType, len(infra))
	for i, t := range infra {
		lead.Infrastructure[i] = contact.InfraType(t)
	}
	if slup != nil {
		lead.SlupParams = *slup
	}
	if gaz != nil {
		lead.GazParams = *gaz
	}
	if status != nil {
		lead.Status = contact.Status(*status)
	}
	if hasKW != nil {
		lead.HasKW = contact.KWAnswer(*hasKW)
	}
	return &lead, nil
}

// nullable maps "" to SQL NULL for the optional conditional fields.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
