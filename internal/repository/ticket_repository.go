package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/support-desk/internal/domain"
)

// TicketRepository encapsulates ticket persistence.
//
// Update is optimistic: it matches on the ticket's version and bumps it, so a
// lost race surfaces as ErrVersionConflict instead of silently overwriting.
// SetSupportResponded is deliberately separate: the latch write must be a
// single one-way statement so that concurrent commenters can never observe a
// reset, regardless of interleaving.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	Update(ctx context.Context, ticket *domain.Ticket) error
	SetSupportResponded(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) (*domain.Ticket, error)
	ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]domain.Ticket, error)
	ListClosedBetween(ctx context.Context, from, to time.Time) ([]domain.Ticket, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

const ticketColumns = `id, issue, owner_id, status, support_responded, version, created_at, updated_at`

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (issue, owner_id, status, support_responded)
        VALUES ($1,$2,$3,$4)
        RETURNING id, version, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		ticket.Issue,
		ticket.OwnerID,
		ticket.Status,
		ticket.SupportResponded,
	).Scan(&ticket.ID, &ticket.Version, &ticket.CreatedAt, &ticket.UpdatedAt)
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	const query = `SELECT ` + ticketColumns + ` FROM tickets WHERE id=$1`
	var ticket domain.Ticket
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&ticket.ID,
		&ticket.Issue,
		&ticket.OwnerID,
		&ticket.Status,
		&ticket.SupportResponded,
		&ticket.Version,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) Update(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        UPDATE tickets SET issue=$1, status=$2, version=version+1, updated_at=NOW()
        WHERE id=$3 AND version=$4
        RETURNING version, updated_at`
	err := r.pool.QueryRow(ctx, query,
		ticket.Issue,
		ticket.Status,
		ticket.ID,
		ticket.Version,
	).Scan(&ticket.Version, &ticket.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		// Either the row is gone or someone updated it first.
		if _, getErr := r.GetByID(ctx, ticket.ID); getErr != nil {
			return getErr
		}
		return ErrVersionConflict
	}
	return err
}

func (r *ticketRepository) SetSupportResponded(ctx context.Context, id string) error {
	const query = `
        UPDATE tickets SET support_responded=TRUE, updated_at=NOW()
        WHERE id=$1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ticketRepository) Delete(ctx context.Context, id string) (*domain.Ticket, error) {
	const query = `DELETE FROM tickets WHERE id=$1 RETURNING ` + ticketColumns
	var ticket domain.Ticket
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&ticket.ID,
		&ticket.Issue,
		&ticket.OwnerID,
		&ticket.Status,
		&ticket.SupportResponded,
		&ticket.Version,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]domain.Ticket, error) {
	const query = `
        SELECT ` + ticketColumns + `
        FROM tickets WHERE owner_id=$1
        ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.pool.Query(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func (r *ticketRepository) ListClosedBetween(ctx context.Context, from, to time.Time) ([]domain.Ticket, error) {
	const query = `
        SELECT ` + ticketColumns + `
        FROM tickets WHERE status=$1 AND created_at >= $2 AND created_at <= $3
        ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, domain.TicketStatusClosed, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		if err := rows.Scan(
			&ticket.ID,
			&ticket.Issue,
			&ticket.OwnerID,
			&ticket.Status,
			&ticket.SupportResponded,
			&ticket.Version,
			&ticket.CreatedAt,
			&ticket.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}
