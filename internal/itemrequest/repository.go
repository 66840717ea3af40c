package itemrequest

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, req *ItemRequest) error
	GetByID(ctx context.Context, id string) (*ItemRequest, error)
	ListByRequestor(ctx context.Context, requestorID string) ([]*ItemRequest, error)
	ListOthers(ctx context.Context, requestorID string) ([]*ItemRequest, error)

	// ListAnswers returns the items offered for the given requests,
	// keyed by request id.
	ListAnswers(ctx context.Context, requestIDs []string) (map[string][]Answer, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, req *ItemRequest) error {
	const query = `
		INSERT INTO public.requests (description, requestor_id)
		VALUES ($1, $2)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query, req.Description, req.RequestorID).Scan(&req.ID, &req.CreatedAt)
	if err != nil {
		return fmt.Errorf("create item request failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*ItemRequest, error) {
	const query = `
		SELECT r.id, r.description, r.requestor_id, u.name, r.created_at
		FROM public.requests r
		JOIN public.users u ON r.requestor_id = u.id
		WHERE r.id = $1
	`

	var req ItemRequest
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.Description, &req.RequestorID, &req.RequestorName, &req.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get item request failed: %w", err)
	}
	return &req, nil
}

func (r *pgxRepository) ListByRequestor(ctx context.Context, requestorID string) ([]*ItemRequest, error) {
	const query = `
		SELECT r.id, r.description, r.requestor_id, u.name, r.created_at
		FROM public.requests r
		JOIN public.users u ON r.requestor_id = u.id
		WHERE r.requestor_id = $1
		ORDER BY r.created_at DESC
	`
	return r.list(ctx, query, requestorID)
}

func (r *pgxRepository) ListOthers(ctx context.Context, requestorID string) ([]*ItemRequest, error) {
	const query = `
		SELECT r.id, r.description, r.requestor_id, u.name, r.created_at
		FROM public.requests r
		JOIN public.users u ON r.requestor_id = u.id
		WHERE r.requestor_id <> $1
		ORDER BY r.created_at DESC
	`
	return r.list(ctx, query, requestorID)
}

func (r *pgxRepository) list(ctx context.Context, query, requestorID string) ([]*ItemRequest, error) {
	rows, err := r.pool.Query(ctx, query, requestorID)
	if err != nil {
		return nil, fmt.Errorf("list item requests failed: %w", err)
	}
	defer rows.Close()

	var requests []*ItemRequest
	for rows.Next() {
		var req ItemRequest
		if err := rows.Scan(&req.ID, &req.Description, &req.RequestorID, &req.RequestorName, &req.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan item request failed: %w", err)
		}
		requests = append(requests, &req)
	}
	return requests, rows.Err()
}

func (r *pgxRepository) ListAnswers(ctx context.Context, requestIDs []string) (map[string][]Answer, error) {
	answers := make(map[string][]Answer, len(requestIDs))
	if len(requestIDs) == 0 {
		return answers, nil
	}

	const query = `
		SELECT i.request_id, i.id, i.name, i.owner_id
		FROM public.items i
		WHERE i.request_id = ANY($1)
		ORDER BY i.created_at
	`

	rows, err := r.pool.Query(ctx, query, requestIDs)
	if err != nil {
		return nil, fmt.Errorf("list request answers failed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var requestID string
		var a Answer
		if err := rows.Scan(&requestID, &a.ItemID, &a.Name, &a.OwnerID); err != nil {
			return nil, fmt.Errorf("scan request answer failed: %w", err)
		}
		answers[requestID] = append(answers[requestID], a)
	}
	return answers, rows.Err()
}
