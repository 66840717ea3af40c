package item

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines storage access for items and their comments.
// Booking dates are read straight from the bookings table so the item
// package stays independent of the booking package.
type Repository interface {
	Create(ctx context.Context, i *Item) error
	GetByID(ctx context.Context, id string) (*Item, error)
	Update(ctx context.Context, i *Item) error
	ListByOwner(ctx context.Context, ownerID string, now time.Time) ([]*ItemWithBookings, error)
	Search(ctx context.Context, text string) ([]*Item, error)
	CreateComment(ctx context.Context, c *Comment) error
	ListComments(ctx context.Context, itemID string) ([]*Comment, error)

	// HasCompletedBooking reports whether the user has a booking of the
	// item that already ended. Gates comment creation.
	HasCompletedBooking(ctx context.Context, itemID, userID string, now time.Time) (bool, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, i *Item) error {
	const query = `
		INSERT INTO public.items (name, description, available, owner_id, request_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query,
		i.Name, i.Description, i.Available, i.OwnerID, i.RequestID,
	).Scan(&i.ID, &i.CreatedAt)
	if err != nil {
		return fmt.Errorf("create item failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Item, error) {
	const query = `
		SELECT i.id, i.name, i.description, i.available, i.owner_id, u.name, i.request_id, i.created_at
		FROM public.items i
		JOIN public.users u ON i.owner_id = u.id
		WHERE i.id = $1
	`

	var i Item
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&i.ID, &i.Name, &i.Description, &i.Available, &i.OwnerID, &i.OwnerName, &i.RequestID, &i.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get item failed: %w", err)
	}
	return &i, nil
}

func (r *pgxRepository) Update(ctx context.Context, i *Item) error {
	const query = `
		UPDATE public.items
		SET name = $1, description = $2, available = $3
		WHERE id = $4
	`

	ct, err := r.pool.Exec(ctx, query, i.Name, i.Description, i.Available, i.ID)
	if err != nil {
		return fmt.Errorf("update item failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) ListByOwner(ctx context.Context, ownerID string, now time.Time) ([]*ItemWithBookings, error) {
	// Closest booking dates consider approved bookings only.
	const query = `
		SELECT i.id, i.name, i.description, i.available, i.owner_id, u.name, i.request_id, i.created_at,
			(SELECT max(b.end_date) FROM public.bookings b
			 WHERE b.item_id = i.id AND b.status = 'APPROVED' AND b.end_date <= $2),
			(SELECT min(b.start_date) FROM public.bookings b
			 WHERE b.item_id = i.id AND b.status = 'APPROVED' AND b.start_date > $2)
		FROM public.items i
		JOIN public.users u ON i.owner_id = u.id
		WHERE i.owner_id = $1
		ORDER BY i.created_at
	`

	rows, err := r.pool.Query(ctx, query, ownerID, now)
	if err != nil {
		return nil, fmt.Errorf("list items failed: %w", err)
	}
	defer rows.Close()

	var items []*ItemWithBookings
	for rows.Next() {
		var i ItemWithBookings
		if err := rows.Scan(
			&i.ID, &i.Name, &i.Description, &i.Available, &i.OwnerID, &i.OwnerName, &i.RequestID, &i.CreatedAt,
			&i.LastBooking, &i.NextBooking,
		); err != nil {
			return nil, fmt.Errorf("scan item failed: %w", err)
		}
		items = append(items, &i)
	}
	return items, rows.Err()
}

func (r *pgxRepository) Search(ctx context.Context, text string) ([]*Item, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	pattern := "%" + text + "%"

	query, args, err := psql.Select(
		"i.id", "i.name", "i.description", "i.available", "i.owner_id", "u.name", "i.request_id", "i.created_at",
	).
		From("public.items i").
		Join("public.users u ON i.owner_id = u.id").
		Where(squirrel.Eq{"i.available": true}).
		Where(squirrel.Or{
			squirrel.ILike{"i.name": pattern},
			squirrel.ILike{"i.description": pattern},
		}).
		OrderBy("i.created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build search query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search items failed: %w", err)
	}
	defer rows.Close()

	var items []*Item
	for rows.Next() {
		var i Item
		if err := rows.Scan(
			&i.ID, &i.Name, &i.Description, &i.Available, &i.OwnerID, &i.OwnerName, &i.RequestID, &i.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan item failed: %w", err)
		}
		items = append(items, &i)
	}
	return items, rows.Err()
}

func (r *pgxRepository) CreateComment(ctx context.Context, c *Comment) error {
	const query = `
		INSERT INTO public.comments (text, item_id, author_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := r.pool.QueryRow(ctx, query, c.Text, c.ItemID, c.AuthorID).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("create comment failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) ListComments(ctx context.Context, itemID string) ([]*Comment, error) {
	const query = `
		SELECT c.id, c.text, c.item_id, c.author_id, u.name, c.created_at
		FROM public.comments c
		JOIN public.users u ON c.author_id = u.id
		WHERE c.item_id = $1
		ORDER BY c.created_at
	`

	rows, err := r.pool.Query(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("list comments failed: %w", err)
	}
	defer rows.Close()

	var comments []*Comment
	for rows.Next() {
		var c Comment
		if err := rows.Scan(&c.ID, &c.Text, &c.ItemID, &c.AuthorID, &c.AuthorName, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan comment failed: %w", err)
		}
		comments = append(comments, &c)
	}
	return comments, rows.Err()
}

func (r *pgxRepository) HasCompletedBooking(ctx context.Context, itemID, userID string, now time.Time) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM public.bookings
			WHERE item_id = $1 AND booker_id = $2 AND end_date < $3
		)
	`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, itemID, userID, now).Scan(&exists); err != nil {
		return false, fmt.Errorf("check completed booking failed: %w", err)
	}
	return exists, nil
}
