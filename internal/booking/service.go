package booking

import (
	"context"
	"time"

	"go.uber.org/zap"

	"shareit/internal/item"
	"shareit/internal/user"
)

type CreateRequest struct {
	ItemID    string
	StartTime time.Time
	EndTime   time.Time
}

// UserDirectory is the narrow slice of the user module the booking core
// consumes: identity resolution only.
type UserDirectory interface {
	GetByID(ctx context.Context, id string) (*user.User, error)
}

// ItemCatalog is the narrow slice of the item module the booking core
// consumes: availability flag and owner id.
type ItemCatalog interface {
	GetByID(ctx context.Context, id string) (*item.Item, error)
}

type Service interface {
	// Create admits a booking request: booker and item must exist, the item
	// must be available, the period well-formed, and no existing booking of
	// the item may overlap it. Admitted bookings start in WAITING.
	Create(ctx context.Context, bookerID string, req CreateRequest) (*Booking, error)

	// Respond approves or rejects a waiting booking. Only the item owner
	// may respond, and only once.
	Respond(ctx context.Context, callerID, bookingID string, approved bool) (*Booking, error)

	// GetByID returns the booking to its booker or the item owner.
	GetByID(ctx context.Context, callerID, bookingID string) (*Booking, error)

	ListForBooker(ctx context.Context, bookerID string, st State) ([]*Booking, error)
	ListForOwner(ctx context.Context, ownerID string, st State) ([]*Booking, error)
}

type service struct {
	repo  Repository
	users UserDirectory
	items ItemCatalog
	now   func() time.Time
	log   *zap.Logger
}

func NewService(repo Repository, users UserDirectory, items ItemCatalog, log *zap.Logger) Service {
	return &service{
		repo:  repo,
		users: users,
		items: items,
		now:   time.Now,
		log:   log,
	}
}

func (s *service) Create(ctx context.Context, bookerID string, req CreateRequest) (*Booking, error) {
	booker, err := s.users.GetByID(ctx, bookerID)
	if err != nil {
		return nil, err
	}

	it, err := s.items.GetByID(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}

	if !it.Available {
		s.log.Warn("booking refused, item unavailable",
			zap.String("item_id", it.ID),
			zap.String("booker_id", bookerID),
		)
		return nil, item.ErrUnavailable
	}

	if !req.EndTime.After(req.StartTime) {
		return nil, ErrInvalidPeriod
	}

	overlap, err := s.repo.HasOverlap(ctx, it.ID, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	if overlap {
		s.log.Warn("booking refused, period conflict",
			zap.String("item_id", it.ID),
			zap.Time("start", req.StartTime),
			zap.Time("end", req.EndTime),
		)
		return nil, ErrConflict
	}

	b := &Booking{
		ItemID:     it.ID,
		ItemName:   it.Name,
		BookerID:   booker.ID,
		BookerName: booker.Name,
		OwnerID:    it.OwnerID,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Status:     StatusWaiting,
	}

	// The pre-check above is the fast path; the interval exclusion
	// constraint behind Create decides races between concurrent admissions.
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	s.log.Info("booking created",
		zap.String("booking_id", b.ID),
		zap.String("item_id", it.ID),
		zap.String("booker_id", bookerID),
	)
	return b, nil
}

func (s *service) Respond(ctx context.Context, callerID, bookingID string, approved bool) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if b.OwnerID != callerID {
		s.log.Warn("booking response denied, caller is not the item owner",
			zap.String("booking_id", bookingID),
			zap.String("caller_id", callerID),
		)
		return nil, ErrNotOwner
	}

	// A booking leaves WAITING exactly once; APPROVED and REJECTED are
	// terminal. This check is the fast path, the conditional update in
	// UpdateStatus decides races between concurrent responders.
	if b.Status != StatusWaiting {
		s.log.Warn("booking already processed",
			zap.String("booking_id", bookingID),
			zap.String("status", string(b.Status)),
		)
		return nil, ErrAlreadyProcessed
	}

	status := StatusRejected
	if approved {
		status = StatusApproved
	}

	if err := s.repo.UpdateStatus(ctx, bookingID, status); err != nil {
		return nil, err
	}
	b.Status = status

	s.log.Info("booking responded",
		zap.String("booking_id", bookingID),
		zap.String("status", string(status)),
	)
	return b, nil
}

func (s *service) GetByID(ctx context.Context, callerID, bookingID string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if callerID != b.BookerID && callerID != b.OwnerID {
		s.log.Warn("booking view denied",
			zap.String("booking_id", bookingID),
			zap.String("caller_id", callerID),
		)
		return nil, ErrAccessDenied
	}
	return b, nil
}

func (s *service) ListForBooker(ctx context.Context, bookerID string, st State) ([]*Booking, error) {
	if _, err := s.users.GetByID(ctx, bookerID); err != nil {
		return nil, err
	}
	return s.repo.ListForBooker(ctx, bookerID, st, s.now())
}

func (s *service) ListForOwner(ctx context.Context, ownerID string, st State) ([]*Booking, error) {
	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}
	// An owner with no matching reservations gets an empty list, same as
	// the booker view.
	return s.repo.ListForOwner(ctx, ownerID, st, s.now())
}
