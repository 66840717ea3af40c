package item

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"shareit/internal/user"
)

type CreateRequest struct {
	Name        string
	Description string
	Available   bool
	RequestID   *string
}

// UpdateRequest carries a partial update; nil fields are left untouched.
type UpdateRequest struct {
	Name        *string
	Description *string
	Available   *bool
}

// ItemDetails is the single-item read projection: the item plus its comments.
type ItemDetails struct {
	Item
	Comments []*Comment
}

// UserDirectory is the slice of the user module this package consumes.
type UserDirectory interface {
	GetByID(ctx context.Context, id string) (*user.User, error)
}

type Service interface {
	Create(ctx context.Context, ownerID string, req CreateRequest) (*Item, error)
	Update(ctx context.Context, itemID, callerID string, req UpdateRequest) (*Item, error)
	GetByID(ctx context.Context, id string) (*Item, error)
	GetDetails(ctx context.Context, id string) (*ItemDetails, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*ItemWithBookings, error)
	Search(ctx context.Context, text string) ([]*Item, error)
	AddComment(ctx context.Context, itemID, authorID, text string) (*Comment, error)
}

type service struct {
	repo  Repository
	users UserDirectory
	now   func() time.Time
	log   *zap.Logger
}

func NewService(repo Repository, users UserDirectory, log *zap.Logger) Service {
	return &service{
		repo:  repo,
		users: users,
		now:   time.Now,
		log:   log,
	}
}

func (s *service) Create(ctx context.Context, ownerID string, req CreateRequest) (*Item, error) {
	owner, err := s.users.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	i := &Item{
		Name:        req.Name,
		Description: req.Description,
		Available:   req.Available,
		OwnerID:     owner.ID,
		OwnerName:   owner.Name,
		RequestID:   req.RequestID,
	}
	if err := s.repo.Create(ctx, i); err != nil {
		return nil, err
	}

	s.log.Info("item created", zap.String("item_id", i.ID), zap.String("owner_id", ownerID))
	return i, nil
}

func (s *service) Update(ctx context.Context, itemID, callerID string, req UpdateRequest) (*Item, error) {
	i, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if i.OwnerID != callerID {
		s.log.Warn("item update denied",
			zap.String("item_id", itemID),
			zap.String("caller_id", callerID),
		)
		return nil, ErrAccessDenied
	}

	if req.Name != nil {
		i.Name = *req.Name
	}
	if req.Description != nil {
		i.Description = *req.Description
	}
	if req.Available != nil {
		i.Available = *req.Available
	}

	if err := s.repo.Update(ctx, i); err != nil {
		return nil, err
	}
	return i, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Item, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetDetails(ctx context.Context, id string) (*ItemDetails, error) {
	i, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	comments, err := s.repo.ListComments(ctx, id)
	if err != nil {
		return nil, err
	}

	return &ItemDetails{Item: *i, Comments: comments}, nil
}

func (s *service) ListByOwner(ctx context.Context, ownerID string) ([]*ItemWithBookings, error) {
	if _, err := s.users.GetByID(ctx, ownerID); err != nil {
		return nil, err
	}
	return s.repo.ListByOwner(ctx, ownerID, s.now())
}

func (s *service) Search(ctx context.Context, text string) ([]*Item, error) {
	if strings.TrimSpace(text) == "" {
		return []*Item{}, nil
	}
	return s.repo.Search(ctx, text)
}

func (s *service) AddComment(ctx context.Context, itemID, authorID, text string) (*Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrCommentEmpty
	}

	author, err := s.users.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.GetByID(ctx, itemID); err != nil {
		return nil, err
	}

	booked, err := s.repo.HasCompletedBooking(ctx, itemID, authorID, s.now())
	if err != nil {
		return nil, err
	}
	if !booked {
		return nil, ErrCommentNotAllowed
	}

	c := &Comment{
		Text:       text,
		ItemID:     itemID,
		AuthorID:   author.ID,
		AuthorName: author.Name,
	}
	if err := s.repo.CreateComment(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}
