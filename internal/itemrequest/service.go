package itemrequest

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"shareit/internal/user"
)

// UserDirectory is the slice of the user module this package consumes.
type UserDirectory interface {
	GetByID(ctx context.Context, id string) (*user.User, error)
}

type Service interface {
	Create(ctx context.Context, requestorID, description string) (*ItemRequest, error)
	GetByID(ctx context.Context, id string) (*RequestWithAnswers, error)
	ListOwn(ctx context.Context, requestorID string) ([]*RequestWithAnswers, error)
	ListOthers(ctx context.Context, requestorID string) ([]*ItemRequest, error)
}

type service struct {
	repo  Repository
	users UserDirectory
	log   *zap.Logger
}

func NewService(repo Repository, users UserDirectory, log *zap.Logger) Service {
	return &service{repo: repo, users: users, log: log}
}

func (s *service) Create(ctx context.Context, requestorID, description string) (*ItemRequest, error) {
	if strings.TrimSpace(description) == "" {
		return nil, ErrDescriptionRequired
	}

	requestor, err := s.users.GetByID(ctx, requestorID)
	if err != nil {
		return nil, err
	}

	req := &ItemRequest{
		Description:   description,
		RequestorID:   requestor.ID,
		RequestorName: requestor.Name,
	}
	if err := s.repo.Create(ctx, req); err != nil {
		return nil, err
	}

	s.log.Info("item request created", zap.String("request_id", req.ID), zap.String("requestor_id", requestorID))
	return req, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*RequestWithAnswers, error) {
	req, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	answers, err := s.repo.ListAnswers(ctx, []string{req.ID})
	if err != nil {
		return nil, err
	}

	return &RequestWithAnswers{ItemRequest: *req, Items: answers[req.ID]}, nil
}

func (s *service) ListOwn(ctx context.Context, requestorID string) ([]*RequestWithAnswers, error) {
	if _, err := s.users.GetByID(ctx, requestorID); err != nil {
		return nil, err
	}

	requests, err := s.repo.ListByRequestor(ctx, requestorID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(requests))
	for i, req := range requests {
		ids[i] = req.ID
	}

	answers, err := s.repo.ListAnswers(ctx, ids)
	if err != nil {
		return nil, err
	}

	result := make([]*RequestWithAnswers, len(requests))
	for i, req := range requests {
		result[i] = &RequestWithAnswers{ItemRequest: *req, Items: answers[req.ID]}
	}
	return result, nil
}

func (s *service) ListOthers(ctx context.Context, requestorID string) ([]*ItemRequest, error) {
	if _, err := s.users.GetByID(ctx, requestorID); err != nil {
		return nil, err
	}
	return s.repo.ListOthers(ctx, requestorID)
}
