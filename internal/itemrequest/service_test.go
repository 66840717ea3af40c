package itemrequest

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"shareit/internal/user"
)

type fakeRepository struct {
	requests map[string]*ItemRequest
	answers  map[string][]Answer
	clock    time.Time
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		requests: make(map[string]*ItemRequest),
		answers:  make(map[string][]Answer),
		clock:    time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (r *fakeRepository) Create(_ context.Context, req *ItemRequest) error {
	req.ID = uuid.New().String()
	req.CreatedAt = r.clock
	r.clock = r.clock.Add(time.Minute)
	stored := *req
	r.requests[req.ID] = &stored
	return nil
}

func (r *fakeRepository) GetByID(_ context.Context, id string) (*ItemRequest, error) {
	req, ok := r.requests[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *req
	return &copied, nil
}

func (r *fakeRepository) listSorted(match func(*ItemRequest) bool) []*ItemRequest {
	result := []*ItemRequest{}
	for _, req := range r.requests {
		if match(req) {
			copied := *req
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result
}

func (r *fakeRepository) ListByRequestor(_ context.Context, requestorID string) ([]*ItemRequest, error) {
	return r.listSorted(func(req *ItemRequest) bool { return req.RequestorID == requestorID }), nil
}

func (r *fakeRepository) ListOthers(_ context.Context, requestorID string) ([]*ItemRequest, error) {
	return r.listSorted(func(req *ItemRequest) bool { return req.RequestorID != requestorID }), nil
}

func (r *fakeRepository) ListAnswers(_ context.Context, requestIDs []string) (map[string][]Answer, error) {
	result := make(map[string][]Answer)
	for _, id := range requestIDs {
		if answers, ok := r.answers[id]; ok {
			result[id] = answers
		}
	}
	return result, nil
}

type fakeUsers struct {
	users map[string]*user.User
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

type fixture struct {
	repo    *fakeRepository
	service Service

	requestorID string
	otherID     string
}

func newFixture() *fixture {
	requestorID := uuid.New().String()
	otherID := uuid.New().String()

	repo := newFakeRepository()
	users := &fakeUsers{users: map[string]*user.User{
		requestorID: {ID: requestorID, Name: "requestor"},
		otherID:     {ID: otherID, Name: "neighbor"},
	}}

	return &fixture{
		repo:        repo,
		service:     NewService(repo, users, zap.NewNop()),
		requestorID: requestorID,
		otherID:     otherID,
	}
}

func TestCreateRequest(t *testing.T) {
	f := newFixture()

	req, err := f.service.Create(context.Background(), f.requestorID, "need a ladder")
	require.NoError(t, err)
	assert.NotEmpty(t, req.ID)
	assert.Equal(t, "requestor", req.RequestorName)
}

func TestCreateRequestValidation(t *testing.T) {
	f := newFixture()

	_, err := f.service.Create(context.Background(), f.requestorID, "  ")
	assert.ErrorIs(t, err, ErrDescriptionRequired)

	_, err = f.service.Create(context.Background(), uuid.New().String(), "need a ladder")
	assert.ErrorIs(t, err, user.ErrNotFound)
}

func TestGetByIDIncludesAnswers(t *testing.T) {
	f := newFixture()

	req, err := f.service.Create(context.Background(), f.requestorID, "need a ladder")
	require.NoError(t, err)

	f.repo.answers[req.ID] = []Answer{{ItemID: uuid.New().String(), Name: "ladder", OwnerID: f.otherID}}

	got, err := f.service.GetByID(context.Background(), req.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "ladder", got.Items[0].Name)
}

func TestGetByIDUnknown(t *testing.T) {
	f := newFixture()

	_, err := f.service.GetByID(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListOwnNewestFirst(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	first, err := f.service.Create(ctx, f.requestorID, "need a ladder")
	require.NoError(t, err)
	second, err := f.service.Create(ctx, f.requestorID, "need a drill")
	require.NoError(t, err)
	_, err = f.service.Create(ctx, f.otherID, "need a tent")
	require.NoError(t, err)

	own, err := f.service.ListOwn(ctx, f.requestorID)
	require.NoError(t, err)
	require.Len(t, own, 2)
	assert.Equal(t, second.ID, own[0].ID)
	assert.Equal(t, first.ID, own[1].ID)
}

func TestListOthersExcludesOwn(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.service.Create(ctx, f.requestorID, "need a ladder")
	require.NoError(t, err)
	theirs, err := f.service.Create(ctx, f.otherID, "need a tent")
	require.NoError(t, err)

	others, err := f.service.ListOthers(ctx, f.requestorID)
	require.NoError(t, err)
	require.Len(t, others, 1)
	assert.Equal(t, theirs.ID, others[0].ID)
}

func TestListUnknownUser(t *testing.T) {
	f := newFixture()
	unknown := uuid.New().String()

	_, err := f.service.ListOwn(context.Background(), unknown)
	assert.ErrorIs(t, err, user.ErrNotFound)

	_, err = f.service.ListOthers(context.Background(), unknown)
	assert.ErrorIs(t, err, user.ErrNotFound)
}
