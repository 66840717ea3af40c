package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shareit/internal/booking"
	"shareit/internal/identity"
)

type stubService struct {
	createFn        func(ctx context.Context, bookerID string, req booking.CreateRequest) (*booking.Booking, error)
	respondFn       func(ctx context.Context, callerID, bookingID string, approved bool) (*booking.Booking, error)
	getFn           func(ctx context.Context, callerID, bookingID string) (*booking.Booking, error)
	listForBookerFn func(ctx context.Context, bookerID string, st booking.State) ([]*booking.Booking, error)
	listForOwnerFn  func(ctx context.Context, ownerID string, st booking.State) ([]*booking.Booking, error)
}

func (s *stubService) Create(ctx context.Context, bookerID string, req booking.CreateRequest) (*booking.Booking, error) {
	return s.createFn(ctx, bookerID, req)
}

func (s *stubService) Respond(ctx context.Context, callerID, bookingID string, approved bool) (*booking.Booking, error) {
	return s.respondFn(ctx, callerID, bookingID, approved)
}

func (s *stubService) GetByID(ctx context.Context, callerID, bookingID string) (*booking.Booking, error) {
	return s.getFn(ctx, callerID, bookingID)
}

func (s *stubService) ListForBooker(ctx context.Context, bookerID string, st booking.State) ([]*booking.Booking, error) {
	return s.listForBookerFn(ctx, bookerID, st)
}

func (s *stubService) ListForOwner(ctx context.Context, ownerID string, st booking.State) ([]*booking.Booking, error) {
	return s.listForOwnerFn(ctx, ownerID, st)
}

var handlerNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestRouter(svc booking.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(svc)
	h.now = func() time.Time { return handlerNow }
	r := gin.New()
	RegisterRoutes(&r.RouterGroup, h, identity.Required())
	return r
}

func doRequest(t *testing.T, r *gin.Engine, method, path, callerID, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if callerID != "" {
		req.Header.Set(identity.Header, callerID)
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sampleBooking(bookerID string) *booking.Booking {
	return &booking.Booking{
		ID:         uuid.New().String(),
		ItemID:     uuid.New().String(),
		ItemName:   "drill",
		BookerID:   bookerID,
		BookerName: "booker",
		OwnerID:    uuid.New().String(),
		StartTime:  handlerNow.Add(24 * time.Hour),
		EndTime:    handlerNow.Add(48 * time.Hour),
		Status:     booking.StatusWaiting,
	}
}

func TestCreateBooking(t *testing.T) {
	callerID := uuid.New().String()
	itemID := uuid.New().String()
	start := handlerNow.Add(24 * time.Hour)
	end := handlerNow.Add(48 * time.Hour)

	var gotBooker string
	var gotReq booking.CreateRequest
	svc := &stubService{
		createFn: func(_ context.Context, bookerID string, req booking.CreateRequest) (*booking.Booking, error) {
			gotBooker = bookerID
			gotReq = req
			b := sampleBooking(bookerID)
			b.ItemID = req.ItemID
			b.StartTime = req.StartTime
			b.EndTime = req.EndTime
			return b, nil
		},
	}
	r := newTestRouter(svc)

	body := fmt.Sprintf(`{"itemId":%q,"start":%q,"end":%q}`,
		itemID, start.Format(time.RFC3339), end.Format(time.RFC3339))
	w := doRequest(t, r, http.MethodPost, "/bookings", callerID, body)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, callerID, gotBooker)
	assert.Equal(t, itemID, gotReq.ItemID)
	assert.True(t, gotReq.StartTime.Equal(start))
	assert.True(t, gotReq.EndTime.Equal(end))

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, string(booking.StatusWaiting), resp.Status)
	assert.Equal(t, itemID, resp.Item.ID)
}

func TestCreateBookingRequiresIdentity(t *testing.T) {
	r := newTestRouter(&stubService{})

	w := doRequest(t, r, http.MethodPost, "/bookings", "", `{}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(t, r, http.MethodPost, "/bookings", "not-a-uuid", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateBookingBoundaryChecks(t *testing.T) {
	r := newTestRouter(&stubService{
		createFn: func(_ context.Context, bookerID string, _ booking.CreateRequest) (*booking.Booking, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	})
	callerID := uuid.New().String()
	itemID := uuid.New().String()

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
	}{
		{"start in past", handlerNow.Add(-time.Minute), handlerNow.Add(2 * time.Hour)},
		{"end not in future", handlerNow, handlerNow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := fmt.Sprintf(`{"itemId":%q,"start":%q,"end":%q}`,
				itemID, tt.start.Format(time.RFC3339), tt.end.Format(time.RFC3339))
			w := doRequest(t, r, http.MethodPost, "/bookings", callerID, body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		})
	}
}

func TestCreateBookingErrorMapping(t *testing.T) {
	callerID := uuid.New().String()
	itemID := uuid.New().String()
	start := handlerNow.Add(24 * time.Hour)
	end := handlerNow.Add(48 * time.Hour)
	body := fmt.Sprintf(`{"itemId":%q,"start":%q,"end":%q}`,
		itemID, start.Format(time.RFC3339), end.Format(time.RFC3339))

	tests := []struct {
		err  error
		code int
	}{
		{booking.ErrConflict, http.StatusConflict},
		{booking.ErrInvalidPeriod, http.StatusBadRequest},
		{booking.ErrNotFound, http.StatusNotFound},
	}
	for _, tt := range tests {
		r := newTestRouter(&stubService{
			createFn: func(context.Context, string, booking.CreateRequest) (*booking.Booking, error) {
				return nil, tt.err
			},
		})
		w := doRequest(t, r, http.MethodPost, "/bookings", callerID, body)
		assert.Equal(t, tt.code, w.Code, w.Body.String())
	}
}

func TestRespondBooking(t *testing.T) {
	callerID := uuid.New().String()
	bookingID := uuid.New().String()

	var gotApproved bool
	svc := &stubService{
		respondFn: func(_ context.Context, caller, id string, approved bool) (*booking.Booking, error) {
			assert.Equal(t, callerID, caller)
			assert.Equal(t, bookingID, id)
			gotApproved = approved
			b := sampleBooking(uuid.New().String())
			b.ID = id
			b.Status = booking.StatusApproved
			return b, nil
		},
	}
	r := newTestRouter(svc)

	w := doRequest(t, r, http.MethodPatch, "/bookings/"+bookingID+"?approved=true", callerID, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.True(t, gotApproved)

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, string(booking.StatusApproved), resp.Status)
}

func TestRespondBookingBadInput(t *testing.T) {
	r := newTestRouter(&stubService{})
	callerID := uuid.New().String()
	bookingID := uuid.New().String()

	w := doRequest(t, r, http.MethodPatch, "/bookings/not-a-uuid?approved=true", callerID, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, r, http.MethodPatch, "/bookings/"+bookingID+"?approved=maybe", callerID, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(t, r, http.MethodPatch, "/bookings/"+bookingID, callerID, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRespondBookingErrorMapping(t *testing.T) {
	callerID := uuid.New().String()
	bookingID := uuid.New().String()

	tests := []struct {
		err  error
		code int
	}{
		{booking.ErrNotOwner, http.StatusForbidden},
		{booking.ErrAlreadyProcessed, http.StatusConflict},
		{booking.ErrNotFound, http.StatusNotFound},
	}
	for _, tt := range tests {
		r := newTestRouter(&stubService{
			respondFn: func(context.Context, string, string, bool) (*booking.Booking, error) {
				return nil, tt.err
			},
		})
		w := doRequest(t, r, http.MethodPatch, "/bookings/"+bookingID+"?approved=false", callerID, "")
		assert.Equal(t, tt.code, w.Code, w.Body.String())
	}
}

func TestGetBooking(t *testing.T) {
	callerID := uuid.New().String()
	b := sampleBooking(callerID)

	r := newTestRouter(&stubService{
		getFn: func(_ context.Context, caller, id string) (*booking.Booking, error) {
			assert.Equal(t, callerID, caller)
			assert.Equal(t, b.ID, id)
			return b, nil
		},
	})

	w := doRequest(t, r, http.MethodGet, "/bookings/"+b.ID, callerID, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, b.ID, resp.ID)
	assert.Equal(t, "drill", resp.Item.Name)
	assert.Equal(t, "booker", resp.Booker.Name)
}

func TestGetBookingAccessDenied(t *testing.T) {
	r := newTestRouter(&stubService{
		getFn: func(context.Context, string, string) (*booking.Booking, error) {
			return nil, booking.ErrAccessDenied
		},
	})

	w := doRequest(t, r, http.MethodGet, "/bookings/"+uuid.New().String(), uuid.New().String(), "")
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestListForBookerStateParam(t *testing.T) {
	callerID := uuid.New().String()

	var gotState booking.State
	r := newTestRouter(&stubService{
		listForBookerFn: func(_ context.Context, bookerID string, st booking.State) ([]*booking.Booking, error) {
			assert.Equal(t, callerID, bookerID)
			gotState = st
			return []*booking.Booking{}, nil
		},
	})

	w := doRequest(t, r, http.MethodGet, "/bookings?state=past", callerID, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, booking.StatePast, gotState)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))

	w = doRequest(t, r, http.MethodGet, "/bookings", callerID, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, booking.StateAll, gotState)
}

func TestListForBookerInvalidState(t *testing.T) {
	r := newTestRouter(&stubService{})

	w := doRequest(t, r, http.MethodGet, "/bookings?state=bogus", uuid.New().String(), "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListForOwner(t *testing.T) {
	callerID := uuid.New().String()
	b := sampleBooking(uuid.New().String())
	b.OwnerID = callerID

	r := newTestRouter(&stubService{
		listForOwnerFn: func(_ context.Context, ownerID string, st booking.State) ([]*booking.Booking, error) {
			assert.Equal(t, callerID, ownerID)
			assert.Equal(t, booking.StateWaiting, st)
			return []*booking.Booking{b}, nil
		},
	})

	w := doRequest(t, r, http.MethodGet, "/bookings/owner?state=WAITING", callerID, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp []BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp, 1)
	assert.Equal(t, b.ID, resp[0].ID)
}
