package http

import (
	"time"

	"shareit/internal/booking"
	itemHttp "shareit/internal/item/http"
	userHttp "shareit/internal/user/http"
)

type BookingResponse struct {
	ID        string           `json:"id"`
	Start     time.Time        `json:"start"`
	End       time.Time        `json:"end"`
	Status    string           `json:"status"`
	Item      itemHttp.ItemTag `json:"item"`
	Booker    userHttp.UserTag `json:"booker"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:        b.ID,
		Start:     b.StartTime,
		End:       b.EndTime,
		Status:    string(b.Status),
		Item:      itemHttp.ItemTag{ID: b.ItemID, Name: b.ItemName},
		Booker:    userHttp.UserTag{ID: b.BookerID, Name: b.BookerName},
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

type CreateBookingBody struct {
	ItemID string    `json:"itemId" binding:"required,uuid"`
	Start  time.Time `json:"start" binding:"required"`
	End    time.Time `json:"end" binding:"required"`
}

// Normalize truncates the requested period to minute precision, the
// granularity of the booking wire contract.
func (r *CreateBookingBody) Normalize() {
	r.Start = r.Start.Truncate(time.Minute)
	r.End = r.End.Truncate(time.Minute)
}

// Validate applies the boundary pre-checks: the period may not start in
// the past and must end strictly in the future. Period ordering and
// conflicts are the admission logic's concern.
func (r *CreateBookingBody) Validate(now time.Time) error {
	if r.Start.Before(now.Truncate(time.Minute)) {
		return booking.ErrStartInPast
	}
	if !r.End.After(now) {
		return booking.ErrEndNotFuture
	}
	return nil
}
