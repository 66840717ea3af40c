package booking

import (
	"net/http"
	"time"

	"shareit/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "booking not found")
	ErrInvalidPeriod    = apperror.New(http.StatusBadRequest, "end time must be after start time")
	ErrStartInPast      = apperror.New(http.StatusBadRequest, "start time cannot be in the past")
	ErrEndNotFuture     = apperror.New(http.StatusBadRequest, "end time must be in the future")
	ErrConflict         = apperror.New(http.StatusConflict, "booking period conflicts with an existing booking")
	ErrAccessDenied     = apperror.New(http.StatusForbidden, "access denied")
	ErrNotOwner         = apperror.New(http.StatusForbidden, "only the item owner may respond to a booking")
	ErrAlreadyProcessed = apperror.New(http.StatusConflict, "booking is already processed")
	ErrInvalidState     = apperror.New(http.StatusBadRequest, "unknown booking state")
)

// Status is the persisted approval status of a booking.
type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// Booking is a time-bounded reservation of an item by a booker.
// Item and booker display fields plus OwnerID are filled from joins;
// OwnerID drives the authorization checks.
type Booking struct {
	ID         string // UUID
	ItemID     string
	ItemName   string
	BookerID   string
	BookerName string
	OwnerID    string
	StartTime  time.Time
	EndTime    time.Time
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
