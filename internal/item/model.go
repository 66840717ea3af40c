package item

import (
	"net/http"
	"time"

	"shareit/internal/pkg/apperror"
)

var (
	ErrNotFound          = apperror.New(http.StatusNotFound, "item not found")
	ErrAccessDenied      = apperror.New(http.StatusForbidden, "access denied, you didn't create this item")
	ErrUnavailable       = apperror.New(http.StatusBadRequest, "item is not available")
	ErrCommentNotAllowed = apperror.New(http.StatusBadRequest, "commenting requires a completed booking of the item")
	ErrCommentEmpty      = apperror.New(http.StatusBadRequest, "comment text is required")
)

// Item is a thing a user offers for sharing. The booking core reads only
// OwnerID and Available.
type Item struct {
	ID          string // UUID
	Name        string
	Description string
	Available   bool
	OwnerID     string
	OwnerName   string
	RequestID   *string // set when the item answers an item request
	CreatedAt   time.Time
}

// Comment is feedback left by a user who completed a booking of the item.
type Comment struct {
	ID         string
	Text       string
	ItemID     string
	AuthorID   string
	AuthorName string
	CreatedAt  time.Time
}

// ItemWithBookings decorates an item with the closest booking dates,
// shown on the owner's item list.
type ItemWithBookings struct {
	Item
	LastBooking *time.Time
	NextBooking *time.Time
}
