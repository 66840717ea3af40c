package itemrequest

import (
	"net/http"
	"time"

	"shareit/internal/pkg/apperror"
)

var (
	ErrNotFound            = apperror.New(http.StatusNotFound, "item request not found")
	ErrDescriptionRequired = apperror.New(http.StatusBadRequest, "description is required")
)

// ItemRequest is a wish for an item nobody has listed yet. Owners answer
// by creating an item that references the request.
type ItemRequest struct {
	ID            string
	Description   string
	RequestorID   string
	RequestorName string
	CreatedAt     time.Time
}

// Answer is an item offered in response to a request.
type Answer struct {
	ItemID  string
	Name    string
	OwnerID string
}

// RequestWithAnswers is the read projection joining a request with the
// items offered for it.
type RequestWithAnswers struct {
	ItemRequest
	Items []Answer
}
