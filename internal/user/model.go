package user

import (
	"net/http"
	"time"

	"shareit/internal/pkg/apperror"
)

var (
	ErrNotFound      = apperror.New(http.StatusNotFound, "user not found")
	ErrEmailExists   = apperror.New(http.StatusConflict, "email already used")
	ErrEmailRequired = apperror.New(http.StatusBadRequest, "email is required")
	ErrNameRequired  = apperror.New(http.StatusBadRequest, "name is required")
)

// User represents a registered user. Only the id matters to the booking
// core; name and email are display attributes.
type User struct {
	ID        string // UUID
	Name      string
	Email     string
	CreatedAt time.Time
}
