package http

import (
	"time"

	"shareit/internal/item"
	userHttp "shareit/internal/user/http"
)

// ItemTag holds minimal item info for embedding in other responses.
type ItemTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ItemResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Available   bool             `json:"available"`
	Owner       userHttp.UserTag `json:"owner"`
	RequestID   *string          `json:"request_id,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}

func NewItemResponse(i *item.Item) ItemResponse {
	return ItemResponse{
		ID:          i.ID,
		Name:        i.Name,
		Description: i.Description,
		Available:   i.Available,
		Owner:       userHttp.UserTag{ID: i.OwnerID, Name: i.OwnerName},
		RequestID:   i.RequestID,
		CreatedAt:   i.CreatedAt,
	}
}

type CommentResponse struct {
	ID         string    `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"author_name"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewCommentResponse(c *item.Comment) CommentResponse {
	return CommentResponse{
		ID:         c.ID,
		Text:       c.Text,
		AuthorName: c.AuthorName,
		CreatedAt:  c.CreatedAt,
	}
}

type ItemDetailsResponse struct {
	ItemResponse
	Comments []CommentResponse `json:"comments"`
}

func NewItemDetailsResponse(d *item.ItemDetails) ItemDetailsResponse {
	comments := make([]CommentResponse, len(d.Comments))
	for i, c := range d.Comments {
		comments[i] = NewCommentResponse(c)
	}
	return ItemDetailsResponse{
		ItemResponse: NewItemResponse(&d.Item),
		Comments:     comments,
	}
}

type ItemWithBookingsResponse struct {
	ItemResponse
	LastBooking *time.Time `json:"last_booking,omitempty"`
	NextBooking *time.Time `json:"next_booking,omitempty"`
}

func NewItemWithBookingsResponse(i *item.ItemWithBookings) ItemWithBookingsResponse {
	return ItemWithBookingsResponse{
		ItemResponse: NewItemResponse(&i.Item),
		LastBooking:  i.LastBooking,
		NextBooking:  i.NextBooking,
	}
}

type CreateItemBody struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Available   *bool   `json:"available" binding:"required"`
	RequestID   *string `json:"requestId" binding:"omitempty,uuid"`
}

type UpdateItemBody struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

type CreateCommentBody struct {
	Text string `json:"text" binding:"required"`
}
