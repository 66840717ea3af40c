package http

import (
	"time"

	"shareit/internal/itemrequest"
)

type AnswerResponse struct {
	ItemID  string `json:"item_id"`
	Name    string `json:"name"`
	OwnerID string `json:"owner_id"`
}

type RequestResponse struct {
	ID            string    `json:"id"`
	Description   string    `json:"description"`
	RequestorID   string    `json:"requestor_id"`
	RequestorName string    `json:"requestor_name"`
	CreatedAt     time.Time `json:"created_at"`
}

func NewRequestResponse(r *itemrequest.ItemRequest) RequestResponse {
	return RequestResponse{
		ID:            r.ID,
		Description:   r.Description,
		RequestorID:   r.RequestorID,
		RequestorName: r.RequestorName,
		CreatedAt:     r.CreatedAt,
	}
}

type RequestWithAnswersResponse struct {
	RequestResponse
	Items []AnswerResponse `json:"items"`
}

func NewRequestWithAnswersResponse(r *itemrequest.RequestWithAnswers) RequestWithAnswersResponse {
	items := make([]AnswerResponse, len(r.Items))
	for i, a := range r.Items {
		items[i] = AnswerResponse{ItemID: a.ItemID, Name: a.Name, OwnerID: a.OwnerID}
	}
	return RequestWithAnswersResponse{
		RequestResponse: NewRequestResponse(&r.ItemRequest),
		Items:           items,
	}
}

type CreateRequestBody struct {
	Description string `json:"description" binding:"required"`
}
