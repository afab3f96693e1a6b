package model

import "hotelier/shared/model"

const (
	CollectionName = "feedback"
	EntityName     = "feedback"

	FieldID         = "id"
	FieldCustomerID = "customer_id"
	FieldBookingID  = "booking_id"
	FieldRating     = "rating"
	FieldStatus     = "status"
)

type Status string

const (
	StatusNew      Status = "NEW"
	StatusReviewed Status = "REVIEWED"
)

type Feedback struct {
	ID         int64  `json:"id"`
	CustomerID int64  `json:"customer_id"`
	BookingID  *int64 `json:"booking_id"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment"`
	Status     Status `json:"status"`
	model.Metadata
}

func Identity(feedback *Feedback) *int64 {
	return &feedback.ID
}
