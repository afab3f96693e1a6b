package model

import "hotelier/shared/model"

const (
	CollectionName = "notifications"
	EntityName     = "notification"

	FieldID          = "id"
	FieldKind        = "kind"
	FieldReferenceID = "reference_id"
	FieldRead        = "read"
)

type Kind string

const (
	KindBookingCreated   Kind = "BOOKING_CREATED"
	KindBookingUpdated   Kind = "BOOKING_UPDATED"
	KindBookingCancelled Kind = "BOOKING_CANCELLED"
)

type Notification struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Message     string `json:"message"`
	Kind        Kind   `json:"kind"`
	ReferenceID int64  `json:"reference_id"`
	Read        bool   `json:"read"`
	model.Metadata
}

func Identity(notification *Notification) *int64 {
	return &notification.ID
}
