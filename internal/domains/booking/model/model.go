package model

import (
	"fmt"
	"hotelier/shared/model"
	"time"
)

const (
	CollectionName = "bookings"
	EntityName     = "booking"

	FieldID         = "id"
	FieldCode       = "code"
	FieldCustomerID = "customer_id"
	FieldRoomID     = "room_id"
	FieldChannelID  = "channel_id"
	FieldCheckIn    = "check_in"
	FieldCheckOut   = "check_out"
	FieldStatus     = "status"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
	StatusCompleted Status = "COMPLETED"
)

var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

// Active bookings hold their room.
func (s Status) Active() bool {
	return s == StatusPending || s == StatusConfirmed
}

func (s Status) Terminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

type Booking struct {
	ID                 int64      `json:"id"`
	Code               string     `json:"code"`
	CustomerID         int64      `json:"customer_id"`
	RoomID             int64      `json:"room_id"`
	ChannelID          int64      `json:"channel_id"`
	CheckIn            model.Date `json:"check_in"`
	CheckOut           model.Date `json:"check_out"`
	Adults             int        `json:"adults"`
	Children           int        `json:"children"`
	Status             Status     `json:"status"`
	TotalAmount        float64    `json:"total_amount"`
	DiscountPercent    float64    `json:"discount_percent"`
	DiscountReason     string     `json:"discount_reason"`
	SpecialRequests    string     `json:"special_requests"`
	StaffID            string     `json:"staff_id"`
	PointsEarned       int64      `json:"points_earned"`
	CancellationReason string     `json:"cancellation_reason"`
	CancelledAt        *time.Time `json:"cancelled_at"`
	model.Metadata
}

func Identity(booking *Booking) *int64 {
	return &booking.ID
}

// Overlaps uses half-open ranges: a stay ending on the day another starts does not collide.
func (b Booking) Overlaps(checkIn, checkOut model.Date) bool {
	return b.CheckIn.Before(checkOut) && b.CheckOut.After(checkIn)
}

// Covers reports whether the guest is in the room on day.
func (b Booking) Covers(day model.Date) bool {
	return !b.CheckIn.After(day) && b.CheckOut.After(day)
}

func (b Booking) Nights() int {
	return b.CheckIn.DaysUntil(b.CheckOut)
}

// Code renders the human-facing booking code, e.g. BK20250501-000042.
func Code(checkIn model.Date, id int64) string {
	return fmt.Sprintf("BK%s-%06d", checkIn.Format("20060102"), id)
}
