package dto

import (
	"hotelier/internal/domains/booking/model"
	"hotelier/shared"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/timezone"
	"time"
)

// CreateBookingRequest keeps the dates as text so a malformed date is reported as an invalid range.
type CreateBookingRequest struct {
	CustomerID      int64    `json:"customer_id"      validate:"required,gt=0"`
	RoomID          int64    `json:"room_id"          validate:"required,gt=0"`
	ChannelID       int64    `json:"channel_id"       validate:"required,gt=0"`
	CheckIn         string   `json:"check_in"         validate:"required"`
	CheckOut        string   `json:"check_out"        validate:"required"`
	Adults          *int     `json:"adults"           validate:"omitempty,gte=1"`
	Children        int      `json:"children"         validate:"gte=0"`
	TotalAmount     *float64 `json:"total_amount"     validate:"omitempty,gte=0,money"`
	DiscountPercent *float64 `json:"discount_percent" validate:"omitempty,gte=0,lte=100"`
	DiscountReason  string   `json:"discount_reason"  validate:"omitempty,max=200"`
	SpecialRequests string   `json:"special_requests" validate:"omitempty,max=1000"`
}

// UpdateBookingRequest is a partial update; nil fields are left alone.
type UpdateBookingRequest struct {
	RoomID          *int64        `json:"room_id"          validate:"omitempty,gt=0"`
	ChannelID       *int64        `json:"channel_id"       validate:"omitempty,gt=0"`
	CheckIn         *string       `json:"check_in"`
	CheckOut        *string       `json:"check_out"`
	Adults          *int          `json:"adults"           validate:"omitempty,gte=1"`
	Children        *int          `json:"children"         validate:"omitempty,gte=0"`
	Status          *model.Status `json:"status"           validate:"omitempty,oneof=PENDING CONFIRMED CANCELLED COMPLETED"`
	TotalAmount     *float64      `json:"total_amount"     validate:"omitempty,gte=0,money"`
	DiscountPercent *float64      `json:"discount_percent" validate:"omitempty,gte=0,lte=100"`
	DiscountReason  *string       `json:"discount_reason"  validate:"omitempty,max=200"`
	SpecialRequests *string       `json:"special_requests" validate:"omitempty,max=1000"`
}

type CancelBookingRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

type BookingResponse struct {
	ID                 int64        `json:"id"`
	Code               string       `json:"code"`
	CustomerID         int64        `json:"customer_id"`
	RoomID             int64        `json:"room_id"`
	ChannelID          int64        `json:"channel_id"`
	CheckIn            string       `json:"check_in"`
	CheckOut           string       `json:"check_out"`
	Nights             int          `json:"nights"`
	Adults             int          `json:"adults"`
	Children           int          `json:"children"`
	Status             model.Status `json:"status"`
	TotalAmount        float64      `json:"total_amount"`
	DiscountPercent    float64      `json:"discount_percent"`
	DiscountReason     string       `json:"discount_reason"`
	SpecialRequests    string       `json:"special_requests"`
	StaffID            string       `json:"staff_id"`
	PointsEarned       int64        `json:"points_earned"`
	CancellationReason string       `json:"cancellation_reason,omitempty"`
	CancelledAt        string       `json:"cancelled_at,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.Code = model.Code
	r.CustomerID = model.CustomerID
	r.RoomID = model.RoomID
	r.ChannelID = model.ChannelID
	r.CheckIn = model.CheckIn.String()
	r.CheckOut = model.CheckOut.String()
	r.Nights = model.Nights()
	r.Adults = model.Adults
	r.Children = model.Children
	r.Status = model.Status
	r.TotalAmount = model.TotalAmount
	r.DiscountPercent = model.DiscountPercent
	r.DiscountReason = model.DiscountReason
	r.SpecialRequests = model.SpecialRequests
	r.StaffID = model.StaffID
	r.PointsEarned = model.PointsEarned
	r.CancellationReason = model.CancellationReason

	if model.CancelledAt != nil {
		r.CancelledAt = timezone.Format(*model.CancelledAt, constant.DateFormat)
	}

	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

const (
	EventBookingCreated   = "booking.created"
	EventBookingUpdated   = "booking.updated"
	EventBookingCancelled = "booking.cancelled"
)

// Event is the payload published on the booking topic after a lifecycle change commits.
type Event struct {
	BookingID   int64        `json:"booking_id"`
	Code        string       `json:"code"`
	CustomerID  int64        `json:"customer_id"`
	RoomID      int64        `json:"room_id"`
	Status      model.Status `json:"status"`
	CheckIn     string       `json:"check_in"`
	CheckOut    string       `json:"check_out"`
	TotalAmount float64      `json:"total_amount"`
	Changed     []string     `json:"changed,omitempty"`
	OccurredAt  time.Time    `json:"occurred_at"`
}

func NewEvent(booking model.Booking, changed []string) Event {
	return Event{
		BookingID:   booking.ID,
		Code:        booking.Code,
		CustomerID:  booking.CustomerID,
		RoomID:      booking.RoomID,
		Status:      booking.Status,
		CheckIn:     booking.CheckIn.String(),
		CheckOut:    booking.CheckOut.String(),
		TotalAmount: booking.TotalAmount,
		Changed:     changed,
		OccurredAt:  timezone.Now(),
	}
}
