package model

import (
	"hotelier/shared/model"
	"time"
)

const (
	CollectionName = "payments"
	EntityName     = "payment"

	FieldID        = "id"
	FieldBookingID = "booking_id"
	FieldMethod    = "method"
	FieldStatus    = "status"
	FieldPaidAt    = "paid_at"
)

type Method string

const (
	MethodCash         Method = "CASH"
	MethodCard         Method = "CARD"
	MethodBankTransfer Method = "BANK_TRANSFER"
	MethodEWallet      Method = "E_WALLET"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
	StatusFailed    Status = "FAILED"
	StatusRefunded  Status = "REFUNDED"
)

var transitions = map[Status][]Status{
	StatusPending:   {StatusCompleted, StatusFailed},
	StatusCompleted: {StatusRefunded},
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

type Payment struct {
	ID        int64     `json:"id"`
	BookingID int64     `json:"booking_id"`
	Amount    float64   `json:"amount"`
	Method    Method    `json:"method"`
	Status    Status    `json:"status"`
	PaidAt    time.Time `json:"paid_at"`
	Reference string    `json:"reference"`
	model.Metadata
}

func Identity(payment *Payment) *int64 {
	return &payment.ID
}
