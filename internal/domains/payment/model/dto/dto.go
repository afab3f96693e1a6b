package dto

import (
	"hotelier/internal/domains/payment/model"
	"hotelier/shared"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/timezone"
)

type CreatePaymentRequest struct {
	BookingID int64         `json:"booking_id" validate:"required,gt=0"`
	Amount    float64       `json:"amount"     validate:"required,gt=0,money"`
	Method    model.Method  `json:"method"     validate:"required,oneof=CASH CARD BANK_TRANSFER E_WALLET"`
	Status    *model.Status `json:"status"     validate:"omitempty,oneof=PENDING COMPLETED"`
	Reference string        `json:"reference"  validate:"omitempty,max=100"`
}

func (c *CreatePaymentRequest) ToModel(user string) model.Payment {
	status := model.StatusPending
	if c.Status != nil {
		status = *c.Status
	}

	now := timezone.Now()

	payment := model.Payment{
		BookingID: c.BookingID,
		Amount:    c.Amount,
		Method:    c.Method,
		Status:    status,
		Reference: c.Reference,
	}
	payment.Stamp(now, user)

	if status == model.StatusCompleted {
		payment.PaidAt = now
	}

	return payment
}

// UpdatePaymentRequest edits amount and method only while the payment is PENDING.
type UpdatePaymentRequest struct {
	Amount    *float64      `json:"amount"    validate:"omitempty,gt=0,money"`
	Method    *model.Method `json:"method"    validate:"omitempty,oneof=CASH CARD BANK_TRANSFER E_WALLET"`
	Status    *model.Status `json:"status"    validate:"omitempty,oneof=PENDING COMPLETED FAILED REFUNDED"`
	Reference *string       `json:"reference" validate:"omitempty,max=100"`
}

type PaymentResponse struct {
	ID        int64        `json:"id"`
	BookingID int64        `json:"booking_id"`
	Amount    float64      `json:"amount"`
	Method    model.Method `json:"method"`
	Status    model.Status `json:"status"`
	PaidAt    string       `json:"paid_at,omitempty"`
	Reference string       `json:"reference"`
	gDto.Metadata
}

func (r *PaymentResponse) FromModel(model model.Payment) {
	r.ID = model.ID
	r.BookingID = model.BookingID
	r.Amount = model.Amount
	r.Method = model.Method
	r.Status = model.Status
	r.PaidAt = timezone.Format(model.PaidAt, constant.DateFormat)
	r.Reference = model.Reference
	r.Metadata.FromModel(model.Metadata)
}

type GetPaymentsResponse struct {
	Payments  []PaymentResponse `json:"payments"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetPaymentsResponse) FromModels(models []model.Payment, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Payments = make([]PaymentResponse, len(models))
	for i, mod := range models {
		r.Payments[i].FromModel(mod)
	}
}

// BalanceResponse reports how far the payments of a booking reconcile with its total.
type BalanceResponse struct {
	BookingID   int64   `json:"booking_id"`
	TotalAmount float64 `json:"total_amount"`
	Paid        float64 `json:"paid"`
	Refunded    float64 `json:"refunded"`
	Pending     float64 `json:"pending"`
	Outstanding float64 `json:"outstanding"`
	Settled     bool    `json:"settled"`
}
