package dto

import (
	"hotelier/internal/domains/customer/model"
	"hotelier/internal/domains/loyalty"
	"hotelier/shared"
	gDto "hotelier/shared/dto"
	"hotelier/shared/timezone"
	"strings"
)

type CreateCustomerRequest struct {
	Name          string `json:"name"           validate:"required,max=150"`
	Email         string `json:"email"          validate:"required,email,max=150"`
	Phone         string `json:"phone"          validate:"required,min=6,max=20"`
	LoyaltyPoints int64  `json:"loyalty_points" validate:"gte=0"`
}

func (c *CreateCustomerRequest) ToModel(user string) model.Customer {
	customer := model.Customer{
		Name:          c.Name,
		Email:         strings.ToLower(strings.TrimSpace(c.Email)),
		Phone:         strings.TrimSpace(c.Phone),
		LoyaltyPoints: c.LoyaltyPoints,
		Status:        model.StatusActive,
	}
	customer.Stamp(timezone.Now(), user)

	return customer
}

// UpdateCustomerRequest has no points field: the balance only grows through bookings.
type UpdateCustomerRequest struct {
	Name   *string       `json:"name"   validate:"omitempty,min=1,max=150"`
	Email  *string       `json:"email"  validate:"omitempty,email,max=150"`
	Phone  *string       `json:"phone"  validate:"omitempty,min=6,max=20"`
	Status *model.Status `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
}

type CustomerResponse struct {
	ID     int64        `json:"id"`
	Name   string       `json:"name"`
	Email  string       `json:"email"`
	Phone  string       `json:"phone"`
	Status model.Status `json:"status"`
	loyalty.Summary
	gDto.Metadata
}

func (r *CustomerResponse) FromModel(model model.Customer) {
	r.ID = model.ID
	r.Name = model.Name
	r.Email = model.Email
	r.Phone = model.Phone
	r.Status = model.Status
	r.Summary = loyalty.Summarize(model.LoyaltyPoints)
	r.Metadata.FromModel(model.Metadata)
}

type GetCustomersResponse struct {
	Customers []CustomerResponse `json:"customers"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetCustomersResponse) FromModels(models []model.Customer, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Customers = make([]CustomerResponse, len(models))
	for i, mod := range models {
		r.Customers[i].FromModel(mod)
	}
}

type LoyaltyResponse struct {
	CustomerID int64 `json:"customer_id"`
	loyalty.Summary
}
