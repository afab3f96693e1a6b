package model

import "hotelier/shared/model"

const (
	CollectionName = "customers"
	EntityName     = "customer"

	FieldID     = "id"
	FieldName   = "name"
	FieldEmail  = "email"
	FieldPhone  = "phone"
	FieldPoints = "loyalty_points"
	FieldStatus = "status"
)

const (
	CacheGet    = "customer:get"
	CacheGetAll = "customer:gets"
	CacheCount  = "customer:count"
)

type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

// Customer keeps only the point balance; the tier is derived from it on read.
type Customer struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	LoyaltyPoints int64  `json:"loyalty_points"`
	Status        Status `json:"status"`
	model.Metadata
}

func Identity(customer *Customer) *int64 {
	return &customer.ID
}
