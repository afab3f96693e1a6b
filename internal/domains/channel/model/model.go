package model

import "hotelier/shared/model"

const (
	CollectionName = "channels"
	EntityName     = "channel"

	FieldID         = "id"
	FieldName       = "name"
	FieldCommission = "commission_percent"
	FieldActive     = "active"
)

const (
	CacheGet    = "channel:get"
	CacheGetAll = "channel:gets"
	CacheCount  = "channel:count"
)

// Channel is where a booking came from: walk-in, phone, an online travel agency.
type Channel struct {
	ID                int64   `json:"id"`
	Name              string  `json:"name"`
	CommissionPercent float64 `json:"commission_percent"`
	Active            bool    `json:"active"`
	model.Metadata
}

func Identity(channel *Channel) *int64 {
	return &channel.ID
}
