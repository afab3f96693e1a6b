package model

import "hotelier/shared/model"

const (
	CollectionName = "room_types"
	EntityName     = "room type"

	FieldID          = "id"
	FieldName        = "name"
	FieldBasePrice   = "base_price"
	FieldCapacity    = "capacity"
	FieldDescription = "description"
)

const (
	CacheGet    = "room_type:get"
	CacheGetAll = "room_type:gets"
	CacheCount  = "room_type:count"
)

type RoomType struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	BasePrice   float64 `json:"base_price"`
	Capacity    int     `json:"capacity"`
	Description string  `json:"description"`
	model.Metadata
}

func Identity(roomType *RoomType) *int64 {
	return &roomType.ID
}
