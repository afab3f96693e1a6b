package model

import "hotelier/shared/model"

const (
	CollectionName = "rooms"
	EntityName     = "room"

	FieldID         = "id"
	FieldNumber     = "number"
	FieldRoomTypeID = "room_type_id"
	FieldStatus     = "status"
	FieldNotes      = "notes"
)

// Cache prefixes, shared with the booking lifecycle which mutates room status.
const (
	CacheGet    = "room:get"
	CacheGetAll = "room:gets"
	CacheCount  = "room:count"
)

type Status string

const (
	StatusAvailable   Status = "AVAILABLE"
	StatusOccupied    Status = "OCCUPIED"
	StatusMaintenance Status = "MAINTENANCE"
	StatusCleaning    Status = "CLEANING"
	StatusInactive    Status = "INACTIVE"
)

type Room struct {
	ID         int64  `json:"id"`
	Number     string `json:"number"`
	RoomTypeID int64  `json:"room_type_id"`
	Status     Status `json:"status"`
	Notes      string `json:"notes"`
	model.Metadata
}

func Identity(room *Room) *int64 {
	return &room.ID
}

// Bookable reports whether the room may take reservations at all.
func (r Room) Bookable() bool {
	return r.Status != StatusInactive && r.Status != StatusMaintenance
}
