package dto

import (
	"hotelier/internal/domains/room/model"
	"hotelier/shared"
	gDto "hotelier/shared/dto"
	"hotelier/shared/timezone"
)

type CreateRoomRequest struct {
	Number     string        `json:"number"       validate:"required,max=20"`
	RoomTypeID int64         `json:"room_type_id" validate:"required,gt=0"`
	Status     *model.Status `json:"status"       validate:"omitempty,oneof=AVAILABLE OCCUPIED MAINTENANCE CLEANING INACTIVE"`
	Notes      string        `json:"notes"        validate:"omitempty,max=500"`
}

func (c *CreateRoomRequest) ToModel(user string) model.Room {
	status := model.StatusAvailable
	if c.Status != nil {
		status = *c.Status
	}

	room := model.Room{
		Number:     c.Number,
		RoomTypeID: c.RoomTypeID,
		Status:     status,
		Notes:      c.Notes,
	}
	room.Stamp(timezone.Now(), user)

	return room
}

type UpdateRoomRequest struct {
	Number     *string       `json:"number"       validate:"omitempty,min=1,max=20"`
	RoomTypeID *int64        `json:"room_type_id" validate:"omitempty,gt=0"`
	Status     *model.Status `json:"status"       validate:"omitempty,oneof=AVAILABLE OCCUPIED MAINTENANCE CLEANING INACTIVE"`
	Notes      *string       `json:"notes"        validate:"omitempty,max=500"`
}

type UpdateRoomStatusRequest struct {
	Status model.Status `json:"status" validate:"required,oneof=AVAILABLE OCCUPIED MAINTENANCE CLEANING INACTIVE"`
}

type RoomResponse struct {
	ID         int64        `json:"id"`
	Number     string       `json:"number"`
	RoomTypeID int64        `json:"room_type_id"`
	Status     model.Status `json:"status"`
	Notes      string       `json:"notes"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.Number = model.Number
	r.RoomTypeID = model.RoomTypeID
	r.Status = model.Status
	r.Notes = model.Notes
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
