package dto

import (
	roomModel "hotelier/internal/domains/room/model"
	roomDto "hotelier/internal/domains/room/model/dto"
	gModel "hotelier/shared/model"
)

type AvailableRoomsRequest struct {
	CheckIn  string `json:"check_in"`
	CheckOut string `json:"check_out"`
}

type AvailableRoomsResponse struct {
	CheckIn  string                 `json:"check_in"`
	CheckOut string                 `json:"check_out"`
	Nights   int                    `json:"nights"`
	Rooms    []roomDto.RoomResponse `json:"rooms"`
}

func (r *AvailableRoomsResponse) FromModels(checkIn, checkOut gModel.Date, rooms []roomModel.Room) {
	r.CheckIn = checkIn.String()
	r.CheckOut = checkOut.String()
	r.Nights = checkIn.DaysUntil(checkOut)

	r.Rooms = make([]roomDto.RoomResponse, len(rooms))
	for i, room := range rooms {
		r.Rooms[i].FromModel(room)
	}
}
