package dto

import (
	"hotelier/internal/domains/roomtype/model"
	"hotelier/shared"
	gDto "hotelier/shared/dto"
	"hotelier/shared/timezone"
)

type CreateRoomTypeRequest struct {
	Name        string  `json:"name"        validate:"required,max=100"`
	BasePrice   float64 `json:"base_price"  validate:"gte=0,money"`
	Capacity    int     `json:"capacity"    validate:"gte=0"`
	Description string  `json:"description" validate:"omitempty,max=500"`
}

func (c *CreateRoomTypeRequest) ToModel(user string) model.RoomType {
	roomType := model.RoomType{
		Name:        c.Name,
		BasePrice:   c.BasePrice,
		Capacity:    c.Capacity,
		Description: c.Description,
	}
	roomType.Stamp(timezone.Now(), user)

	return roomType
}

type UpdateRoomTypeRequest struct {
	Name        *string  `json:"name"        validate:"omitempty,min=1,max=100"`
	BasePrice   *float64 `json:"base_price"  validate:"omitempty,gte=0,money"`
	Capacity    *int     `json:"capacity"    validate:"omitempty,gte=0"`
	Description *string  `json:"description" validate:"omitempty,max=500"`
}

type RoomTypeResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	BasePrice   float64 `json:"base_price"`
	Capacity    int     `json:"capacity"`
	Description string  `json:"description"`
	gDto.Metadata
}

func (r *RoomTypeResponse) FromModel(model model.RoomType) {
	r.ID = model.ID
	r.Name = model.Name
	r.BasePrice = model.BasePrice
	r.Capacity = model.Capacity
	r.Description = model.Description
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomTypesResponse struct {
	RoomTypes []RoomTypeResponse `json:"room_types"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetRoomTypesResponse) FromModels(models []model.RoomType, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.RoomTypes = make([]RoomTypeResponse, len(models))
	for i, mod := range models {
		r.RoomTypes[i].FromModel(mod)
	}
}
