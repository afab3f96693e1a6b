package dto

import (
	"hotelier/internal/domains/channel/model"
	"hotelier/shared"
	gDto "hotelier/shared/dto"
	"hotelier/shared/timezone"
)

type CreateChannelRequest struct {
	Name              string  `json:"name"               validate:"required,max=100"`
	CommissionPercent float64 `json:"commission_percent" validate:"gte=0,lte=100"`
	Active            *bool   `json:"active"`
}

func (c *CreateChannelRequest) ToModel(user string) model.Channel {
	active := true
	if c.Active != nil {
		active = *c.Active
	}

	channel := model.Channel{
		Name:              c.Name,
		CommissionPercent: c.CommissionPercent,
		Active:            active,
	}
	channel.Stamp(timezone.Now(), user)

	return channel
}

type UpdateChannelRequest struct {
	Name              *string  `json:"name"               validate:"omitempty,min=1,max=100"`
	CommissionPercent *float64 `json:"commission_percent" validate:"omitempty,gte=0,lte=100"`
	Active            *bool    `json:"active"`
}

type ChannelResponse struct {
	ID                int64   `json:"id"`
	Name              string  `json:"name"`
	CommissionPercent float64 `json:"commission_percent"`
	Active            bool    `json:"active"`
	gDto.Metadata
}

func (r *ChannelResponse) FromModel(model model.Channel) {
	r.ID = model.ID
	r.Name = model.Name
	r.CommissionPercent = model.CommissionPercent
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetChannelsResponse struct {
	Channels  []ChannelResponse `json:"channels"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetChannelsResponse) FromModels(models []model.Channel, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Channels = make([]ChannelResponse, len(models))
	for i, mod := range models {
		r.Channels[i].FromModel(mod)
	}
}
