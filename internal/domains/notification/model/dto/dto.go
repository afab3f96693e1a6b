package dto

import (
	"hotelier/internal/domains/notification/model"
	"hotelier/shared"
	gDto "hotelier/shared/dto"
)

type NotificationResponse struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Message     string     `json:"message"`
	Kind        model.Kind `json:"kind"`
	ReferenceID int64      `json:"reference_id"`
	Read        bool       `json:"read"`
	gDto.Metadata
}

func (r *NotificationResponse) FromModel(model model.Notification) {
	r.ID = model.ID
	r.Title = model.Title
	r.Message = model.Message
	r.Kind = model.Kind
	r.ReferenceID = model.ReferenceID
	r.Read = model.Read
	r.Metadata.FromModel(model.Metadata)
}

type GetNotificationsResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	Unread        int                    `json:"unread"`
	TotalPage     int                    `json:"total_page"`
	TotalData     int                    `json:"total_data"`
}

func (r *GetNotificationsResponse) FromModels(models []model.Notification, totalData, unread, limit int) {
	r.TotalData = totalData
	r.Unread = unread
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Notifications = make([]NotificationResponse, len(models))
	for i, mod := range models {
		r.Notifications[i].FromModel(mod)
	}
}
