package dto

import (
	"hotelier/internal/domains/feedback/model"
	"hotelier/shared"
	gDto "hotelier/shared/dto"
	"hotelier/shared/timezone"
)

type CreateFeedbackRequest struct {
	CustomerID int64  `json:"customer_id" validate:"required,gt=0"`
	BookingID  *int64 `json:"booking_id"  validate:"omitempty,gt=0"`
	Rating     int    `json:"rating"      validate:"required,min=1,max=5"`
	Comment    string `json:"comment"     validate:"omitempty,max=2000"`
}

func (c *CreateFeedbackRequest) ToModel(user string) model.Feedback {
	feedback := model.Feedback{
		CustomerID: c.CustomerID,
		BookingID:  c.BookingID,
		Rating:     c.Rating,
		Comment:    c.Comment,
		Status:     model.StatusNew,
	}
	feedback.Stamp(timezone.Now(), user)

	return feedback
}

type UpdateFeedbackRequest struct {
	Rating  *int          `json:"rating"  validate:"omitempty,min=1,max=5"`
	Comment *string       `json:"comment" validate:"omitempty,max=2000"`
	Status  *model.Status `json:"status"  validate:"omitempty,oneof=NEW REVIEWED"`
}

type FeedbackResponse struct {
	ID         int64        `json:"id"`
	CustomerID int64        `json:"customer_id"`
	BookingID  *int64       `json:"booking_id,omitempty"`
	Rating     int          `json:"rating"`
	Comment    string       `json:"comment"`
	Status     model.Status `json:"status"`
	gDto.Metadata
}

func (r *FeedbackResponse) FromModel(model model.Feedback) {
	r.ID = model.ID
	r.CustomerID = model.CustomerID
	r.BookingID = model.BookingID
	r.Rating = model.Rating
	r.Comment = model.Comment
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}

type GetFeedbackResponse struct {
	Feedback  []FeedbackResponse `json:"feedback"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetFeedbackResponse) FromModels(models []model.Feedback, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Feedback = make([]FeedbackResponse, len(models))
	for i, mod := range models {
		r.Feedback[i].FromModel(mod)
	}
}
