package service

import (
	"context"
	"fmt"
	"hotelier/infras/otel"
	"hotelier/infras/recordstore"
	bookingModel "hotelier/internal/domains/booking/model"
	bookingRepo "hotelier/internal/domains/booking/repository"
	customerModel "hotelier/internal/domains/customer/model"
	customerRepo "hotelier/internal/domains/customer/repository"
	"hotelier/internal/domains/feedback/model"
	"hotelier/internal/domains/feedback/model/dto"
	"hotelier/internal/domains/feedback/repository"
	"hotelier/shared"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/failure"
	"hotelier/shared/timezone"

	"github.com/rs/zerolog/log"
)

type Feedback interface {
	Create(ctx context.Context, req dto.CreateFeedbackRequest) (dto.FeedbackResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetFeedbackResponse, error)
	Get(ctx context.Context, id int64) (dto.FeedbackResponse, error)
	Update(ctx context.Context, req dto.UpdateFeedbackRequest, id int64) (dto.FeedbackResponse, error)
	Delete(ctx context.Context, id int64) error
}

type serviceImpl struct {
	store     recordstore.Store
	repo      repository.Feedback
	customers customerRepo.Customer
	bookings  bookingRepo.Booking
	otel      otel.Otel
}

func New(
	store recordstore.Store,
	repo repository.Feedback,
	customers customerRepo.Customer,
	bookings bookingRepo.Booking,
	otel otel.Otel,
) Feedback {
	return &serviceImpl{
		store:     store,
		repo:      repo,
		customers: customers,
		bookings:  bookings,
		otel:      otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateFeedbackRequest) (res dto.FeedbackResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	feedback := req.ToModel(user)

	err = s.store.Update(ctx, func(tx *recordstore.Tx) error {
		exist, err := s.customers.ExistTx(ctx, tx, shared.FilterByID(req.CustomerID, customerModel.FieldID))
		if err != nil {
			return err
		}

		if !exist {
			return failure.BadRequestFromString(fmt.Sprintf("customer %d does not exist", req.CustomerID)) //nolint:wrapcheck
		}

		if req.BookingID != nil {
			booking, err := s.bookings.GetTx(ctx, tx, shared.FilterByID(*req.BookingID, bookingModel.FieldID))
			if err != nil {
				return err
			}

			if booking.ID == 0 {
				return failure.BadRequestFromString(fmt.Sprintf("booking %d does not exist", *req.BookingID)) //nolint:wrapcheck
			}

			if booking.CustomerID != req.CustomerID {
				return failure.BadRequestFromString(fmt.Sprintf("booking %d belongs to another customer", booking.ID)) //nolint:wrapcheck
			}
		}

		return s.repo.InsertTx(ctx, tx, &feedback)
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create feedback")

		return res, fmt.Errorf("failed to create feedback: %w", err)
	}

	res.FromModel(feedback)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetFeedbackResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count feedback")

		return res, fmt.Errorf("failed to count feedback: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get feedback")

		return res, fmt.Errorf("failed to get feedback: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.FeedbackResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	feedback, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get feedback")

		return res, fmt.Errorf("failed to get feedback: %w", err)
	}

	if feedback.ID == 0 {
		return res, failure.NotFound("feedback not found") // nolint:wrapcheck
	}

	res.FromModel(feedback)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateFeedbackRequest, id int64) (res dto.FeedbackResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	var feedback model.Feedback

	err = s.store.Update(ctx, func(tx *recordstore.Tx) (err error) {
		feedback, err = s.repo.GetTx(ctx, tx, shared.FilterByID(id, model.FieldID))
		if err != nil {
			return err
		}

		if feedback.ID == 0 {
			return failure.NotFound("feedback not found") //nolint:wrapcheck
		}

		if len(shared.ApplyPatch(&feedback, req)) == 0 {
			return nil
		}

		feedback.Touch(timezone.Now(), user)

		return s.repo.UpdateTx(ctx, tx, feedback)
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to update feedback")

		return res, fmt.Errorf("failed to update feedback: %w", err)
	}

	res.FromModel(feedback)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	err = s.store.Update(ctx, func(tx *recordstore.Tx) error {
		filter := shared.FilterByID(id, model.FieldID)

		exist, err := s.repo.ExistTx(ctx, tx, filter)
		if err != nil {
			return err
		}

		if !exist {
			return failure.NotFound("feedback not found") //nolint:wrapcheck
		}

		return s.repo.DeleteTx(ctx, tx, filter)
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to delete feedback")

		return fmt.Errorf("failed to delete feedback: %w", err)
	}

	return nil
}
