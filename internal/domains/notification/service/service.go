package service

import (
	"context"
	"fmt"
	"hotelier/infras/otel"
	"hotelier/infras/recordstore"
	"hotelier/internal/domains/notification/model"
	"hotelier/internal/domains/notification/model/dto"
	"hotelier/internal/domains/notification/repository"
	"hotelier/shared"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/failure"
	"hotelier/shared/timezone"

	"github.com/rs/zerolog/log"
)

// Notification exposes the staff inbox. Notifications are written by the booking lifecycle.
type Notification interface {
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetNotificationsResponse, error)
	Get(ctx context.Context, id int64) (dto.NotificationResponse, error)
	MarkRead(ctx context.Context, id int64) (dto.NotificationResponse, error)
	Delete(ctx context.Context, id int64) error
}

type serviceImpl struct {
	store recordstore.Store
	repo  repository.Notification
	otel  otel.Otel
}

func New(store recordstore.Store, repo repository.Notification, otel otel.Otel) Notification {
	return &serviceImpl{
		store: store,
		repo:  repo,
		otel:  otel,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetNotificationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count notifications")

		return res, fmt.Errorf("failed to count notifications: %w", err)
	}

	unread, err := s.repo.Count(ctx, gDto.FilterGroup{
		Filters: []gDto.Matcher{shared.FilterByField(model.FieldRead, false)},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to count unread notifications")

		return res, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get notifications")

		return res, fmt.Errorf("failed to get notifications: %w", err)
	}

	res.FromModels(models, total, unread, req.Limit)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.NotificationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	notification, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get notification")

		return res, fmt.Errorf("failed to get notification: %w", err)
	}

	if notification.ID == 0 {
		return res, failure.NotFound("notification not found") // nolint:wrapcheck
	}

	res.FromModel(notification)

	return res, nil
}

func (s *serviceImpl) MarkRead(ctx context.Context, id int64) (res dto.NotificationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MarkRead")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	var notification model.Notification

	err = s.store.Update(ctx, func(tx *recordstore.Tx) (err error) {
		notification, err = s.repo.GetTx(ctx, tx, shared.FilterByID(id, model.FieldID))
		if err != nil {
			return err
		}

		if notification.ID == 0 {
			return failure.NotFound("notification not found") //nolint:wrapcheck
		}

		if notification.Read {
			return nil
		}

		notification.Read = true
		notification.Touch(timezone.Now(), user)

		return s.repo.UpdateTx(ctx, tx, notification)
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to mark notification as read")

		return res, fmt.Errorf("failed to mark notification as read: %w", err)
	}

	res.FromModel(notification)

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
			return failure.NotFound("notification not found") //nolint:wrapcheck
		}

		return s.repo.DeleteTx(ctx, tx, filter)
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to delete notification")

		return fmt.Errorf("failed to delete notification: %w", err)
	}

	return nil
}
