package service

import (
	"context"
	"fmt"
	"hotelier/infras/otel"
	"hotelier/infras/recordstore"
	bookingModel "hotelier/internal/domains/booking/model"
	bookingRepo "hotelier/internal/domains/booking/repository"
	"hotelier/internal/domains/payment/model"
	"hotelier/internal/domains/payment/model/dto"
	"hotelier/internal/domains/payment/repository"
	"hotelier/shared"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/failure"
	"hotelier/shared/timezone"
	"math"

	"github.com/rs/zerolog/log"
)

type Payment interface {
	Create(ctx context.Context, req dto.CreatePaymentRequest) (dto.PaymentResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetPaymentsResponse, error)
	Get(ctx context.Context, id int64) (dto.PaymentResponse, error)
	Update(ctx context.Context, req dto.UpdatePaymentRequest, id int64) (dto.PaymentResponse, error)
	Balance(ctx context.Context, bookingID int64) (dto.BalanceResponse, error)
}

type serviceImpl struct {
	store    recordstore.Store
	repo     repository.Payment
	bookings bookingRepo.Booking
	otel     otel.Otel
}

func New(store recordstore.Store, repo repository.Payment, bookings bookingRepo.Booking, otel otel.Otel) Payment {
	return &serviceImpl{
		store:    store,
		repo:     repo,
		bookings: bookings,
		otel:     otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreatePaymentRequest) (res dto.PaymentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	payment := req.ToModel(user)

	err = s.store.Update(ctx, func(tx *recordstore.Tx) error {
		exist, err := s.bookings.ExistTx(ctx, tx, shared.FilterByID(req.BookingID, bookingModel.FieldID))
		if err != nil {
			return err
		}

		if !exist {
			return failure.BadRequestFromString(fmt.Sprintf("booking %d does not exist", req.BookingID)) //nolint:wrapcheck
		}

		return s.repo.InsertTx(ctx, tx, &payment)
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create payment")

		return res, fmt.Errorf("failed to create payment: %w", err)
	}

	res.FromModel(payment)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetPaymentsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count payments")

		return res, fmt.Errorf("failed to count payments: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get payments")

		return res, fmt.Errorf("failed to get payments: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.PaymentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	payment, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get payment")

		return res, fmt.Errorf("failed to get payment: %w", err)
	}

	if payment.ID == 0 {
		return res, failure.NotFound("payment not found") // nolint:wrapcheck
	}

	res.FromModel(payment)

	return res, nil
}

// Update follows PENDING -> COMPLETED|FAILED and COMPLETED -> REFUNDED. A refund is the only way to undo a payment.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdatePaymentRequest, id int64) (res dto.PaymentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	var payment model.Payment

	err = s.store.Update(ctx, func(tx *recordstore.Tx) (err error) {
		payment, err = s.repo.GetTx(ctx, tx, shared.FilterByID(id, model.FieldID))
		if err != nil {
			return err
		}

		if payment.ID == 0 {
			return failure.NotFound("payment not found") //nolint:wrapcheck
		}

		current := payment.Status
		editsAmount := (req.Amount != nil && *req.Amount != payment.Amount) || (req.Method != nil && *req.Method != payment.Method)

		if editsAmount && current != model.StatusPending {
			return failure.BadRequestFromString(fmt.Sprintf("amount and method of a %s payment cannot change", current)) //nolint:wrapcheck
		}

		if req.Status != nil && *req.Status != current {
			if !current.CanTransitionTo(*req.Status) {
				return failure.InvalidTransition(fmt.Sprintf("payment cannot move from %s to %s", current, *req.Status)) //nolint:wrapcheck
			}
		}

		changed := shared.ApplyPatch(&payment, req)
		if len(changed) == 0 {
			return nil
		}

		if payment.Status == model.StatusCompleted && current != model.StatusCompleted {
			payment.PaidAt = timezone.Now()
		}

		payment.Touch(timezone.Now(), user)

		return s.repo.UpdateTx(ctx, tx, payment)
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to update payment")

		return res, fmt.Errorf("failed to update payment: %w", err)
	}

	res.FromModel(payment)

	return res, nil
}

// Balance compares completed payments against the booking total. The result is informational;
// over- and under-payment are reported, never blocked.
func (s *serviceImpl) Balance(ctx context.Context, bookingID int64) (res dto.BalanceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Balance")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	err = s.store.View(ctx, func(tx *recordstore.Tx) error {
		booking, err := s.bookings.GetTx(ctx, tx, shared.FilterByID(bookingID, bookingModel.FieldID))
		if err != nil {
			return err
		}

		if booking.ID == 0 {
			return failure.NotFound("booking not found") //nolint:wrapcheck
		}

		payments, err := s.repo.FindTx(ctx, tx, gDto.FilterGroup{
			Filters: []gDto.Matcher{shared.FilterByField(model.FieldBookingID, bookingID)},
		})
		if err != nil {
			return err
		}

		res = Reconcile(booking, payments)

		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to compute booking balance")

		return res, fmt.Errorf("failed to compute booking balance: %w", err)
	}

	return res, nil
}

// Reconcile sums the payments of one booking. Only COMPLETED payments count as paid.
func Reconcile(booking bookingModel.Booking, payments []model.Payment) dto.BalanceResponse {
	res := dto.BalanceResponse{
		BookingID:   booking.ID,
		TotalAmount: booking.TotalAmount,
	}

	for _, payment := range payments {
		switch payment.Status {
		case model.StatusCompleted:
			res.Paid += payment.Amount
		case model.StatusRefunded:
			res.Refunded += payment.Amount
		case model.StatusPending:
			res.Pending += payment.Amount
		case model.StatusFailed:
		}
	}

	res.Paid = round(res.Paid)
	res.Refunded = round(res.Refunded)
	res.Pending = round(res.Pending)
	res.Outstanding = round(booking.TotalAmount - res.Paid)
	res.Settled = res.Outstanding <= 0

	return res
}

func round(amount float64) float64 {
	return math.Round(amount*constant.PercentFactor) / constant.PercentFactor
}
