package service_test

import (
	"context"
	"hotelier/config"
	"hotelier/infras/otel/mocks"
	"hotelier/infras/recordstore"
	bookingModel "hotelier/internal/domains/booking/model"
	bookingRepo "hotelier/internal/domains/booking/repository"
	"hotelier/internal/domains/payment/model"
	"hotelier/internal/domains/payment/model/dto"
	"hotelier/internal/domains/payment/repository"
	"hotelier/internal/domains/payment/service"
	"hotelier/shared/failure"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (service.Payment, int64) {
	t.Helper()

	cfg := &config.Config{}
	cfg.Store.MaxConflictRetry = 3

	otl := mocks.NewOtel()
	store := recordstore.New(recordstore.NewMemoryBackend(), cfg, otl)
	bookings := bookingRepo.New(store, otl)

	booking := bookingModel.Booking{CustomerID: 1, RoomID: 1, ChannelID: 1, Status: bookingModel.StatusConfirmed, TotalAmount: 300}
	require.NoError(t, bookings.Insert(context.Background(), &booking))

	return service.New(store, repository.New(store, otl), bookings, otl), booking.ID
}

func ptr[T any](value T) *T {
	return &value
}

func TestCreate(t *testing.T) {
	svc, bookingID := setup(t)
	ctx := context.Background()

	pending, err := svc.Create(ctx, dto.CreatePaymentRequest{BookingID: bookingID, Amount: 100, Method: model.MethodCash})
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, pending.Status)
	assert.Empty(t, pending.PaidAt)

	paid, err := svc.Create(ctx, dto.CreatePaymentRequest{
		BookingID: bookingID, Amount: 100, Method: model.MethodCard, Status: ptr(model.StatusCompleted),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, paid.PaidAt)

	_, err = svc.Create(ctx, dto.CreatePaymentRequest{BookingID: bookingID + 1, Amount: 100, Method: model.MethodCash})
	assert.ErrorIs(t, err, failure.ErrValidation)
}

func TestUpdate(t *testing.T) {
	svc, bookingID := setup(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, dto.CreatePaymentRequest{BookingID: bookingID, Amount: 100, Method: model.MethodCash})
	require.NoError(t, err)

	res, err := svc.Update(ctx, dto.UpdatePaymentRequest{Amount: ptr(120.0)}, created.ID)
	require.NoError(t, err)
	assert.InDelta(t, 120, res.Amount, 0)

	res, err = svc.Update(ctx, dto.UpdatePaymentRequest{Status: ptr(model.StatusCompleted)}, created.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, res.Status)
	assert.NotEmpty(t, res.PaidAt)

	_, err = svc.Update(ctx, dto.UpdatePaymentRequest{Amount: ptr(90.0)}, created.ID)
	assert.ErrorIs(t, err, failure.ErrValidation)

	_, err = svc.Update(ctx, dto.UpdatePaymentRequest{Status: ptr(model.StatusPending)}, created.ID)
	assert.ErrorIs(t, err, failure.ErrInvalidTransition)

	res, err = svc.Update(ctx, dto.UpdatePaymentRequest{Status: ptr(model.StatusRefunded)}, created.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusRefunded, res.Status)

	_, err = svc.Update(ctx, dto.UpdatePaymentRequest{Status: ptr(model.StatusCompleted)}, created.ID)
	assert.ErrorIs(t, err, failure.ErrInvalidTransition)

	_, err = svc.Update(ctx, dto.UpdatePaymentRequest{Reference: ptr("x")}, created.ID+10)
	assert.ErrorIs(t, err, failure.ErrNotFound)
}

func TestBalance(t *testing.T) {
	svc, bookingID := setup(t)
	ctx := context.Background()

	for _, req := range []dto.CreatePaymentRequest{
		{BookingID: bookingID, Amount: 100, Method: model.MethodCash, Status: ptr(model.StatusCompleted)},
		{BookingID: bookingID, Amount: 50.5, Method: model.MethodCard},
	} {
		_, err := svc.Create(ctx, req)
		require.NoError(t, err)
	}

	res, err := svc.Balance(ctx, bookingID)
	require.NoError(t, err)

	assert.Equal(t, dto.BalanceResponse{
		BookingID:   bookingID,
		TotalAmount: 300,
		Paid:        100,
		Pending:     50.5,
		Outstanding: 200,
	}, res)

	_, err = svc.Balance(ctx, bookingID+1)
	assert.ErrorIs(t, err, failure.ErrNotFound)
}

func TestReconcile(t *testing.T) {
	booking := bookingModel.Booking{ID: 7, TotalAmount: 250}

	tests := []struct {
		name     string
		payments []model.Payment
		want     dto.BalanceResponse
	}{
		{
			name: "nothing paid",
			want: dto.BalanceResponse{BookingID: 7, TotalAmount: 250, Outstanding: 250},
		},
		{
			name: "settled exactly",
			payments: []model.Payment{
				{Amount: 200, Status: model.StatusCompleted},
				{Amount: 50, Status: model.StatusCompleted},
				{Amount: 80, Status: model.StatusFailed},
			},
			want: dto.BalanceResponse{BookingID: 7, TotalAmount: 250, Paid: 250, Settled: true},
		},
		{
			name: "refund reopens the balance",
			payments: []model.Payment{
				{Amount: 250, Status: model.StatusRefunded},
				{Amount: 100, Status: model.StatusCompleted},
			},
			want: dto.BalanceResponse{BookingID: 7, TotalAmount: 250, Paid: 100, Refunded: 250, Outstanding: 150},
		},
		{
			name:     "overpaid",
			payments: []model.Payment{{Amount: 300, Status: model.StatusCompleted}},
			want:     dto.BalanceResponse{BookingID: 7, TotalAmount: 250, Paid: 300, Outstanding: -50, Settled: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, service.Reconcile(booking, tt.payments))
		})
	}
}
