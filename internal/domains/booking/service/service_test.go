package service_test

import (
	"context"
	"errors"
	"hotelier/config"
	"hotelier/infras/kafka"
	kafkaMocks "hotelier/infras/kafka/mocks"
	"hotelier/infras/otel/mocks"
	"hotelier/infras/recordstore"
	bookingModel "hotelier/internal/domains/booking/model"
	"hotelier/internal/domains/booking/model/dto"
	bookingRepo "hotelier/internal/domains/booking/repository"
	"hotelier/internal/domains/booking/service"
	channelModel "hotelier/internal/domains/channel/model"
	channelRepo "hotelier/internal/domains/channel/repository"
	customerModel "hotelier/internal/domains/customer/model"
	customerRepo "hotelier/internal/domains/customer/repository"
	notificationModel "hotelier/internal/domains/notification/model"
	notificationRepo "hotelier/internal/domains/notification/repository"
	roomModel "hotelier/internal/domains/room/model"
	roomRepo "hotelier/internal/domains/room/repository"
	roomTypeModel "hotelier/internal/domains/roomtype/model"
	roomTypeRepo "hotelier/internal/domains/roomtype/repository"
	"hotelier/shared"
	"hotelier/shared/cache"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/failure"
	"hotelier/shared/timezone"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	ctx           context.Context
	service       service.Booking
	rooms         roomRepo.Room
	customers     customerRepo.Customer
	channels      channelRepo.Channel
	notifications notificationRepo.Notification
	roomTypeID    int64
	customerID    int64
	channelID     int64
}

func newFixture(t *testing.T, client kafka.Client) *fixture {
	t.Helper()

	cfg := &config.Config{}
	cfg.Store.MaxConflictRetry = 3
	cfg.App.Loyalty.AmountPerPoint = 1

	otl := mocks.NewOtel()
	store := recordstore.New(recordstore.NewMemoryBackend(), cfg, otl)

	f := &fixture{
		ctx:           context.WithValue(context.Background(), constant.ContextKeyUserID, "staff-1"),
		rooms:         roomRepo.New(store, otl),
		customers:     customerRepo.New(store, otl),
		channels:      channelRepo.New(store, otl),
		notifications: notificationRepo.New(store, otl),
	}

	roomTypes := roomTypeRepo.New(store, otl)
	f.service = service.New(store, bookingRepo.New(store, otl), f.rooms, roomTypes, f.customers, f.channels,
		f.notifications, cfg, cache.NewNoopCache(), client, otl)

	roomType := roomTypeModel.RoomType{Name: "Deluxe", BasePrice: 100, Capacity: 3}
	require.NoError(t, roomTypes.Insert(f.ctx, &roomType))
	f.roomTypeID = roomType.ID

	customer := customerModel.Customer{Name: "Jane Doe", Email: "jane@example.com", Phone: "0800", Status: customerModel.StatusActive}
	require.NoError(t, f.customers.Insert(f.ctx, &customer))
	f.customerID = customer.ID

	channel := channelModel.Channel{Name: "Direct", Active: true}
	require.NoError(t, f.channels.Insert(f.ctx, &channel))
	f.channelID = channel.ID

	return f
}

func (f *fixture) addRoom(t *testing.T, number string, status roomModel.Status) int64 {
	t.Helper()

	room := roomModel.Room{Number: number, RoomTypeID: f.roomTypeID, Status: status}
	require.NoError(t, f.rooms.Insert(f.ctx, &room))

	return room.ID
}

func (f *fixture) roomStatus(t *testing.T, id int64) roomModel.Status {
	t.Helper()

	room, err := f.rooms.Get(f.ctx, shared.FilterByID(id, roomModel.FieldID))
	require.NoError(t, err)

	return room.Status
}

func (f *fixture) request(roomID int64, from, to int) dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		CustomerID: f.customerID,
		RoomID:     roomID,
		ChannelID:  f.channelID,
		CheckIn:    day(from),
		CheckOut:   day(to),
	}
}

// day formats today plus offset days.
func day(offset int) string {
	return timezone.Today().AddDate(0, 0, offset).Format(constant.CalendarDate)
}

func ptr[T any](value T) *T {
	return &value
}

func TestCreate(t *testing.T) {
	f := newFixture(t, kafka.NewNoop())
	roomID := f.addRoom(t, "101", roomModel.StatusAvailable)

	res, err := f.service.Create(f.ctx, f.request(roomID, 0, 3))
	require.NoError(t, err)

	assert.Equal(t, bookingModel.StatusPending, res.Status)
	assert.Equal(t, 3, res.Nights)
	assert.InDelta(t, 300, res.TotalAmount, 0.001)
	assert.Equal(t, int64(300), res.PointsEarned)
	assert.Equal(t, "staff-1", res.StaffID)
	assert.Regexp(t, `^BK\d{8}-\d{6}$`, res.Code)
	assert.Equal(t, 1, res.Adults)

	assert.Equal(t, roomModel.StatusOccupied, f.roomStatus(t, roomID))

	customer, err := f.customers.Get(f.ctx, shared.FilterByID(f.customerID, customerModel.FieldID))
	require.NoError(t, err)
	assert.Equal(t, int64(300), customer.LoyaltyPoints)

	notifications, err := f.notifications.GetAll(f.ctx, gDto.QueryParams{}, gDto.FilterGroup{})
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, notificationModel.KindBookingCreated, notifications[0].Kind)
	assert.Equal(t, res.ID, notifications[0].ReferenceID)
}

func TestCreate_LoyaltyDiscount(t *testing.T) {
	f := newFixture(t, kafka.NewNoop())
	roomID := f.addRoom(t, "101", roomModel.StatusAvailable)

	customer, err := f.customers.Get(f.ctx, shared.FilterByID(f.customerID, customerModel.FieldID))
	require.NoError(t, err)

	customer.LoyaltyPoints = 5000
	require.NoError(t, f.customers.Update(f.ctx, customer))

	res, err := f.service.Create(f.ctx, f.request(roomID, 1, 3))
	require.NoError(t, err)

	assert.InDelta(t, 10, res.DiscountPercent, 0)
	assert.Equal(t, "loyalty tier GOLD", res.DiscountReason)
	assert.InDelta(t, 180, res.TotalAmount, 0.001)
	assert.Equal(t, int64(360), res.PointsEarned)
}

func TestCreate_ExplicitTotal(t *testing.T) {
	f := newFixture(t, kafka.NewNoop())
	roomID := f.addRoom(t, "101", roomModel.StatusAvailable)

	req := f.request(roomID, 1, 3)
	req.TotalAmount = ptr(450.0)
	req.Adults = ptr(2)

	res, err := f.service.Create(f.ctx, req)
	require.NoError(t, err)

	assert.InDelta(t, 450, res.TotalAmount, 0)
	assert.Equal(t, 2, res.Adults)
}

func TestCreate_Rejected(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(t *testing.T, f *fixture, req *dto.CreateBookingRequest)
		wantErr error
	}{
		{
			name:    "missing customer",
			mutate:  func(_ *testing.T, _ *fixture, req *dto.CreateBookingRequest) { req.CustomerID = 0 },
			wantErr: failure.ErrValidation,
		},
		{
			name:    "missing check in",
			mutate:  func(_ *testing.T, _ *fixture, req *dto.CreateBookingRequest) { req.CheckIn = "" },
			wantErr: failure.ErrValidation,
		},
		{
			name:    "unknown customer",
			mutate:  func(_ *testing.T, _ *fixture, req *dto.CreateBookingRequest) { req.CustomerID = 99 },
			wantErr: failure.ErrValidation,
		},
		{
			name:    "unknown room",
			mutate:  func(_ *testing.T, _ *fixture, req *dto.CreateBookingRequest) { req.RoomID = 99 },
			wantErr: failure.ErrValidation,
		},
		{
			name:    "unknown channel",
			mutate:  func(_ *testing.T, _ *fixture, req *dto.CreateBookingRequest) { req.ChannelID = 99 },
			wantErr: failure.ErrValidation,
		},
		{
			name:    "malformed date",
			mutate:  func(_ *testing.T, _ *fixture, req *dto.CreateBookingRequest) { req.CheckIn = "2025-02-30" },
			wantErr: failure.ErrInvalidDateRange,
		},
		{
			name:    "check out before check in",
			mutate:  func(_ *testing.T, _ *fixture, req *dto.CreateBookingRequest) { req.CheckIn, req.CheckOut = day(5), day(2) },
			wantErr: failure.ErrInvalidDateRange,
		},
		{
			name:    "zero nights",
			mutate:  func(_ *testing.T, _ *fixture, req *dto.CreateBookingRequest) { req.CheckOut = req.CheckIn },
			wantErr: failure.ErrInvalidDateRange,
		},
		{
			name:    "over capacity",
			mutate:  func(_ *testing.T, _ *fixture, req *dto.CreateBookingRequest) { req.Adults, req.Children = ptr(3), 1 },
			wantErr: failure.ErrValidation,
		},
		{
			name: "room in maintenance",
			mutate: func(t *testing.T, f *fixture, req *dto.CreateBookingRequest) {
				req.RoomID = f.addRoom(t, "900", roomModel.StatusMaintenance)
			},
			wantErr: failure.ErrRoomUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, kafka.NewNoop())
			roomID := f.addRoom(t, "101", roomModel.StatusAvailable)

			req := f.request(roomID, 1, 3)
			tt.mutate(t, f, &req)

			_, err := f.service.Create(f.ctx, req)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)

			bookings, err := f.service.GetAll(f.ctx, gDto.QueryParams{}, gDto.FilterGroup{})
			require.NoError(t, err)
			assert.Zero(t, bookings.TotalData)
			assert.Equal(t, roomModel.StatusAvailable, f.roomStatus(t, roomID))
		})
	}
}

func TestCreate_Overlap(t *testing.T) {
	tests := []struct {
		name      string
		from, to  int
		available bool
	}{
		{name: "same stay", from: 2, to: 5, available: false},
		{name: "starts inside", from: 4, to: 8, available: false},
		{name: "ends inside", from: 0, to: 3, available: false},
		{name: "encloses", from: 1, to: 6, available: false},
		{name: "ends on check in", from: 0, to: 2, available: true},
		{name: "starts on check out", from: 5, to: 7, available: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, kafka.NewNoop())
			roomID := f.addRoom(t, "101", roomModel.StatusAvailable)

			_, err := f.service.Create(f.ctx, f.request(roomID, 2, 5))
			require.NoError(t, err)

			_, err = f.service.Create(f.ctx, f.request(roomID, tt.from, tt.to))
			if tt.available {
				assert.NoError(t, err)

				return
			}

			assert.ErrorIs(t, err, failure.ErrRoomUnavailable)
		})
	}
}

func TestCreate_ConcurrentSameRoom(t *testing.T) {
	const attempts = 20

	f := newFixture(t, kafka.NewNoop())
	roomID := f.addRoom(t, "101", roomModel.StatusAvailable)

	var wg sync.WaitGroup

	errs := make([]error, attempts)

	for i := range attempts {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, errs[i] = f.service.Create(f.ctx, f.request(roomID, 2, 5))
		}()
	}

	wg.Wait()

	created := 0

	for _, err := range errs {
		if err == nil {
			created++

			continue
		}

		assert.ErrorIs(t, err, failure.ErrRoomUnavailable)
	}

	assert.Equal(t, 1, created)

	bookings, err := f.service.GetAll(f.ctx, gDto.QueryParams{}, gDto.FilterGroup{})
	require.NoError(t, err)
	assert.Equal(t, 1, bookings.TotalData)
}

func TestCreate_CancelledBookingFreesDates(t *testing.T) {
	f := newFixture(t, kafka.NewNoop())
	roomID := f.addRoom(t, "101", roomModel.StatusAvailable)

	first, err := f.service.Create(f.ctx, f.request(roomID, 2, 5))
	require.NoError(t, err)

	_, err = f.service.Cancel(f.ctx, dto.CancelBookingRequest{}, first.ID)
	require.NoError(t, err)

	_, err = f.service.Create(f.ctx, f.request(roomID, 2, 5))
	assert.NoError(t, err)
}

func TestCancel(t *testing.T) {
	t.Run("only booking frees the room", func(t *testing.T) {
		f := newFixture(t, kafka.NewNoop())
		roomID := f.addRoom(t, "101", roomModel.StatusAvailable)

		created, err := f.service.Create(f.ctx, f.request(roomID, 0, 2))
		require.NoError(t, err)

		res, err := f.service.Cancel(f.ctx, dto.CancelBookingRequest{Reason: "change of plans"}, created.ID)
		require.NoError(t, err)

		assert.Equal(t, bookingModel.StatusCancelled, res.Status)
		assert.Equal(t, "change of plans", res.CancellationReason)
		assert.NotEmpty(t, res.CancelledAt)
		assert.Equal(t, roomModel.StatusAvailable, f.roomStatus(t, roomID))
	})

	t.Run("guest in house keeps the room occupied", func(t *testing.T) {
		f := newFixture(t, kafka.NewNoop())
		roomID := f.addRoom(t, "101", roomModel.StatusAvailable)

		_, err := f.service.Create(f.ctx, f.request(roomID, 0, 2))
		require.NoError(t, err)

		future, err := f.service.Create(f.ctx, f.request(roomID, 5, 7))
		require.NoError(t, err)

		_, err = f.service.Cancel(f.ctx, dto.CancelBookingRequest{}, future.ID)
		require.NoError(t, err)

		assert.Equal(t, roomModel.StatusOccupied, f.roomStatus(t, roomID))
	})

	t.Run("cancelled twice", func(t *testing.T) {
		f := newFixture(t, kafka.NewNoop())
		roomID := f.addRoom(t, "101", roomModel.StatusAvailable)

		created, err := f.service.Create(f.ctx, f.request(roomID, 0, 2))
		require.NoError(t, err)

		_, err = f.service.Cancel(f.ctx, dto.CancelBookingRequest{}, created.ID)
		require.NoError(t, err)

		_, err = f.service.Cancel(f.ctx, dto.CancelBookingRequest{}, created.ID)
		assert.ErrorIs(t, err, failure.ErrInvalidTransition)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t, kafka.NewNoop())

		_, err := f.service.Cancel(f.ctx, dto.CancelBookingRequest{}, 42)
		assert.ErrorIs(t, err, failure.ErrNotFound)
	})
}

func TestUpdate(t *testing.T) {
	t.Run("empty patch leaves the booking untouched", func(t *testing.T) {
		f := newFixture(t, kafka.NewNoop())
		roomID := f.addRoom(t, "101", roomModel.StatusAvailable)

		created, err := f.service.Create(f.ctx, f.request(roomID, 1, 3))
		require.NoError(t, err)

		res, err := f.service.Update(f.ctx, dto.UpdateBookingRequest{}, created.ID)
		require.NoError(t, err)

		assert.Equal(t, created, res)
	})

	t.Run("status follows the lifecycle", func(t *testing.T) {
		f := newFixture(t, kafka.NewNoop())
		roomID := f.addRoom(t, "101", roomModel.StatusAvailable)

		created, err := f.service.Create(f.ctx, f.request(roomID, 0, 1))
		require.NoError(t, err)

		res, err := f.service.Update(f.ctx, dto.UpdateBookingRequest{Status: ptr(bookingModel.StatusConfirmed)}, created.ID)
		require.NoError(t, err)
		assert.Equal(t, bookingModel.StatusConfirmed, res.Status)

		res, err = f.service.Update(f.ctx, dto.UpdateBookingRequest{Status: ptr(bookingModel.StatusCompleted)}, created.ID)
		require.NoError(t, err)
		assert.Equal(t, bookingModel.StatusCompleted, res.Status)
		assert.Equal(t, roomModel.StatusAvailable, f.roomStatus(t, roomID))

		_, err = f.service.Update(f.ctx, dto.UpdateBookingRequest{Status: ptr(bookingModel.StatusConfirmed)}, created.ID)
		assert.ErrorIs(t, err, failure.ErrInvalidTransition)

		_, err = f.service.Update(f.ctx, dto.UpdateBookingRequest{CheckOut: ptr(day(4))}, created.ID)
		assert.ErrorIs(t, err, failure.ErrInvalidTransition)
	})

	t.Run("pending cannot skip to completed", func(t *testing.T) {
		f := newFixture(t, kafka.NewNoop())
		roomID := f.addRoom(t, "101", roomModel.StatusAvailable)

		created, err := f.service.Create(f.ctx, f.request(roomID, 0, 1))
		require.NoError(t, err)

		_, err = f.service.Update(f.ctx, dto.UpdateBookingRequest{Status: ptr(bookingModel.StatusCompleted)}, created.ID)
		assert.ErrorIs(t, err, failure.ErrInvalidTransition)
	})

	t.Run("extending over another booking", func(t *testing.T) {
		f := newFixture(t, kafka.NewNoop())
		roomID := f.addRoom(t, "101", roomModel.StatusAvailable)

		created, err := f.service.Create(f.ctx, f.request(roomID, 1, 3))
		require.NoError(t, err)

		_, err = f.service.Create(f.ctx, f.request(roomID, 4, 6))
		require.NoError(t, err)

		_, err = f.service.Update(f.ctx, dto.UpdateBookingRequest{CheckOut: ptr(day(5))}, created.ID)
		assert.ErrorIs(t, err, failure.ErrRoomUnavailable)

		res, err := f.service.Update(f.ctx, dto.UpdateBookingRequest{CheckOut: ptr(day(4))}, created.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, res.Nights)
		assert.InDelta(t, 300, res.TotalAmount, 0.001)
	})

	t.Run("moving rooms frees the old one", func(t *testing.T) {
		f := newFixture(t, kafka.NewNoop())
		oldRoom := f.addRoom(t, "101", roomModel.StatusAvailable)
		newRoom := f.addRoom(t, "102", roomModel.StatusAvailable)

		created, err := f.service.Create(f.ctx, f.request(oldRoom, 0, 2))
		require.NoError(t, err)

		res, err := f.service.Update(f.ctx, dto.UpdateBookingRequest{RoomID: ptr(newRoom)}, created.ID)
		require.NoError(t, err)

		assert.Equal(t, newRoom, res.RoomID)
		assert.Equal(t, roomModel.StatusAvailable, f.roomStatus(t, oldRoom))
		assert.Equal(t, roomModel.StatusOccupied, f.roomStatus(t, newRoom))
	})

	t.Run("invalid dates", func(t *testing.T) {
		f := newFixture(t, kafka.NewNoop())
		roomID := f.addRoom(t, "101", roomModel.StatusAvailable)

		created, err := f.service.Create(f.ctx, f.request(roomID, 1, 3))
		require.NoError(t, err)

		_, err = f.service.Update(f.ctx, dto.UpdateBookingRequest{CheckOut: ptr(day(1))}, created.ID)
		assert.ErrorIs(t, err, failure.ErrInvalidDateRange)

		_, err = f.service.Update(f.ctx, dto.UpdateBookingRequest{CheckIn: ptr("tomorrow")}, created.ID)
		assert.ErrorIs(t, err, failure.ErrInvalidDateRange)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t, kafka.NewNoop())

		_, err := f.service.Update(f.ctx, dto.UpdateBookingRequest{Adults: ptr(2)}, 42)
		assert.ErrorIs(t, err, failure.ErrNotFound)
	})
}

func TestGet(t *testing.T) {
	f := newFixture(t, kafka.NewNoop())
	roomID := f.addRoom(t, "101", roomModel.StatusAvailable)

	created, err := f.service.Create(f.ctx, f.request(roomID, 1, 3))
	require.NoError(t, err)

	res, err := f.service.Get(f.ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Code, res.Code)

	_, err = f.service.Get(f.ctx, created.ID+1)
	assert.ErrorIs(t, err, failure.ErrNotFound)
}

func TestEvents(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := kafkaMocks.NewMockClient(ctrl)

	f := newFixture(t, client)
	roomID := f.addRoom(t, "101", roomModel.StatusAvailable)

	var events []string

	client.EXPECT().SendMessages(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, messages ...kafka.Message) error {
		for _, message := range messages {
			events = append(events, message.EventType)
		}

		return errors.New("broker down")
	}).Times(2)

	created, err := f.service.Create(f.ctx, f.request(roomID, 1, 3))
	require.NoError(t, err, "a broker outage must not fail the booking")

	_, err = f.service.Cancel(f.ctx, dto.CancelBookingRequest{}, created.ID)
	require.NoError(t, err)

	assert.Equal(t, []string{dto.EventBookingCreated, dto.EventBookingCancelled}, events)
}
