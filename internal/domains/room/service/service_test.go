package service_test

import (
	"context"
	"hotelier/config"
	"hotelier/infras/otel/mocks"
	"hotelier/infras/recordstore"
	"hotelier/internal/domains/room/model"
	"hotelier/internal/domains/room/model/dto"
	"hotelier/internal/domains/room/repository"
	"hotelier/internal/domains/room/service"
	roomTypeModel "hotelier/internal/domains/roomtype/model"
	roomTypeRepo "hotelier/internal/domains/roomtype/repository"
	"hotelier/shared/cache"
	gDto "hotelier/shared/dto"
	"hotelier/shared/failure"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) (service.Room, int64) {
	t.Helper()

	cfg := &config.Config{}
	cfg.Store.MaxConflictRetry = 3

	otl := mocks.NewOtel()
	store := recordstore.New(recordstore.NewMemoryBackend(), cfg, otl)
	roomTypes := roomTypeRepo.New(store, otl)

	roomType := roomTypeModel.RoomType{Name: "Standard", BasePrice: 80, Capacity: 2}
	require.NoError(t, roomTypes.Insert(context.Background(), &roomType))

	return service.New(store, repository.New(store, otl), roomTypes, cfg, cache.NewNoopCache(), otl), roomType.ID
}

func TestCreate(t *testing.T) {
	svc, roomTypeID := newService(t)
	ctx := context.Background()

	res, err := svc.Create(ctx, dto.CreateRoomRequest{Number: "101", RoomTypeID: roomTypeID})
	require.NoError(t, err)
	assert.Equal(t, model.StatusAvailable, res.Status)

	_, err = svc.Create(ctx, dto.CreateRoomRequest{Number: "101", RoomTypeID: roomTypeID})
	assert.ErrorIs(t, err, failure.ErrConflict)

	_, err = svc.Create(ctx, dto.CreateRoomRequest{Number: "102", RoomTypeID: roomTypeID + 1})
	assert.ErrorIs(t, err, failure.ErrValidation)

	maintenance := model.StatusMaintenance
	res, err = svc.Create(ctx, dto.CreateRoomRequest{Number: "103", RoomTypeID: roomTypeID, Status: &maintenance})
	require.NoError(t, err)
	assert.Equal(t, model.StatusMaintenance, res.Status)

	rooms, err := svc.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{})
	require.NoError(t, err)
	assert.Equal(t, 2, rooms.TotalData)
}

func TestUpdateStatusAndDelete(t *testing.T) {
	svc, roomTypeID := newService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, dto.CreateRoomRequest{Number: "201", RoomTypeID: roomTypeID})
	require.NoError(t, err)

	res, err := svc.UpdateStatus(ctx, dto.UpdateRoomStatusRequest{Status: model.StatusCleaning}, created.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCleaning, res.Status)

	require.NoError(t, svc.Delete(ctx, created.ID))

	res, err = svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusInactive, res.Status)

	_, err = svc.UpdateStatus(ctx, dto.UpdateRoomStatusRequest{Status: model.StatusAvailable}, created.ID+5)
	assert.ErrorIs(t, err, failure.ErrNotFound)
}
