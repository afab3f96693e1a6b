package service

import (
	"context"
	"fmt"
	"hotelier/infras/otel"
	"hotelier/infras/recordstore"
	"hotelier/internal/domains/availability"
	"hotelier/internal/domains/availability/model/dto"
	bookingModel "hotelier/internal/domains/booking/model"
	bookingRepo "hotelier/internal/domains/booking/repository"
	roomModel "hotelier/internal/domains/room/model"
	roomRepo "hotelier/internal/domains/room/repository"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"

	"github.com/rs/zerolog/log"
)

type Availability interface {
	FindAvailableRooms(ctx context.Context, req dto.AvailableRoomsRequest) (dto.AvailableRoomsResponse, error)
}

type serviceImpl struct {
	store    recordstore.Store
	rooms    roomRepo.Room
	bookings bookingRepo.Booking
	otel     otel.Otel
}

func New(store recordstore.Store, rooms roomRepo.Room, bookings bookingRepo.Booking, otel otel.Otel) Availability {
	return &serviceImpl{
		store:    store,
		rooms:    rooms,
		bookings: bookings,
		otel:     otel,
	}
}

// FindAvailableRooms never reads through the cache: rooms and bookings come from one snapshot.
func (s *serviceImpl) FindAvailableRooms(ctx context.Context, req dto.AvailableRoomsRequest) (res dto.AvailableRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".FindAvailableRooms")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	checkIn, checkOut, err := availability.ParseRange(req.CheckIn, req.CheckOut)
	if err != nil {
		return res, err
	}

	scope.SetAttribute("check_in", checkIn.String())
	scope.SetAttribute("check_out", checkOut.String())

	var available []roomModel.Room

	err = s.store.View(ctx, func(tx *recordstore.Tx) error {
		rooms, err := s.rooms.FindTx(ctx, tx, gDto.FilterGroup{})
		if err != nil {
			return err
		}

		bookings, err := s.bookings.FindTx(ctx, tx, gDto.FilterGroup{
			Filters: []gDto.Matcher{
				gDto.Filter{
					Field:    bookingModel.FieldStatus,
					Value:    []bookingModel.Status{bookingModel.StatusPending, bookingModel.StatusConfirmed},
					Operator: gDto.FilterOperatorIn,
				},
			},
		})
		if err != nil {
			return err
		}

		available = availability.Available(rooms, bookings, checkIn, checkOut)

		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to find available rooms")

		return res, fmt.Errorf("failed to find available rooms: %w", err)
	}

	res.FromModels(checkIn, checkOut, available)

	return res, nil
}
