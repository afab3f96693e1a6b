package service

import (
	"context"
	"errors"
	"fmt"
	"hotelier/config"
	"hotelier/infras/kafka"
	"hotelier/infras/otel"
	"hotelier/infras/recordstore"
	"hotelier/internal/domains/availability"
	"hotelier/internal/domains/booking/model"
	"hotelier/internal/domains/booking/model/dto"
	"hotelier/internal/domains/booking/repository"
	channelModel "hotelier/internal/domains/channel/model"
	channelRepo "hotelier/internal/domains/channel/repository"
	customerModel "hotelier/internal/domains/customer/model"
	customerRepo "hotelier/internal/domains/customer/repository"
	"hotelier/internal/domains/loyalty"
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
	gModel "hotelier/shared/model"
	"hotelier/shared/timezone"
	"hotelier/shared/validator"
	"math"
	"slices"
	"strconv"

	"github.com/rs/zerolog/log"
)

// errUnchanged aborts an update mutation whose patch would not change anything.
var errUnchanged = errors.New("booking unchanged")

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Get(ctx context.Context, id int64) (dto.BookingResponse, error)
	Update(ctx context.Context, req dto.UpdateBookingRequest, id int64) (dto.BookingResponse, error)
	Cancel(ctx context.Context, req dto.CancelBookingRequest, id int64) (dto.BookingResponse, error)
}

type serviceImpl struct {
	store         recordstore.Store
	repo          repository.Booking
	rooms         roomRepo.Room
	roomTypes     roomTypeRepo.RoomType
	customers     customerRepo.Customer
	channels      channelRepo.Channel
	notifications notificationRepo.Notification
	cfg           *config.Config
	cache         cache.RedisCache
	kafka         kafka.Client
	otel          otel.Otel
}

func New(
	store recordstore.Store,
	repo repository.Booking,
	rooms roomRepo.Room,
	roomTypes roomTypeRepo.RoomType,
	customers customerRepo.Customer,
	channels channelRepo.Channel,
	notifications notificationRepo.Notification,
	cfg *config.Config,
	cache cache.RedisCache,
	kafka kafka.Client,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		store:         store,
		repo:          repo,
		rooms:         rooms,
		roomTypes:     roomTypes,
		customers:     customers,
		channels:      channels,
		notifications: notifications,
		cfg:           cfg,
		cache:         cache,
		kafka:         kafka,
		otel:          otel,
	}
}

// Create reserves a room. Every check and every write happens inside one store mutation,
// so a competing booking for the same room either sees this one or forces a retry.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err //nolint:wrapcheck
	}

	checkIn, checkOut, err := availability.ParseRange(req.CheckIn, req.CheckOut)
	if err != nil {
		return res, err
	}

	staff, _ := ctx.Value(constant.ContextKeyUserID).(string)

	var booking model.Booking

	err = s.store.Update(ctx, func(tx *recordstore.Tx) error {
		customer, err := s.customerTx(ctx, tx, req.CustomerID)
		if err != nil {
			return err
		}

		if err := s.channelTx(ctx, tx, req.ChannelID); err != nil {
			return err
		}

		room, roomType, err := s.roomTx(ctx, tx, req.RoomID)
		if err != nil {
			return err
		}

		adults := 1
		if req.Adults != nil {
			adults = *req.Adults
		}

		if err := checkOccupancy(adults, req.Children, roomType); err != nil {
			return err
		}

		if err := s.ensureFreeTx(ctx, tx, room, checkIn, checkOut, 0); err != nil {
			return err
		}

		booking = model.Booking{
			CustomerID:      customer.ID,
			RoomID:          room.ID,
			ChannelID:       req.ChannelID,
			CheckIn:         checkIn,
			CheckOut:        checkOut,
			Adults:          adults,
			Children:        req.Children,
			Status:          model.StatusPending,
			DiscountReason:  req.DiscountReason,
			SpecialRequests: req.SpecialRequests,
			StaffID:         staff,
		}
		booking.Stamp(timezone.Now(), staff)

		if req.TotalAmount != nil {
			booking.TotalAmount = *req.TotalAmount
			if req.DiscountPercent != nil {
				booking.DiscountPercent = *req.DiscountPercent
			}
		} else {
			booking.DiscountPercent, booking.DiscountReason = discountFor(customer, req.DiscountPercent, req.DiscountReason)
			booking.TotalAmount = quote(roomType, checkIn, checkOut, booking.DiscountPercent)
		}

		booking.PointsEarned = loyalty.Accrue(customer.LoyaltyPoints, booking.TotalAmount, s.cfg.App.Loyalty.AmountPerPoint)

		if err := s.repo.InsertTx(ctx, tx, &booking); err != nil {
			return err
		}

		booking.Code = model.Code(checkIn, booking.ID)

		if err := s.repo.UpdateTx(ctx, tx, booking); err != nil {
			return err
		}

		if booking.PointsEarned > 0 {
			customer.LoyaltyPoints += booking.PointsEarned
			customer.Touch(timezone.Now(), staff)

			if err := s.customers.UpdateTx(ctx, tx, customer); err != nil {
				return err
			}
		}

		if err := s.occupyRoomTx(ctx, tx, room, staff); err != nil {
			return err
		}

		return s.notifyTx(ctx, tx, notificationModel.KindBookingCreated, booking,
			"New booking "+booking.Code,
			fmt.Sprintf("Room %s booked from %s to %s", room.Number, checkIn, checkOut),
			staff,
		)
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	scope.SetAttribute("booking.id", booking.ID)

	s.publish(ctx, dto.EventBookingCreated, booking, nil)

	go s.invalidate(ctx, []int64{booking.RoomID}, booking.CustomerID)

	res.FromModel(booking)

	return res, nil
}

// GetAll reads bookings straight from the store. Bookings change too often to cache.
func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == 0 {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	res.FromModel(booking)

	return res, nil
}

// Update applies a partial change. Moving the stay re-runs the overlap check without the booking itself,
// and status changes must follow PENDING -> CONFIRMED -> COMPLETED or go to CANCELLED.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBookingRequest, id int64) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err //nolint:wrapcheck
	}

	staff, _ := ctx.Value(constant.ContextKeyUserID).(string)

	var (
		booking  model.Booking
		previous model.Booking
		changed  []string
	)

	err = s.store.Update(ctx, func(tx *recordstore.Tx) error {
		current, err := s.bookingTx(ctx, tx, id)
		if err != nil {
			return err
		}

		previous = current
		booking = current

		changed, err = s.applyUpdateTx(ctx, tx, &booking, req)
		if err != nil {
			return err
		}

		if len(changed) == 0 {
			return errUnchanged
		}

		booking.Touch(timezone.Now(), staff)

		if booking.Status == model.StatusCancelled {
			now := timezone.Now()
			booking.CancelledAt = &now
		}

		if err := s.repo.UpdateTx(ctx, tx, booking); err != nil {
			return err
		}

		if err := s.moveRoomTx(ctx, tx, previous, booking, staff); err != nil {
			return err
		}

		kind := notificationModel.KindBookingUpdated
		if booking.Status == model.StatusCancelled {
			kind = notificationModel.KindBookingCancelled
		}

		return s.notifyTx(ctx, tx, kind, booking,
			"Booking "+booking.Code+" updated",
			fmt.Sprintf("Booking %s is %s for %s to %s", booking.Code, booking.Status, booking.CheckIn, booking.CheckOut),
			staff,
		)
	})
	if errors.Is(err, errUnchanged) {
		res.FromModel(booking)

		return res, nil
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to update booking")

		return res, fmt.Errorf("failed to update booking: %w", err)
	}

	event := dto.EventBookingUpdated
	if booking.Status == model.StatusCancelled {
		event = dto.EventBookingCancelled
	}

	s.publish(ctx, event, booking, changed)

	go s.invalidate(ctx, []int64{previous.RoomID, booking.RoomID}, booking.CustomerID)

	res.FromModel(booking)

	return res, nil
}

// Cancel moves an active booking to CANCELLED and frees the room unless someone else is staying in it today.
func (s *serviceImpl) Cancel(ctx context.Context, req dto.CancelBookingRequest, id int64) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	staff, _ := ctx.Value(constant.ContextKeyUserID).(string)

	var booking model.Booking

	err = s.store.Update(ctx, func(tx *recordstore.Tx) error {
		booking, err = s.bookingTx(ctx, tx, id)
		if err != nil {
			return err
		}

		if !booking.Status.CanTransitionTo(model.StatusCancelled) {
			return failure.InvalidTransition(fmt.Sprintf("booking %s is %s and cannot be cancelled", booking.Code, booking.Status)) //nolint:wrapcheck
		}

		now := timezone.Now()
		booking.Status = model.StatusCancelled
		booking.CancellationReason = req.Reason
		booking.CancelledAt = &now
		booking.Touch(now, staff)

		if err := s.repo.UpdateTx(ctx, tx, booking); err != nil {
			return err
		}

		if err := s.releaseRoomTx(ctx, tx, booking.RoomID, booking.ID, staff); err != nil {
			return err
		}

		message := "Booking " + booking.Code + " was cancelled"
		if req.Reason != "" {
			message += ": " + req.Reason
		}

		return s.notifyTx(ctx, tx, notificationModel.KindBookingCancelled, booking, "Booking "+booking.Code+" cancelled", message, staff)
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to cancel booking")

		return res, fmt.Errorf("failed to cancel booking: %w", err)
	}

	s.publish(ctx, dto.EventBookingCancelled, booking, []string{model.FieldStatus})

	go s.invalidate(ctx, []int64{booking.RoomID}, booking.CustomerID)

	res.FromModel(booking)

	return res, nil
}

// applyUpdateTx merges req into booking and returns the json names of the fields that changed.
func (s *serviceImpl) applyUpdateTx(ctx context.Context, tx *recordstore.Tx, booking *model.Booking, req dto.UpdateBookingRequest) ([]string, error) {
	original := *booking
	changed := []string{}

	checkIn, checkOut := booking.CheckIn, booking.CheckOut

	if req.CheckIn != nil {
		parsed, err := gModel.ParseDate(*req.CheckIn)
		if err != nil {
			return nil, failure.InvalidDateRange(fmt.Sprintf("check_in %q is not a calendar date", *req.CheckIn)) //nolint:wrapcheck
		}

		checkIn = parsed
	}

	if req.CheckOut != nil {
		parsed, err := gModel.ParseDate(*req.CheckOut)
		if err != nil {
			return nil, failure.InvalidDateRange(fmt.Sprintf("check_out %q is not a calendar date", *req.CheckOut)) //nolint:wrapcheck
		}

		checkOut = parsed
	}

	roomID := booking.RoomID
	if req.RoomID != nil {
		roomID = *req.RoomID
	}

	staysChanged := !checkIn.Equal(booking.CheckIn.Time) || !checkOut.Equal(booking.CheckOut.Time) || roomID != booking.RoomID

	if staysChanged && booking.Status.Terminal() {
		return nil, failure.InvalidTransition(fmt.Sprintf("booking %s is %s; its dates and room are final", booking.Code, booking.Status)) //nolint:wrapcheck
	}

	if req.Status != nil && *req.Status != booking.Status {
		if !booking.Status.CanTransitionTo(*req.Status) {
			return nil, failure.InvalidTransition(fmt.Sprintf("booking %s cannot move from %s to %s", booking.Code, booking.Status, *req.Status)) //nolint:wrapcheck
		}

		booking.Status = *req.Status
	}

	if req.ChannelID != nil && *req.ChannelID != booking.ChannelID {
		if err := s.channelTx(ctx, tx, *req.ChannelID); err != nil {
			return nil, err
		}

		booking.ChannelID = *req.ChannelID
	}

	if req.Adults != nil {
		booking.Adults = *req.Adults
	}

	if req.Children != nil {
		booking.Children = *req.Children
	}

	if req.DiscountPercent != nil {
		booking.DiscountPercent = *req.DiscountPercent
	}

	if req.DiscountReason != nil {
		booking.DiscountReason = *req.DiscountReason
	}

	if req.SpecialRequests != nil {
		booking.SpecialRequests = *req.SpecialRequests
	}

	needsRoom := staysChanged || booking.Adults != original.Adults || booking.Children != original.Children ||
		(req.TotalAmount == nil && booking.DiscountPercent != original.DiscountPercent)

	if needsRoom {
		if err := availability.ValidateRange(checkIn, checkOut); err != nil {
			return nil, err //nolint:wrapcheck
		}

		room, roomType, err := s.roomTx(ctx, tx, roomID)
		if err != nil {
			return nil, err
		}

		if err := checkOccupancy(booking.Adults, booking.Children, roomType); err != nil {
			return nil, err
		}

		if staysChanged && booking.Status.Active() {
			if err := s.ensureFreeTx(ctx, tx, room, checkIn, checkOut, booking.ID); err != nil {
				return nil, err
			}
		}

		booking.CheckIn, booking.CheckOut, booking.RoomID = checkIn, checkOut, roomID

		if req.TotalAmount == nil && (staysChanged || booking.DiscountPercent != original.DiscountPercent) {
			booking.TotalAmount = quote(roomType, checkIn, checkOut, booking.DiscountPercent)
		}
	}

	if req.TotalAmount != nil {
		booking.TotalAmount = *req.TotalAmount
	}

	if booking.ChannelID != original.ChannelID {
		changed = append(changed, model.FieldChannelID)
	}

	if booking.RoomID != original.RoomID {
		changed = append(changed, model.FieldRoomID)
	}

	if !booking.CheckIn.Equal(original.CheckIn.Time) {
		changed = append(changed, model.FieldCheckIn)
	}

	if !booking.CheckOut.Equal(original.CheckOut.Time) {
		changed = append(changed, model.FieldCheckOut)
	}

	if booking.Status != original.Status {
		changed = append(changed, model.FieldStatus)
	}

	if booking.Adults != original.Adults {
		changed = append(changed, "adults")
	}

	if booking.Children != original.Children {
		changed = append(changed, "children")
	}

	if booking.TotalAmount != original.TotalAmount {
		changed = append(changed, "total_amount")
	}

	if booking.DiscountPercent != original.DiscountPercent {
		changed = append(changed, "discount_percent")
	}

	if booking.DiscountReason != original.DiscountReason {
		changed = append(changed, "discount_reason")
	}

	if booking.SpecialRequests != original.SpecialRequests {
		changed = append(changed, "special_requests")
	}

	return changed, nil
}

// moveRoomTx keeps room status in line with an update: a new room is occupied, a room left behind
// or a stay that just ended is released.
func (s *serviceImpl) moveRoomTx(ctx context.Context, tx *recordstore.Tx, previous, booking model.Booking, staff string) error {
	if booking.RoomID != previous.RoomID {
		if err := s.releaseRoomTx(ctx, tx, previous.RoomID, booking.ID, staff); err != nil {
			return err
		}

		if booking.Status.Active() {
			room, _, err := s.roomTx(ctx, tx, booking.RoomID)
			if err != nil {
				return err
			}

			return s.occupyRoomTx(ctx, tx, room, staff)
		}
	}

	if previous.Status.Active() && booking.Status.Terminal() {
		return s.releaseRoomTx(ctx, tx, booking.RoomID, booking.ID, staff)
	}

	return nil
}

func (s *serviceImpl) bookingTx(ctx context.Context, tx *recordstore.Tx, id int64) (model.Booking, error) {
	booking, err := s.repo.GetTx(ctx, tx, shared.FilterByID(id, model.FieldID))
	if err != nil {
		return booking, err
	}

	if booking.ID == 0 {
		return booking, failure.NotFound("booking not found") //nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) customerTx(ctx context.Context, tx *recordstore.Tx, id int64) (customerModel.Customer, error) {
	customer, err := s.customers.GetTx(ctx, tx, shared.FilterByID(id, customerModel.FieldID))
	if err != nil {
		return customer, err
	}

	if customer.ID == 0 {
		return customer, failure.BadRequestFromString(fmt.Sprintf("customer %d does not exist", id)) //nolint:wrapcheck
	}

	if customer.Status != customerModel.StatusActive {
		return customer, failure.BadRequestFromString(fmt.Sprintf("customer %d is inactive", id)) //nolint:wrapcheck
	}

	return customer, nil
}

func (s *serviceImpl) channelTx(ctx context.Context, tx *recordstore.Tx, id int64) error {
	channel, err := s.channels.GetTx(ctx, tx, shared.FilterByID(id, channelModel.FieldID))
	if err != nil {
		return err
	}

	if channel.ID == 0 {
		return failure.BadRequestFromString(fmt.Sprintf("channel %d does not exist", id)) //nolint:wrapcheck
	}

	if !channel.Active {
		return failure.BadRequestFromString(fmt.Sprintf("channel %s is inactive", channel.Name)) //nolint:wrapcheck
	}

	return nil
}

// roomTx loads a room together with its type.
func (s *serviceImpl) roomTx(ctx context.Context, tx *recordstore.Tx, id int64) (roomModel.Room, roomTypeModel.RoomType, error) {
	var roomType roomTypeModel.RoomType

	room, err := s.rooms.GetTx(ctx, tx, shared.FilterByID(id, roomModel.FieldID))
	if err != nil {
		return room, roomType, err
	}

	if room.ID == 0 {
		return room, roomType, failure.BadRequestFromString(fmt.Sprintf("room %d does not exist", id)) //nolint:wrapcheck
	}

	roomType, err = s.roomTypes.GetTx(ctx, tx, shared.FilterByID(room.RoomTypeID, roomTypeModel.FieldID))

	return room, roomType, err //nolint:wrapcheck
}

func (s *serviceImpl) roomBookingsTx(ctx context.Context, tx *recordstore.Tx, roomID int64) ([]model.Booking, error) {
	return s.repo.FindTx(ctx, tx, gDto.FilterGroup{ //nolint:wrapcheck
		Filters: []gDto.Matcher{shared.FilterByField(model.FieldRoomID, roomID)},
	})
}

// ensureFreeTx fails with RoomUnavailable when the room is out of service or already booked for part of the stay.
func (s *serviceImpl) ensureFreeTx(ctx context.Context, tx *recordstore.Tx, room roomModel.Room, checkIn, checkOut gModel.Date, excludeID int64) error {
	if !room.Bookable() {
		return failure.RoomUnavailable(fmt.Sprintf("room %s is %s", room.Number, room.Status)) //nolint:wrapcheck
	}

	bookings, err := s.roomBookingsTx(ctx, tx, room.ID)
	if err != nil {
		return err
	}

	if conflicts := availability.Conflicting(bookings, room.ID, checkIn, checkOut, excludeID); len(conflicts) > 0 {
		return failure.RoomUnavailable(fmt.Sprintf("room %s is already booked from %s to %s by %s", //nolint:wrapcheck
			room.Number, conflicts[0].CheckIn, conflicts[0].CheckOut, conflicts[0].Code))
	}

	return nil
}

func (s *serviceImpl) occupyRoomTx(ctx context.Context, tx *recordstore.Tx, room roomModel.Room, staff string) error {
	if room.Status == roomModel.StatusOccupied {
		return nil
	}

	room.Status = roomModel.StatusOccupied
	room.Touch(timezone.Now(), staff)

	return s.rooms.UpdateTx(ctx, tx, room) //nolint:wrapcheck
}

// releaseRoomTx sets an occupied room back to AVAILABLE unless another active booking has a guest in it today.
func (s *serviceImpl) releaseRoomTx(ctx context.Context, tx *recordstore.Tx, roomID, bookingID int64, staff string) error {
	room, err := s.rooms.GetTx(ctx, tx, shared.FilterByID(roomID, roomModel.FieldID))
	if err != nil {
		return err //nolint:wrapcheck
	}

	if room.ID == 0 || room.Status != roomModel.StatusOccupied {
		return nil
	}

	bookings, err := s.roomBookingsTx(ctx, tx, roomID)
	if err != nil {
		return err
	}

	if availability.Occupied(bookings, roomID, gModel.DateOf(timezone.Today()), bookingID) {
		return nil
	}

	room.Status = roomModel.StatusAvailable
	room.Touch(timezone.Now(), staff)

	return s.rooms.UpdateTx(ctx, tx, room) //nolint:wrapcheck
}

func (s *serviceImpl) notifyTx(ctx context.Context, tx *recordstore.Tx, kind notificationModel.Kind, booking model.Booking, title, message, staff string) error {
	notification := notificationModel.Notification{
		Title:       title,
		Message:     message,
		Kind:        kind,
		ReferenceID: booking.ID,
	}
	notification.Stamp(timezone.Now(), staff)

	return s.notifications.InsertTx(ctx, tx, &notification) //nolint:wrapcheck
}

// publish runs after the store committed; a broker outage is logged and never undoes the booking.
func (s *serviceImpl) publish(ctx context.Context, eventType string, booking model.Booking, changed []string) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+"."+eventType)
	defer scope.End()

	err := s.kafka.SendMessages(ctx, kafka.Message{
		Key:       strconv.FormatInt(booking.ID, 10),
		EventType: eventType,
		Value:     dto.NewEvent(booking, changed),
	})
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("event", eventType).Int64("booking_id", booking.ID).Msg("failed to publish booking event")
	}
}

func (s *serviceImpl) invalidate(ctx context.Context, roomIDs []int64, customerID int64) {
	c := context.WithoutCancel(ctx)

	for _, roomID := range slices.Compact(roomIDs) {
		if err := s.cache.Delete(c, shared.BuildCacheKey(roomModel.CacheGet, roomID)); err != nil {
			log.Error().Err(err).Msg("failed to delete room cache")
		}
	}

	if err := s.cache.Delete(c, shared.BuildCacheKey(customerModel.CacheGet, customerID)); err != nil {
		log.Error().Err(err).Msg("failed to delete customer cache")
	}

	shared.InvalidateCaches(c, s.cache, roomModel.CacheGetAll)
	shared.InvalidateCaches(c, s.cache, roomModel.CacheCount)
	shared.InvalidateCaches(c, s.cache, customerModel.CacheGetAll)
}

func checkOccupancy(adults, children int, roomType roomTypeModel.RoomType) error {
	if adults < 1 {
		return failure.BadRequestFromString("adults must be at least 1") //nolint:wrapcheck
	}

	if children < 0 {
		return failure.BadRequestFromString("children cannot be negative") //nolint:wrapcheck
	}

	if roomType.Capacity > 0 && adults+children > roomType.Capacity {
		return failure.BadRequestFromString(fmt.Sprintf("room type %s holds at most %d guests", roomType.Name, roomType.Capacity)) //nolint:wrapcheck
	}

	return nil
}

// discountFor prefers an explicit discount and otherwise grants the customer's tier discount.
func discountFor(customer customerModel.Customer, percent *float64, reason string) (float64, string) {
	if percent != nil {
		return *percent, reason
	}

	tier := loyalty.TierOf(customer.LoyaltyPoints)

	discount := loyalty.Discount(tier)
	if discount == 0 {
		return 0, reason
	}

	return discount, fmt.Sprintf("loyalty tier %s", tier)
}

// quote prices a stay at the room type's nightly rate minus discount percent, in cents precision.
func quote(roomType roomTypeModel.RoomType, checkIn, checkOut gModel.Date, discount float64) float64 {
	gross := float64(checkIn.DaysUntil(checkOut)) * roomType.BasePrice

	return math.Round(gross*(1-discount/constant.PercentFactor)*constant.PercentFactor) / constant.PercentFactor
}
