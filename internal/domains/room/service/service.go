package service

import (
	"context"
	"fmt"
	"hotelier/config"
	"hotelier/infras/otel"
	"hotelier/infras/recordstore"
	"hotelier/internal/domains/room/model"
	"hotelier/internal/domains/room/model/dto"
	"hotelier/internal/domains/room/repository"
	roomTypeModel "hotelier/internal/domains/roomtype/model"
	roomTypeRepo "hotelier/internal/domains/roomtype/repository"
	"hotelier/shared"
	"hotelier/shared/cache"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/failure"
	"hotelier/shared/timezone"
	"strings"

	"github.com/rs/zerolog/log"
)

type Room interface {
	Create(ctx context.Context, req dto.CreateRoomRequest) (dto.RoomResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetRoomsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id int64) (dto.RoomResponse, error)
	Update(ctx context.Context, req dto.UpdateRoomRequest, id int64) (dto.RoomResponse, error)
	UpdateStatus(ctx context.Context, req dto.UpdateRoomStatusRequest, id int64) (dto.RoomResponse, error)
	Delete(ctx context.Context, id int64) error
}

type serviceImpl struct {
	store     recordstore.Store
	repo      repository.Room
	roomTypes roomTypeRepo.RoomType
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
}

func New(store recordstore.Store, repo repository.Room, roomTypes roomTypeRepo.RoomType, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Room {
	return &serviceImpl{
		store:     store,
		repo:      repo,
		roomTypes: roomTypes,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
	}
}

func (s *serviceImpl) validateRoom(ctx context.Context, tx *recordstore.Tx, room model.Room) error {
	rooms, err := s.repo.FindTx(ctx, tx, gDto.FilterGroup{})
	if err != nil {
		return err
	}

	for _, existing := range rooms {
		if existing.ID != room.ID && strings.EqualFold(existing.Number, room.Number) {
			return failure.Conflict(fmt.Sprintf("room number %s already exists", room.Number)) //nolint:wrapcheck
		}
	}

	exist, err := s.roomTypes.ExistTx(ctx, tx, shared.FilterByID(room.RoomTypeID, roomTypeModel.FieldID))
	if err != nil {
		return err
	}

	if !exist {
		return failure.BadRequestFromString(fmt.Sprintf("room type %d does not exist", room.RoomTypeID)) //nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id int64) {
	c := context.WithoutCancel(ctx)

	if id != 0 {
		if err := s.cache.Delete(c, shared.BuildCacheKey(model.CacheGet, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete room cache")
		}
	}

	shared.InvalidateCaches(c, s.cache, model.CacheGetAll)
	shared.InvalidateCaches(c, s.cache, model.CacheCount)
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRoomRequest) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	room := req.ToModel(user)

	err = s.store.Update(ctx, func(tx *recordstore.Tx) error {
		if err := s.validateRoom(ctx, tx, room); err != nil {
			return err
		}

		return s.repo.InsertTx(ctx, tx, &room)
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create room")

		return res, fmt.Errorf("failed to create room: %w", err)
	}

	go s.invalidate(ctx, 0)

	res.FromModel(room)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheGetAll, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for rooms")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count rooms")

		return res, fmt.Errorf("failed to count rooms: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rooms")

		return res, fmt.Errorf("failed to get rooms: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save rooms to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheCount, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for room count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count rooms")

		return res, fmt.Errorf("failed to count rooms: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(model.CacheGet, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for room")

		return res, nil
	}

	room, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room")

		return res, fmt.Errorf("failed to get room: %w", err)
	}

	if room.ID == 0 {
		return res, failure.NotFound("room not found") // nolint:wrapcheck
	}

	res.FromModel(room)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateRoomRequest, id int64) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	room, err := s.update(ctx, id, func(room *model.Room) []string {
		return shared.ApplyPatch(room, req)
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to update room")

		return res, fmt.Errorf("failed to update room: %w", err)
	}

	res.FromModel(room)

	return res, nil
}

// UpdateStatus is the admin override of the status the booking lifecycle maintains.
func (s *serviceImpl) UpdateStatus(ctx context.Context, req dto.UpdateRoomStatusRequest, id int64) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	room, err := s.update(ctx, id, func(room *model.Room) []string {
		if room.Status == req.Status {
			return nil
		}

		room.Status = req.Status

		return []string{model.FieldStatus}
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to update room status")

		return res, fmt.Errorf("failed to update room status: %w", err)
	}

	res.FromModel(room)

	return res, nil
}

// Delete retires the room. Rooms are never removed since bookings keep pointing at them.
func (s *serviceImpl) Delete(ctx context.Context, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	_, err = s.update(ctx, id, func(room *model.Room) []string {
		if room.Status == model.StatusInactive {
			return nil
		}

		room.Status = model.StatusInactive

		return []string{model.FieldStatus}
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to delete room")

		return fmt.Errorf("failed to delete room: %w", err)
	}

	return nil
}

// update loads the room, lets mutate change it and writes it back when anything changed.
func (s *serviceImpl) update(ctx context.Context, id int64, mutate func(room *model.Room) []string) (model.Room, error) {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	var room model.Room

	err := s.store.Update(ctx, func(tx *recordstore.Tx) (err error) {
		room, err = s.repo.GetTx(ctx, tx, shared.FilterByID(id, model.FieldID))
		if err != nil {
			return err
		}

		if room.ID == 0 {
			return failure.NotFound("room not found") //nolint:wrapcheck
		}

		if changed := mutate(&room); len(changed) == 0 {
			return nil
		}

		if err := s.validateRoom(ctx, tx, room); err != nil {
			return err
		}

		room.Touch(timezone.Now(), user)

		return s.repo.UpdateTx(ctx, tx, room)
	})
	if err != nil {
		return room, err //nolint:wrapcheck
	}

	go s.invalidate(ctx, id)

	return room, nil
}
