package service

import (
	"context"
	"errors"
	"fmt"
	"hotelier/config"
	"hotelier/infras/otel"
	"hotelier/infras/recordstore"
	roomModel "hotelier/internal/domains/room/model"
	roomRepo "hotelier/internal/domains/room/repository"
	"hotelier/internal/domains/roomtype/model"
	"hotelier/internal/domains/roomtype/model/dto"
	"hotelier/internal/domains/roomtype/repository"
	"hotelier/shared"
	"hotelier/shared/cache"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/failure"
	"hotelier/shared/timezone"
	"strings"

	"github.com/rs/zerolog/log"
)

type RoomType interface {
	Create(ctx context.Context, req dto.CreateRoomTypeRequest) (dto.RoomTypeResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetRoomTypesResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id int64) (dto.RoomTypeResponse, error)
	Update(ctx context.Context, req dto.UpdateRoomTypeRequest, id int64) (dto.RoomTypeResponse, error)
	Delete(ctx context.Context, id int64) error
}

type serviceImpl struct {
	store recordstore.Store
	repo  repository.RoomType
	rooms roomRepo.Room
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(store recordstore.Store, repo repository.RoomType, rooms roomRepo.Room, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) RoomType {
	return &serviceImpl{
		store: store,
		repo:  repo,
		rooms: rooms,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) ensureUniqueName(ctx context.Context, tx *recordstore.Tx, name string, id int64) error {
	roomTypes, err := s.repo.FindTx(ctx, tx, gDto.FilterGroup{})
	if err != nil {
		return err
	}

	for _, roomType := range roomTypes {
		if roomType.ID != id && strings.EqualFold(roomType.Name, name) {
			return failure.Conflict(fmt.Sprintf("room type %q already exists", name)) //nolint:wrapcheck
		}
	}

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id int64) {
	c := context.WithoutCancel(ctx)

	if id != 0 {
		if err := s.cache.Delete(c, shared.BuildCacheKey(model.CacheGet, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete room type cache")
		}
	}

	shared.InvalidateCaches(c, s.cache, model.CacheGetAll)
	shared.InvalidateCaches(c, s.cache, model.CacheCount)
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRoomTypeRequest) (res dto.RoomTypeResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	roomType := req.ToModel(user)

	err = s.store.Update(ctx, func(tx *recordstore.Tx) error {
		if err := s.ensureUniqueName(ctx, tx, roomType.Name, 0); err != nil {
			return err
		}

		return s.repo.InsertTx(ctx, tx, &roomType)
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create room type")

		return res, fmt.Errorf("failed to create room type: %w", err)
	}

	go s.invalidate(ctx, 0)

	res.FromModel(roomType)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetRoomTypesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheGetAll, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for room types")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count room types")

		return res, fmt.Errorf("failed to count room types: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get room types")

		return res, fmt.Errorf("failed to get room types: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room types to cache")
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
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count room types")

		return res, fmt.Errorf("failed to count room types: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room type count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.RoomTypeResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(model.CacheGet, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	roomType, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get room type")

		return res, fmt.Errorf("failed to get room type: %w", err)
	}

	if roomType.ID == 0 {
		return res, failure.NotFound("room type not found") // nolint:wrapcheck
	}

	res.FromModel(roomType)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save room type to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateRoomTypeRequest, id int64) (res dto.RoomTypeResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	var roomType model.RoomType

	err = s.store.Update(ctx, func(tx *recordstore.Tx) error {
		roomType, err = s.repo.GetTx(ctx, tx, shared.FilterByID(id, model.FieldID))
		if err != nil {
			return err
		}

		if roomType.ID == 0 {
			return failure.NotFound("room type not found") //nolint:wrapcheck
		}

		changed := shared.ApplyPatch(&roomType, req)
		if len(changed) == 0 {
			return nil
		}

		if req.Name != nil {
			if err := s.ensureUniqueName(ctx, tx, roomType.Name, id); err != nil {
				return err
			}
		}

		roomType.Touch(timezone.Now(), user)

		return s.repo.UpdateTx(ctx, tx, roomType)
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to update room type")

		return res, fmt.Errorf("failed to update room type: %w", err)
	}

	go s.invalidate(ctx, id)

	res.FromModel(roomType)

	return res, nil
}

// Delete removes the room type for good, but only while no room, active or not, still points at it.
func (s *serviceImpl) Delete(ctx context.Context, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID)

	err = s.store.Update(ctx, func(tx *recordstore.Tx) error {
		exist, err := s.repo.ExistTx(ctx, tx, filter)
		if err != nil {
			return err
		}

		if !exist {
			return failure.NotFound("room type not found") //nolint:wrapcheck
		}

		inUse, err := s.rooms.ExistTx(ctx, tx, gDto.FilterGroup{
			Filters: []gDto.Matcher{shared.FilterByField(roomModel.FieldRoomTypeID, id)},
		})
		if err != nil {
			return err
		}

		if inUse {
			return failure.Conflict("room type is still assigned to rooms") //nolint:wrapcheck
		}

		return s.repo.DeleteTx(ctx, tx, filter)
	})
	if err != nil {
		if !errors.Is(err, failure.ErrNotFound) {
			log.Error().Err(err).Msg("failed to delete room type")
		}

		return fmt.Errorf("failed to delete room type: %w", err)
	}

	go s.invalidate(ctx, id)

	return nil
}
