package service

import (
	"context"
	"fmt"
	"hotelier/config"
	"hotelier/infras/otel"
	"hotelier/infras/recordstore"
	"hotelier/internal/domains/channel/model"
	"hotelier/internal/domains/channel/model/dto"
	"hotelier/internal/domains/channel/repository"
	"hotelier/shared"
	"hotelier/shared/cache"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/failure"
	"hotelier/shared/timezone"
	"strings"

	"github.com/rs/zerolog/log"
)

type Channel interface {
	Create(ctx context.Context, req dto.CreateChannelRequest) (dto.ChannelResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetChannelsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id int64) (dto.ChannelResponse, error)
	Update(ctx context.Context, req dto.UpdateChannelRequest, id int64) (dto.ChannelResponse, error)
	Delete(ctx context.Context, id int64) error
}

type serviceImpl struct {
	store recordstore.Store
	repo  repository.Channel
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(store recordstore.Store, repo repository.Channel, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Channel {
	return &serviceImpl{
		store: store,
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) ensureUniqueName(ctx context.Context, tx *recordstore.Tx, channel model.Channel) error {
	channels, err := s.repo.FindTx(ctx, tx, gDto.FilterGroup{})
	if err != nil {
		return err
	}

	for _, existing := range channels {
		if existing.ID != channel.ID && strings.EqualFold(existing.Name, channel.Name) {
			return failure.Conflict(fmt.Sprintf("channel %q already exists", channel.Name)) //nolint:wrapcheck
		}
	}

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id int64) {
	c := context.WithoutCancel(ctx)

	if id != 0 {
		if err := s.cache.Delete(c, shared.BuildCacheKey(model.CacheGet, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete channel cache")
		}
	}

	shared.InvalidateCaches(c, s.cache, model.CacheGetAll)
	shared.InvalidateCaches(c, s.cache, model.CacheCount)
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateChannelRequest) (res dto.ChannelResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	channel := req.ToModel(user)

	err = s.store.Update(ctx, func(tx *recordstore.Tx) error {
		if err := s.ensureUniqueName(ctx, tx, channel); err != nil {
			return err
		}

		return s.repo.InsertTx(ctx, tx, &channel)
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create channel")

		return res, fmt.Errorf("failed to create channel: %w", err)
	}

	go s.invalidate(ctx, 0)

	res.FromModel(channel)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetChannelsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheGetAll, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count channels")

		return res, fmt.Errorf("failed to count channels: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get channels")

		return res, fmt.Errorf("failed to get channels: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save channels to cache")
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
		log.Error().Err(err).Msg("failed to count channels")

		return res, fmt.Errorf("failed to count channels: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save channel count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.ChannelResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(model.CacheGet, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	channel, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get channel")

		return res, fmt.Errorf("failed to get channel: %w", err)
	}

	if channel.ID == 0 {
		return res, failure.NotFound("channel not found") // nolint:wrapcheck
	}

	res.FromModel(channel)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save channel to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateChannelRequest, id int64) (res dto.ChannelResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	channel, err := s.update(ctx, id, func(channel *model.Channel) bool {
		return len(shared.ApplyPatch(channel, req)) > 0
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to update channel")

		return res, fmt.Errorf("failed to update channel: %w", err)
	}

	res.FromModel(channel)

	return res, nil
}

// Delete deactivates the channel; historical bookings keep referencing it.
func (s *serviceImpl) Delete(ctx context.Context, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	_, err = s.update(ctx, id, func(channel *model.Channel) bool {
		if !channel.Active {
			return false
		}

		channel.Active = false

		return true
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to delete channel")

		return fmt.Errorf("failed to delete channel: %w", err)
	}

	return nil
}

func (s *serviceImpl) update(ctx context.Context, id int64, mutate func(channel *model.Channel) bool) (model.Channel, error) {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	var channel model.Channel

	err := s.store.Update(ctx, func(tx *recordstore.Tx) (err error) {
		channel, err = s.repo.GetTx(ctx, tx, shared.FilterByID(id, model.FieldID))
		if err != nil {
			return err
		}

		if channel.ID == 0 {
			return failure.NotFound("channel not found") //nolint:wrapcheck
		}

		if !mutate(&channel) {
			return nil
		}

		if err := s.ensureUniqueName(ctx, tx, channel); err != nil {
			return err
		}

		channel.Touch(timezone.Now(), user)

		return s.repo.UpdateTx(ctx, tx, channel)
	})
	if err != nil {
		return channel, err //nolint:wrapcheck
	}

	go s.invalidate(ctx, id)

	return channel, nil
}
