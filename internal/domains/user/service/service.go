package service

import (
	"context"
	"errors"
	"fmt"
	"hotelier/config"
	"hotelier/infras/otel"
	"hotelier/infras/recordstore"
	"hotelier/internal/domains/user/model"
	"hotelier/internal/domains/user/model/dto"
	"hotelier/internal/domains/user/repository"
	"hotelier/shared"
	"hotelier/shared/cache"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/failure"
	"hotelier/shared/password"
	"hotelier/shared/timezone"
	"strings"

	"github.com/rs/zerolog/log"
)

type User interface {
	Create(ctx context.Context, req dto.CreateUserRequest) (dto.UserResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetUsersResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id int64) (dto.UserResponse, error)
	Update(ctx context.Context, req dto.UpdateUserRequest, id int64) (dto.UserResponse, error)
	ChangePassword(ctx context.Context, req dto.ChangePasswordRequest, id int64) error
	Delete(ctx context.Context, id int64) error
}

type serviceImpl struct {
	store recordstore.Store
	repo  repository.User
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(store recordstore.Store, repo repository.User, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) User {
	return &serviceImpl{
		store: store,
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) ensureUniqueEmail(ctx context.Context, tx *recordstore.Tx, user model.User) error {
	users, err := s.repo.FindTx(ctx, tx, gDto.FilterGroup{})
	if err != nil {
		return err
	}

	for _, existing := range users {
		if existing.ID != user.ID && strings.EqualFold(existing.Email, user.Email) {
			return failure.Conflict("email already exists") //nolint:wrapcheck
		}
	}

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id int64) {
	c := context.WithoutCancel(ctx)

	if id != 0 {
		if err := s.cache.Delete(c, shared.BuildCacheKey(model.CacheGet, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete user cache")
		}
	}

	shared.InvalidateCaches(c, s.cache, model.CacheGetAll)
	shared.InvalidateCaches(c, s.cache, model.CacheCount)
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateUserRequest) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	username, _ := ctx.Value(constant.ContextKeyUserID).(string)

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return res, fmt.Errorf("failed to hash password: %w", err)
	}

	user := req.ToModel(username, hashedPassword)

	err = s.store.Update(ctx, func(tx *recordstore.Tx) error {
		if err := s.ensureUniqueEmail(ctx, tx, user); err != nil {
			return err
		}

		return s.repo.InsertTx(ctx, tx, &user)
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create user")

		return res, fmt.Errorf("failed to create user: %w", err)
	}

	go s.invalidate(ctx, 0)

	res.FromModel(user)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetUsersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheGetAll, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for users")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count users")

		return res, fmt.Errorf("failed to count users: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get users")

		return res, fmt.Errorf("failed to get users: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save users to cache")
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
		log.Error().Err(err).Msg("failed to count users")

		return res, fmt.Errorf("failed to count users: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save user count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(model.CacheGet, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	user, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == 0 {
		return res, failure.NotFound("user not found") // nolint:wrapcheck
	}

	res.FromModel(user)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save user to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateUserRequest, id int64) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var hashedPassword string

	if req.Password != nil {
		hashedPassword, err = password.Hash(*req.Password)
		if err != nil {
			log.Error().Err(err).Msg("failed to hash password")

			return res, fmt.Errorf("failed to hash password: %w", err)
		}
	}

	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		req.Email = &email
	}

	user, err := s.update(ctx, id, func(user *model.User) (bool, error) {
		changed := len(shared.ApplyPatch(user, req)) > 0

		if hashedPassword != "" {
			user.PasswordHash = hashedPassword
			changed = true
		}

		return changed, nil
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to update user")

		return res, fmt.Errorf("failed to update user: %w", err)
	}

	res.FromModel(user)

	return res, nil
}

// ChangePassword replaces the password after checking the current one.
func (s *serviceImpl) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ChangePassword")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	hashedPassword, err := password.Hash(req.NewPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return fmt.Errorf("failed to hash password: %w", err)
	}

	_, err = s.update(ctx, id, func(user *model.User) (bool, error) {
		if err := password.Verify(req.CurrentPassword, user.PasswordHash); err != nil {
			if errors.Is(err, password.ErrInvalidPassword) {
				return false, failure.BadRequestFromString("current password does not match") //nolint:wrapcheck
			}

			return false, err //nolint:wrapcheck
		}

		user.PasswordHash = hashedPassword

		return true, nil
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to change password")

		return fmt.Errorf("failed to change password: %w", err)
	}

	return nil
}

// Delete deactivates the account; bookings keep the staff reference.
func (s *serviceImpl) Delete(ctx context.Context, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	_, err = s.update(ctx, id, func(user *model.User) (bool, error) {
		if !user.Active {
			return false, nil
		}

		user.Active = false

		return true, nil
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to delete user")

		return fmt.Errorf("failed to delete user: %w", err)
	}

	return nil
}

func (s *serviceImpl) update(ctx context.Context, id int64, mutate func(user *model.User) (bool, error)) (model.User, error) {
	username, _ := ctx.Value(constant.ContextKeyUserID).(string)

	var user model.User

	err := s.store.Update(ctx, func(tx *recordstore.Tx) (err error) {
		user, err = s.repo.GetTx(ctx, tx, shared.FilterByID(id, model.FieldID))
		if err != nil {
			return err
		}

		if user.ID == 0 {
			return failure.NotFound("user not found") //nolint:wrapcheck
		}

		changed, err := mutate(&user)
		if err != nil || !changed {
			return err
		}

		if err := s.ensureUniqueEmail(ctx, tx, user); err != nil {
			return err
		}

		user.Touch(timezone.Now(), username)

		return s.repo.UpdateTx(ctx, tx, user)
	})
	if err != nil {
		return user, err //nolint:wrapcheck
	}

	go s.invalidate(ctx, id)

	return user, nil
}
