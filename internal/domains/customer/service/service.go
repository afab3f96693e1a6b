package service

import (
	"context"
	"fmt"
	"hotelier/config"
	"hotelier/infras/otel"
	"hotelier/infras/recordstore"
	"hotelier/internal/domains/customer/model"
	"hotelier/internal/domains/customer/model/dto"
	"hotelier/internal/domains/customer/repository"
	"hotelier/internal/domains/loyalty"
	"hotelier/shared"
	"hotelier/shared/cache"
	"hotelier/shared/constant"
	gDto "hotelier/shared/dto"
	"hotelier/shared/failure"
	"hotelier/shared/timezone"
	"strings"

	"github.com/rs/zerolog/log"
)

type Customer interface {
	Create(ctx context.Context, req dto.CreateCustomerRequest) (dto.CustomerResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetCustomersResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id int64) (dto.CustomerResponse, error)
	Loyalty(ctx context.Context, id int64) (dto.LoyaltyResponse, error)
	Update(ctx context.Context, req dto.UpdateCustomerRequest, id int64) (dto.CustomerResponse, error)
	Delete(ctx context.Context, id int64) error
}

type serviceImpl struct {
	store recordstore.Store
	repo  repository.Customer
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(store recordstore.Store, repo repository.Customer, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Customer {
	return &serviceImpl{
		store: store,
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

// ensureUniqueContact rejects an email or phone already used by another customer.
func (s *serviceImpl) ensureUniqueContact(ctx context.Context, tx *recordstore.Tx, customer model.Customer) error {
	customers, err := s.repo.FindTx(ctx, tx, gDto.FilterGroup{})
	if err != nil {
		return err
	}

	for _, existing := range customers {
		if existing.ID == customer.ID {
			continue
		}

		if strings.EqualFold(existing.Email, customer.Email) {
			return failure.Conflict(fmt.Sprintf("email %s is already registered", customer.Email)) //nolint:wrapcheck
		}

		if existing.Phone == customer.Phone {
			return failure.Conflict(fmt.Sprintf("phone %s is already registered", customer.Phone)) //nolint:wrapcheck
		}
	}

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id int64) {
	c := context.WithoutCancel(ctx)

	if id != 0 {
		if err := s.cache.Delete(c, shared.BuildCacheKey(model.CacheGet, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete customer cache")
		}
	}

	shared.InvalidateCaches(c, s.cache, model.CacheGetAll)
	shared.InvalidateCaches(c, s.cache, model.CacheCount)
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateCustomerRequest) (res dto.CustomerResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	customer := req.ToModel(user)

	err = s.store.Update(ctx, func(tx *recordstore.Tx) error {
		if err := s.ensureUniqueContact(ctx, tx, customer); err != nil {
			return err
		}

		return s.repo.InsertTx(ctx, tx, &customer)
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create customer")

		return res, fmt.Errorf("failed to create customer: %w", err)
	}

	go s.invalidate(ctx, 0)

	res.FromModel(customer)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetCustomersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheGetAll, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Debug().Str("cacheKey", cacheKey).Msg("cache hit for customers")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count customers")

		return res, fmt.Errorf("failed to count customers: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get customers")

		return res, fmt.Errorf("failed to get customers: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save customers to cache")
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
		log.Error().Err(err).Msg("failed to count customers")

		return res, fmt.Errorf("failed to count customers: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save customer count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.CustomerResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(model.CacheGet, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	customer, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(customer)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save customer to cache")
		}
	}()

	return res, nil
}

// Loyalty reads the balance straight from the store; the tier is derived, never cached.
func (s *serviceImpl) Loyalty(ctx context.Context, id int64) (res dto.LoyaltyResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Loyalty")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	customer, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	res.CustomerID = customer.ID
	res.Summary = loyalty.Summarize(customer.LoyaltyPoints)

	return res, nil
}

func (s *serviceImpl) get(ctx context.Context, id int64) (model.Customer, error) {
	customer, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get customer")

		return customer, fmt.Errorf("failed to get customer: %w", err)
	}

	if customer.ID == 0 {
		return customer, failure.NotFound("customer not found") // nolint:wrapcheck
	}

	return customer, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateCustomerRequest, id int64) (res dto.CustomerResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		req.Email = &email
	}

	customer, err := s.update(ctx, id, func(customer *model.Customer) bool {
		return len(shared.ApplyPatch(customer, req)) > 0
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to update customer")

		return res, fmt.Errorf("failed to update customer: %w", err)
	}

	res.FromModel(customer)

	return res, nil
}

// Delete marks the customer INACTIVE so bookings and feedback keep a valid reference.
func (s *serviceImpl) Delete(ctx context.Context, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	_, err = s.update(ctx, id, func(customer *model.Customer) bool {
		if customer.Status == model.StatusInactive {
			return false
		}

		customer.Status = model.StatusInactive

		return true
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to delete customer")

		return fmt.Errorf("failed to delete customer: %w", err)
	}

	return nil
}

func (s *serviceImpl) update(ctx context.Context, id int64, mutate func(customer *model.Customer) bool) (model.Customer, error) {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	var customer model.Customer

	err := s.store.Update(ctx, func(tx *recordstore.Tx) (err error) {
		customer, err = s.repo.GetTx(ctx, tx, shared.FilterByID(id, model.FieldID))
		if err != nil {
			return err
		}

		if customer.ID == 0 {
			return failure.NotFound("customer not found") //nolint:wrapcheck
		}

		if !mutate(&customer) {
			return nil
		}

		if err := s.ensureUniqueContact(ctx, tx, customer); err != nil {
			return err
		}

		customer.Touch(timezone.Now(), user)

		return s.repo.UpdateTx(ctx, tx, customer)
	})
	if err != nil {
		return customer, err //nolint:wrapcheck
	}

	go s.invalidate(ctx, id)

	return customer, nil
}
