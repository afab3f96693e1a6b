package repository

import (
	"context"
	"fmt"
	"hotelier/infras/otel"
	"hotelier/infras/recordstore"
	"hotelier/shared/constant"
	"hotelier/shared/dto"
	"hotelier/shared/failure"
	"hotelier/shared/logger"
	"slices"
	"strings"
)

// Repository is a stateless accessor over one collection of the record store.
// Methods without the Tx suffix open their own View or Update; the Tx variants join a running one.
type Repository[T any] struct {
	store      recordstore.Store
	otel       otel.Otel
	collection string
	entitas    string
	identity   func(*T) *int64
}

// NewRepository builds a repository over collection. identity must return a pointer to the record's id.
func NewRepository[T any](entitasName, collection string, identity func(*T) *int64, store recordstore.Store, otl otel.Otel) Repository[T] {
	return Repository[T]{
		store:      store,
		otel:       otl,
		collection: collection,
		entitas:    entitasName,
		identity:   identity,
	}
}

func (repo *Repository[T]) span(name string) string {
	return fmt.Sprintf("%s.%s.%s", constant.OtelRepositoryScopeName, repo.entitas, name)
}

func (repo *Repository[T]) load(tx *recordstore.Tx) ([]T, error) {
	models, err := recordstore.Load[T](tx, repo.collection)
	if err != nil {
		logger.ErrorWithStack(err)

		return nil, failure.StorageUnavailable(fmt.Errorf("failed to load %s: %w", repo.entitas, err)) //nolint:wrapcheck
	}

	return models, nil
}

func (repo *Repository[T]) save(tx *recordstore.Tx, models []T) error {
	if err := recordstore.Save(tx, repo.collection, models); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to save %s: %w", repo.entitas, err)
	}

	return nil
}

// InsertTx assigns the next identifier of the collection to model and appends it.
func (repo *Repository[T]) InsertTx(ctx context.Context, tx *recordstore.Tx, model *T) error {
	_, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.span("InsertTx"))
	defer scope.End()

	models, err := repo.load(tx)
	if err != nil {
		scope.TraceError(err)

		return err
	}

	id, err := tx.NextID(repo.collection)
	if err != nil {
		scope.TraceError(err)

		return fmt.Errorf("failed to reserve id (%s): %w", repo.entitas, err)
	}

	*repo.identity(model) = id
	scope.SetAttribute("id", id)

	return repo.save(tx, append(models, *model))
}

func (repo *Repository[T]) Insert(ctx context.Context, model *T) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.span("Insert"))
	defer scope.End()

	return repo.store.Update(ctx, func(tx *recordstore.Tx) error { //nolint:wrapcheck
		return repo.InsertTx(ctx, tx, model)
	})
}

// GetTx returns the first record matching filter, or the zero value when none does.
func (repo *Repository[T]) GetTx(ctx context.Context, tx *recordstore.Tx, filter dto.FilterGroup) (T, error) {
	_, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.span("GetTx"))
	defer scope.End()

	var zero T

	models, err := repo.load(tx)
	if err != nil {
		return zero, err
	}

	for _, model := range models {
		if filter.Match(&model) {
			return model, nil
		}
	}

	return zero, nil
}

func (repo *Repository[T]) Get(ctx context.Context, filter dto.FilterGroup) (model T, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.span("Get"))
	defer scope.End()

	err = repo.store.View(ctx, func(tx *recordstore.Tx) error {
		model, err = repo.GetTx(ctx, tx, filter)

		return err
	})

	return model, err //nolint:wrapcheck
}

// FindTx returns every record matching filter in collection order.
func (repo *Repository[T]) FindTx(ctx context.Context, tx *recordstore.Tx, filter dto.FilterGroup) ([]T, error) {
	_, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.span("FindTx"))
	defer scope.End()

	models, err := repo.load(tx)
	if err != nil {
		return nil, err
	}

	return slices.DeleteFunc(models, func(model T) bool {
		return !filter.Match(&model)
	}), nil
}

// GetAll filters, sorts by params.SortBy (a json field name) and pages the collection.
func (repo *Repository[T]) GetAll(ctx context.Context, params dto.QueryParams, filter dto.FilterGroup) (models []T, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.span("GetAll"))
	defer scope.End()

	err = repo.store.View(ctx, func(tx *recordstore.Tx) error {
		models, err = repo.FindTx(ctx, tx, filter)

		return err
	})
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	if params.SortBy != "" {
		desc := strings.EqualFold(params.SortDir, dto.SortDirDesc)

		slices.SortStableFunc(models, func(a, b T) int {
			left, _ := dto.FieldValue(&a, params.SortBy)
			right, _ := dto.FieldValue(&b, params.SortBy)

			if desc {
				return dto.Compare(right, left)
			}

			return dto.Compare(left, right)
		})
	}

	start, end := params.Window(len(models))

	return models[start:end], nil
}

func (repo *Repository[T]) Count(ctx context.Context, filter dto.FilterGroup) (count int, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.span("Count"))
	defer scope.End()

	err = repo.store.View(ctx, func(tx *recordstore.Tx) error {
		models, err := repo.FindTx(ctx, tx, filter)
		count = len(models)

		return err
	})

	return count, err //nolint:wrapcheck
}

func (repo *Repository[T]) ExistTx(ctx context.Context, tx *recordstore.Tx, filter dto.FilterGroup) (bool, error) {
	models, err := repo.FindTx(ctx, tx, filter)

	return len(models) > 0, err
}

func (repo *Repository[T]) Exist(ctx context.Context, filter dto.FilterGroup) (exist bool, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.span("Exist"))
	defer scope.End()

	err = repo.store.View(ctx, func(tx *recordstore.Tx) error {
		exist, err = repo.ExistTx(ctx, tx, filter)

		return err
	})

	return exist, err //nolint:wrapcheck
}

// UpdateTx replaces the stored record that has the same id as model.
func (repo *Repository[T]) UpdateTx(ctx context.Context, tx *recordstore.Tx, model T) error {
	_, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.span("UpdateTx"))
	defer scope.End()

	models, err := repo.load(tx)
	if err != nil {
		return err
	}

	id := *repo.identity(&model)

	idx := slices.IndexFunc(models, func(m T) bool {
		return *repo.identity(&m) == id
	})
	if idx < 0 {
		return failure.NotFound(fmt.Sprintf("%s %d not found", repo.entitas, id)) //nolint:wrapcheck
	}

	models[idx] = model

	return repo.save(tx, models)
}

func (repo *Repository[T]) Update(ctx context.Context, model T) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.span("Update"))
	defer scope.End()

	return repo.store.Update(ctx, func(tx *recordstore.Tx) error { //nolint:wrapcheck
		return repo.UpdateTx(ctx, tx, model)
	})
}

// DeleteTx physically removes every record matching filter.
func (repo *Repository[T]) DeleteTx(ctx context.Context, tx *recordstore.Tx, filter dto.FilterGroup) error {
	_, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.span("DeleteTx"))
	defer scope.End()

	if len(filter.Filters) == 0 {
		return fmt.Errorf("refusing to delete every %s without a filter", repo.entitas)
	}

	models, err := repo.load(tx)
	if err != nil {
		return err
	}

	return repo.save(tx, slices.DeleteFunc(models, func(model T) bool {
		return filter.Match(&model)
	}))
}

func (repo *Repository[T]) Delete(ctx context.Context, filter dto.FilterGroup) error {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, repo.span("Delete"))
	defer scope.End()

	return repo.store.Update(ctx, func(tx *recordstore.Tx) error { //nolint:wrapcheck
		return repo.DeleteTx(ctx, tx, filter)
	})
}
