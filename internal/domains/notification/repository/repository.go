package repository

import (
	"context"
	"hotelier/infras/otel"
	"hotelier/infras/recordstore"
	"hotelier/internal/domains/notification/model"
	gDto "hotelier/shared/dto"
	gRepo "hotelier/shared/repository"
)

type Notification interface {
	Insert(ctx context.Context, model *model.Notification) error
	InsertTx(ctx context.Context, tx *recordstore.Tx, model *model.Notification) error
	Get(ctx context.Context, filter gDto.FilterGroup) (model.Notification, error)
	GetTx(ctx context.Context, tx *recordstore.Tx, filter gDto.FilterGroup) (model.Notification, error)
	FindTx(ctx context.Context, tx *recordstore.Tx, filter gDto.FilterGroup) ([]model.Notification, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.Notification, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	ExistTx(ctx context.Context, tx *recordstore.Tx, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, model model.Notification) error
	UpdateTx(ctx context.Context, tx *recordstore.Tx, model model.Notification) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	DeleteTx(ctx context.Context, tx *recordstore.Tx, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Notification]
}

func New(store recordstore.Store, otel otel.Otel) Notification {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Notification](model.EntityName, model.CollectionName, model.Identity, store, otel),
	}
}
