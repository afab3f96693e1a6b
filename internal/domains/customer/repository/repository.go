package repository

import (
	"context"
	"hotelier/infras/otel"
	"hotelier/infras/recordstore"
	"hotelier/internal/domains/customer/model"
	gDto "hotelier/shared/dto"
	gRepo "hotelier/shared/repository"
)

type Customer interface {
	Insert(ctx context.Context, model *model.Customer) error
	InsertTx(ctx context.Context, tx *recordstore.Tx, model *model.Customer) error
	Get(ctx context.Context, filter gDto.FilterGroup) (model.Customer, error)
	GetTx(ctx context.Context, tx *recordstore.Tx, filter gDto.FilterGroup) (model.Customer, error)
	FindTx(ctx context.Context, tx *recordstore.Tx, filter gDto.FilterGroup) ([]model.Customer, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.Customer, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	ExistTx(ctx context.Context, tx *recordstore.Tx, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, model model.Customer) error
	UpdateTx(ctx context.Context, tx *recordstore.Tx, model model.Customer) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Customer]
}

func New(store recordstore.Store, otel otel.Otel) Customer {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Customer](model.EntityName, model.CollectionName, model.Identity, store, otel),
	}
}
