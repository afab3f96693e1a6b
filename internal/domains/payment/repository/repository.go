package repository

import (
	"context"
	"hotelier/infras/otel"
	"hotelier/infras/recordstore"
	"hotelier/internal/domains/payment/model"
	gDto "hotelier/shared/dto"
	gRepo "hotelier/shared/repository"
)

type Payment interface {
	Insert(ctx context.Context, model *model.Payment) error
	InsertTx(ctx context.Context, tx *recordstore.Tx, model *model.Payment) error
	Get(ctx context.Context, filter gDto.FilterGroup) (model.Payment, error)
	GetTx(ctx context.Context, tx *recordstore.Tx, filter gDto.FilterGroup) (model.Payment, error)
	FindTx(ctx context.Context, tx *recordstore.Tx, filter gDto.FilterGroup) ([]model.Payment, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.Payment, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	ExistTx(ctx context.Context, tx *recordstore.Tx, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, model model.Payment) error
	UpdateTx(ctx context.Context, tx *recordstore.Tx, model model.Payment) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Payment]
}

func New(store recordstore.Store, otel otel.Otel) Payment {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Payment](model.EntityName, model.CollectionName, model.Identity, store, otel),
	}
}
