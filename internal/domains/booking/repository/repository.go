package repository

import (
	"context"
	"hotelier/infras/otel"
	"hotelier/infras/recordstore"
	"hotelier/internal/domains/booking/model"
	gDto "hotelier/shared/dto"
	gRepo "hotelier/shared/repository"
)

type Booking interface {
	Insert(ctx context.Context, model *model.Booking) error
	InsertTx(ctx context.Context, tx *recordstore.Tx, model *model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup) (model.Booking, error)
	GetTx(ctx context.Context, tx *recordstore.Tx, filter gDto.FilterGroup) (model.Booking, error)
	FindTx(ctx context.Context, tx *recordstore.Tx, filter gDto.FilterGroup) ([]model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.Booking, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	ExistTx(ctx context.Context, tx *recordstore.Tx, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, model model.Booking) error
	UpdateTx(ctx context.Context, tx *recordstore.Tx, model model.Booking) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
}

func New(store recordstore.Store, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.CollectionName, model.Identity, store, otel),
	}
}
