package repository

import (
	"context"
	"hotelier/infras/otel"
	"hotelier/infras/recordstore"
	"hotelier/internal/domains/channel/model"
	gDto "hotelier/shared/dto"
	gRepo "hotelier/shared/repository"
)

type Channel interface {
	Insert(ctx context.Context, model *model.Channel) error
	InsertTx(ctx context.Context, tx *recordstore.Tx, model *model.Channel) error
	Get(ctx context.Context, filter gDto.FilterGroup) (model.Channel, error)
	GetTx(ctx context.Context, tx *recordstore.Tx, filter gDto.FilterGroup) (model.Channel, error)
	FindTx(ctx context.Context, tx *recordstore.Tx, filter gDto.FilterGroup) ([]model.Channel, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.Channel, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	ExistTx(ctx context.Context, tx *recordstore.Tx, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, model model.Channel) error
	UpdateTx(ctx context.Context, tx *recordstore.Tx, model model.Channel) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Channel]
}

func New(store recordstore.Store, otel otel.Otel) Channel {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Channel](model.EntityName, model.CollectionName, model.Identity, store, otel),
	}
}
