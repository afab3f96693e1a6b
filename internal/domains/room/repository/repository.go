package repository

import (
	"context"
	"hotelier/infras/otel"
	"hotelier/infras/recordstore"
	"hotelier/internal/domains/room/model"
	gDto "hotelier/shared/dto"
	gRepo "hotelier/shared/repository"
)

type Room interface {
	Insert(ctx context.Context, model *model.Room) error
	InsertTx(ctx context.Context, tx *recordstore.Tx, model *model.Room) error
	Get(ctx context.Context, filter gDto.FilterGroup) (model.Room, error)
	GetTx(ctx context.Context, tx *recordstore.Tx, filter gDto.FilterGroup) (model.Room, error)
	FindTx(ctx context.Context, tx *recordstore.Tx, filter gDto.FilterGroup) ([]model.Room, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.Room, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	ExistTx(ctx context.Context, tx *recordstore.Tx, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, model model.Room) error
	UpdateTx(ctx context.Context, tx *recordstore.Tx, model model.Room) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Room]
}

func New(store recordstore.Store, otel otel.Otel) Room {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Room](model.EntityName, model.CollectionName, model.Identity, store, otel),
	}
}
