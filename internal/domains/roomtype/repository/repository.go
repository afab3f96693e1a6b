package repository

import (
	"context"
	"hotelier/infras/otel"
	"hotelier/infras/recordstore"
	"hotelier/internal/domains/roomtype/model"
	gDto "hotelier/shared/dto"
	gRepo "hotelier/shared/repository"
)

type RoomType interface {
	Insert(ctx context.Context, model *model.RoomType) error
	InsertTx(ctx context.Context, tx *recordstore.Tx, model *model.RoomType) error
	Get(ctx context.Context, filter gDto.FilterGroup) (model.RoomType, error)
	GetTx(ctx context.Context, tx *recordstore.Tx, filter gDto.FilterGroup) (model.RoomType, error)
	FindTx(ctx context.Context, tx *recordstore.Tx, filter gDto.FilterGroup) ([]model.RoomType, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.RoomType, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	ExistTx(ctx context.Context, tx *recordstore.Tx, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, model model.RoomType) error
	UpdateTx(ctx context.Context, tx *recordstore.Tx, model model.RoomType) error
	DeleteTx(ctx context.Context, tx *recordstore.Tx, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.RoomType]
}

func New(store recordstore.Store, otel otel.Otel) RoomType {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.RoomType](model.EntityName, model.CollectionName, model.Identity, store, otel),
	}
}
