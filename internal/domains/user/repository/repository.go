package repository

import (
	"context"
	"hotelier/infras/otel"
	"hotelier/infras/recordstore"
	"hotelier/internal/domains/user/model"
	gDto "hotelier/shared/dto"
	gRepo "hotelier/shared/repository"
)

type User interface {
	Insert(ctx context.Context, model *model.User) error
	InsertTx(ctx context.Context, tx *recordstore.Tx, model *model.User) error
	Get(ctx context.Context, filter gDto.FilterGroup) (model.User, error)
	GetTx(ctx context.Context, tx *recordstore.Tx, filter gDto.FilterGroup) (model.User, error)
	FindTx(ctx context.Context, tx *recordstore.Tx, filter gDto.FilterGroup) ([]model.User, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.User, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	ExistTx(ctx context.Context, tx *recordstore.Tx, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, model model.User) error
	UpdateTx(ctx context.Context, tx *recordstore.Tx, model model.User) error
}

type repositoryImpl struct {
	gRepo.Repository[model.User]
}

func New(store recordstore.Store, otel otel.Otel) User {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.User](model.EntityName, model.CollectionName, model.Identity, store, otel),
	}
}
