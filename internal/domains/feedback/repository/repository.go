package repository

import (
	"context"
	"hotelier/infras/otel"
	"hotelier/infras/recordstore"
	"hotelier/internal/domains/feedback/model"
	gDto "hotelier/shared/dto"
	gRepo "hotelier/shared/repository"
)

type Feedback interface {
	Insert(ctx context.Context, model *model.Feedback) error
	InsertTx(ctx context.Context, tx *recordstore.Tx, model *model.Feedback) error
	Get(ctx context.Context, filter gDto.FilterGroup) (model.Feedback, error)
	GetTx(ctx context.Context, tx *recordstore.Tx, filter gDto.FilterGroup) (model.Feedback, error)
	FindTx(ctx context.Context, tx *recordstore.Tx, filter gDto.FilterGroup) ([]model.Feedback, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.Feedback, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	ExistTx(ctx context.Context, tx *recordstore.Tx, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, model model.Feedback) error
	UpdateTx(ctx context.Context, tx *recordstore.Tx, model model.Feedback) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	DeleteTx(ctx context.Context, tx *recordstore.Tx, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Feedback]
}

func New(store recordstore.Store, otel otel.Otel) Feedback {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Feedback](model.EntityName, model.CollectionName, model.Identity, store, otel),
	}
}
