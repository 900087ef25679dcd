package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"roamalto/infras/otel"
	"roamalto/infras/postgres"
	"roamalto/internal/domains/event/model"
	gDto "roamalto/shared/dto"
	gRepo "roamalto/shared/repository"
)

type Event interface {
	Insert(ctx context.Context, model model.Event) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Event, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
}

type Visit interface {
	Insert(ctx context.Context, model model.Visit) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Visit, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Event]
}

func New(db *postgres.Connection, otel otel.Otel) Event {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Event](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

type visitRepositoryImpl struct {
	gRepo.Repository[model.Visit]
}

func NewVisit(db *postgres.Connection, otel otel.Otel) Visit {
	return &visitRepositoryImpl{
		Repository: gRepo.NewRepository[model.Visit](model.VisitEntityName, model.VisitTableName, model.VisitFieldID, db, otel),
	}
}
