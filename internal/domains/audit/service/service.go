package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"roamalto/infras/otel"
	"roamalto/internal/domains/audit/model/dto"
	"roamalto/internal/domains/audit/repository"
	"roamalto/shared/constant"
	gDto "roamalto/shared/dto"

	"github.com/rs/zerolog/log"
)

type Audit interface {
	Record(ctx context.Context, req dto.RecordEntryRequest)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetEntriesResponse, error)
}

type serviceImpl struct {
	repo repository.Audit
	otel otel.Otel
}

func New(repo repository.Audit, otel otel.Otel) Audit {
	return &serviceImpl{
		repo: repo,
		otel: otel,
	}
}

// Record writes an audit entry without blocking the caller. A failed write is
// logged and dropped; the business operation that triggered it already
// succeeded and must not be rolled back over its trail.
func (s *serviceImpl) Record(ctx context.Context, req dto.RecordEntryRequest) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Record")
	defer scope.End()

	entry, err := req.ToModel()
	if err != nil {
		log.Error().Err(err).Str("action", req.Action).Msg("failed to build audit entry")

		return
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.repo.Insert(c, entry); err != nil {
			log.Error().
				Err(err).
				Str("action", entry.Action).
				Str("entityType", entry.EntityType).
				Str("entityId", entry.EntityID).
				Msg("failed to record audit entry")
		}
	}()
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetEntriesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count audit entries")

		return res, fmt.Errorf("failed to count audit entries: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get audit entries")

		return res, fmt.Errorf("failed to get audit entries: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}
