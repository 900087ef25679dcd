package service

import (
	"context"
	"fmt"
	"roamalto/config"
	"roamalto/infras/otel"
	auditDto "roamalto/internal/domains/audit/model/dto"
	auditService "roamalto/internal/domains/audit/service"
	"roamalto/internal/domains/lead/model"
	"roamalto/internal/domains/lead/model/dto"
	"roamalto/internal/domains/lead/repository"
	"roamalto/shared"
	"roamalto/shared/cache"
	"roamalto/shared/constant"
	gDto "roamalto/shared/dto"
	"roamalto/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetLead    = "lead:get"
	cacheGetAllLead = "lead:gets"
	cacheCountLead  = "lead:count"
)

type Lead interface {
	Create(ctx context.Context, req dto.CreateLeadRequest) (dto.CreateLeadResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetLeadsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.LeadResponse, error)
}

type serviceImpl struct {
	repo  repository.Lead
	audit auditService.Audit
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Lead, audit auditService.Audit, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Lead {
	return &serviceImpl{
		repo:  repo,
		audit: audit,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

// Create captures a lead from the public site. The submitter is anonymous, so
// the audit actor comes from context only when a staff token happened to be
// present.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateLeadRequest) (res dto.CreateLeadResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	lead := req.ToModel()

	if err = s.repo.Insert(ctx, lead); err != nil {
		log.Error().Err(err).Msg("failed to create lead")

		return res, fmt.Errorf("failed to create lead: %w", err)
	}

	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)
	s.audit.Record(ctx, auditDto.RecordEntryRequest{
		Action:     constant.AuditActionLeadCreate,
		EntityType: model.EntityName,
		EntityID:   lead.ID,
		Actor:      actor,
		Detail: map[string]any{
			"source":  lead.Source,
			"email":   lead.Email,
			"country": lead.Country,
		},
	})

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllLead)
		shared.InvalidateCaches(c, s.cache, cacheCountLead)
	}()

	res.FromModel(lead)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetLeadsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllLead, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for leads")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count leads")

		return res, fmt.Errorf("failed to count leads: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get leads")

		return res, fmt.Errorf("failed to get leads: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save leads to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountLead, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for lead count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count leads")

		return res, fmt.Errorf("failed to count leads: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save lead count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.LeadResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetLead, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for lead")

		return res, nil
	}

	lead, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get lead")

		return res, fmt.Errorf("failed to get lead: %w", err)
	}

	if lead.ID == constant.Empty {
		return res, failure.NotFound("lead not found") // nolint:wrapcheck
	}

	res.FromModel(lead)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save lead to cache")
		}
	}()

	return res, nil
}
