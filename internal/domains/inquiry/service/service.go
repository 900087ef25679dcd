package service

import (
	"context"
	"fmt"
	"roamalto/config"
	"roamalto/infras/otel"
	auditDto "roamalto/internal/domains/audit/model/dto"
	auditService "roamalto/internal/domains/audit/service"
	"roamalto/internal/domains/inquiry/model/dto"
	"roamalto/internal/domains/inquiry/repository"
	leadModel "roamalto/internal/domains/lead/model"
	leadRepo "roamalto/internal/domains/lead/repository"
	"roamalto/shared"
	"roamalto/shared/cache"
	"roamalto/shared/constant"
	gDto "roamalto/shared/dto"
	"roamalto/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetAllInquiry = "inquiry:gets"
	cacheCountInquiry  = "inquiry:count"
)

type Inquiry interface {
	Create(ctx context.Context, req dto.CreateInquiryRequest) (dto.InquiryResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetInquiriesResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
}

type serviceImpl struct {
	repo     repository.Inquiry
	leadRepo leadRepo.Lead
	audit    auditService.Audit
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(repo repository.Inquiry, leadRepo leadRepo.Lead, audit auditService.Audit, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Inquiry {
	return &serviceImpl{
		repo:     repo,
		leadRepo: leadRepo,
		audit:    audit,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateInquiryRequest) (res dto.InquiryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	leadExists, err := s.leadRepo.Exist(ctx, shared.FilterByID(req.LeadID, leadModel.FieldID, leadModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if lead exists")

		return res, fmt.Errorf("failed to check if lead exists: %w", err)
	}

	if !leadExists {
		return res, failure.NotFound("lead not found") // nolint:wrapcheck
	}

	staffID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	inquiry := req.ToModel(staffID)

	if err = s.repo.Insert(ctx, inquiry); err != nil {
		log.Error().Err(err).Msg("failed to create inquiry")

		return res, fmt.Errorf("failed to create inquiry: %w", err)
	}

	s.audit.Record(ctx, auditDto.RecordEntryRequest{
		Action:     constant.AuditActionInquiryCreate,
		EntityType: leadModel.EntityName,
		EntityID:   inquiry.LeadID,
		Actor:      staffID,
		Detail: map[string]any{
			"inquiry_id": inquiry.ID,
			"channel":    inquiry.Channel,
		},
	})

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllInquiry)
		shared.InvalidateCaches(c, s.cache, cacheCountInquiry)
	}()

	res.FromModel(inquiry)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetInquiriesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllInquiry, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for inquiries")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count inquiries")

		return res, fmt.Errorf("failed to count inquiries: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get inquiries")

		return res, fmt.Errorf("failed to get inquiries: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save inquiries to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountInquiry, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for inquiry count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count inquiries")

		return res, fmt.Errorf("failed to count inquiries: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save inquiry count to cache")
		}
	}()

	return res, nil
}
