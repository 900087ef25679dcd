package service

import (
	"context"
	"fmt"
	"time"

	"roamalto/config"
	"roamalto/infras/otel"
	"roamalto/internal/domains/event/model"
	"roamalto/internal/domains/event/model/dto"
	"roamalto/internal/domains/event/repository"
	"roamalto/shared"
	"roamalto/shared/cache"
	"roamalto/shared/constant"
	gDto "roamalto/shared/dto"
	"roamalto/shared/failure"
	"roamalto/shared/jsonval"
	"roamalto/shared/limiter"
	gModel "roamalto/shared/model"
	"roamalto/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetAllEvent  = "event:gets"
	cacheCountEvent   = "event:count"
	cacheGetAllVisit  = "visit:gets"
	cacheCountVisit   = "visit:count"
	rateLimitKeyScope = "event"
)

type Event interface {
	Ingest(ctx context.Context, req dto.IngestEventRequest) (dto.IngestEventResponse, limiter.Result, error)
	GetAllEvents(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetEventsResponse, error)
	CountEvents(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	GetAllVisits(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetVisitsResponse, error)
	CountVisits(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
}

type serviceImpl struct {
	repo      repository.Event
	visitRepo repository.Visit
	limiter   limiter.Limiter
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
}

func New(repo repository.Event, visitRepo repository.Visit, lim limiter.Limiter, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Event {
	return &serviceImpl{
		repo:      repo,
		visitRepo: visitRepo,
		limiter:   lim,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
	}
}

func (s *serviceImpl) limits() (maxCount, windowSeconds int) {
	maxCount = s.cfg.App.Analytics.EventMaxPerWindow
	if maxCount <= 0 {
		maxCount = constant.DefaultEventMaxPerWindow
	}

	windowSeconds = s.cfg.App.Analytics.EventWindowSeconds
	if windowSeconds <= 0 {
		windowSeconds = constant.DefaultEventWindowSeconds
	}

	return maxCount, windowSeconds
}

// Ingest admits one analytics event under the per-visitor rate limit and
// writes it. A page_view additionally derives a privacy-hashed visit row.
// The limiter result is always returned so the handler can surface the
// X-RateLimit headers on both outcomes.
func (s *serviceImpl) Ingest(ctx context.Context, req dto.IngestEventRequest) (res dto.IngestEventResponse, limit limiter.Result, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Ingest")
	defer scope.End()
	defer scope.TraceIfError(err)

	maxCount, windowSeconds := s.limits()
	key := fmt.Sprintf("%s:%s:%s", rateLimitKeyScope, req.ClientIP, req.SessionKey())

	limit, err = s.limiter.Limit(ctx, key, maxCount, windowSeconds)
	if err != nil {
		// A broken counter store must not drop marketing data: fail open.
		log.Warn().Err(err).Str("key", key).Msg("rate limiter unavailable, admitting event")

		limit = limiter.Result{
			Success:   true,
			Limit:     maxCount,
			Remaining: maxCount - 1,
			Reset:     timezone.Now().Add(time.Duration(windowSeconds) * time.Second),
		}
		err = nil
	}

	if !limit.Success {
		return res, limit, failure.TooManyRequests(constant.ResponseErrorRequestLimitExceeded) // nolint:wrapcheck
	}

	event := req.ToModel()

	if err = s.repo.Insert(ctx, event); err != nil {
		log.Error().Err(err).Msg("failed to insert event")

		return res, limit, fmt.Errorf("failed to insert event: %w", err)
	}

	if event.Type == model.TypePageView {
		s.deriveVisit(ctx, req, event)
	}

	res.ID = event.ID
	res.CreatedAt = timezone.Format(event.CreatedAt, constant.DateFormat)

	return res, limit, nil
}

// deriveVisit is best effort: the event is already accepted, so a failed
// visit insert is logged and swallowed.
func (s *serviceImpl) deriveVisit(ctx context.Context, req dto.IngestEventRequest, event model.Event) {
	var utm jsonval.Value
	if field, ok := req.Meta.Field("utm"); ok && field.IsObject() {
		utm = field
	}

	visit := model.Visit{
		ID:          uuid.NewString(),
		Path:        event.Path,
		Fingerprint: model.VisitFingerprint(req.UserAgent, req.ClientIP, event.CreatedAt, req.SessionKey()),
		Day:         event.CreatedAt.UTC().Format(constant.DayFormatUTC),
		Utm:         utm,
		Metadata: gModel.Metadata{
			CreatedAt: event.CreatedAt,
		},
	}

	if err := s.visitRepo.Insert(ctx, visit); err != nil {
		log.Error().Err(err).Str("fingerprint", visit.Fingerprint).Msg("failed to derive visit from page view")
	}
}

func (s *serviceImpl) GetAllEvents(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetEventsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAllEvents")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllEvent, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for events")

		return res, nil
	}

	total, err := s.CountEvents(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count events")

		return res, fmt.Errorf("failed to count events: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get events")

		return res, fmt.Errorf("failed to get events: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save events to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) CountEvents(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CountEvents")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountEvent, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for event count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count events")

		return res, fmt.Errorf("failed to count events: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save event count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetAllVisits(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetVisitsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAllVisits")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllVisit, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for visits")

		return res, nil
	}

	total, err := s.CountVisits(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count visits")

		return res, fmt.Errorf("failed to count visits: %w", err)
	}

	models, err := s.visitRepo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get visits")

		return res, fmt.Errorf("failed to get visits: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save visits to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) CountVisits(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CountVisits")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountVisit, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for visit count")

		return res, nil
	}

	res, err = s.visitRepo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count visits")

		return res, fmt.Errorf("failed to count visits: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save visit count to cache")
		}
	}()

	return res, nil
}
