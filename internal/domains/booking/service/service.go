package service

import (
	"context"
	"fmt"
	"roamalto/config"
	"roamalto/infras/otel"
	auditDto "roamalto/internal/domains/audit/model/dto"
	auditService "roamalto/internal/domains/audit/service"
	"roamalto/internal/domains/booking/model"
	"roamalto/internal/domains/booking/model/dto"
	"roamalto/internal/domains/booking/repository"
	leadModel "roamalto/internal/domains/lead/model"
	leadRepo "roamalto/internal/domains/lead/repository"
	packageModel "roamalto/internal/domains/packages/model"
	packageRepo "roamalto/internal/domains/packages/repository"
	"roamalto/shared"
	"roamalto/shared/cache"
	"roamalto/shared/constant"
	gDto "roamalto/shared/dto"
	"roamalto/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	Transition(ctx context.Context, id, requestedStatus string) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
}

type serviceImpl struct {
	repo        repository.Booking
	leadRepo    leadRepo.Lead
	packageRepo packageRepo.Package
	audit       auditService.Audit
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(repo repository.Booking, leadRepo leadRepo.Lead, packageRepo packageRepo.Package, audit auditService.Audit, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Booking {
	return &serviceImpl{
		repo:        repo,
		leadRepo:    leadRepo,
		packageRepo: packageRepo,
		audit:       audit,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
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

	packageExists, err := s.packageRepo.Exist(ctx, shared.FilterByID(req.PackageID, packageModel.FieldID, packageModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if package exists")

		return res, fmt.Errorf("failed to check if package exists: %w", err)
	}

	if !packageExists {
		return res, failure.NotFound("package not found") // nolint:wrapcheck
	}

	booking := req.ToModel()

	if err = s.repo.Insert(ctx, booking); err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)
	s.audit.Record(ctx, auditDto.RecordEntryRequest{
		Action:     constant.AuditActionBookingCreate,
		EntityType: model.EntityName,
		EntityID:   booking.ID,
		Actor:      actor,
		Detail: map[string]any{
			"lead_id":    booking.LeadID,
			"package_id": booking.PackageID,
		},
	})

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()

	res.FromModel(booking)

	return res, nil
}

// Transition moves a booking along the status workflow. Requesting the current
// status is an idempotent no-op: success without a write and without an audit
// entry. The status swap itself is conditional on the status the decision was
// made against, so a concurrent transition cannot be silently overwritten.
func (s *serviceImpl) Transition(ctx context.Context, id, requestedStatus string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Transition")
	defer scope.End()
	defer scope.TraceIfError(err)

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if booking.Status == requestedStatus {
		res.FromModel(booking)

		return res, nil
	}

	if !model.CanTransition(booking.Status, requestedStatus) {
		return res, failure.InvalidTransition(booking.Status, requestedStatus) // nolint:wrapcheck
	}

	moved, err := s.repo.UpdateStatus(ctx, id, booking.Status, requestedStatus)
	if err != nil {
		log.Error().Err(err).Msg("failed to update booking status")

		return res, fmt.Errorf("failed to update booking status: %w", err)
	}

	if !moved {
		// A concurrent transition changed the row between read and write.
		return res, failure.InvalidTransition(booking.Status, requestedStatus) // nolint:wrapcheck
	}

	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)
	s.audit.Record(ctx, auditDto.RecordEntryRequest{
		Action:     constant.AuditActionBookingStatusUpdate,
		EntityType: model.EntityName,
		EntityID:   booking.ID,
		Actor:      actor,
		Detail: map[string]any{
			"from": booking.Status,
			"to":   requestedStatus,
		},
	})

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
	}()

	booking.Status = requestedStatus
	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}
