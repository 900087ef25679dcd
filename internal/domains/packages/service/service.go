package service

import (
	"context"
	"fmt"
	"roamalto/config"
	"roamalto/infras/otel"
	"roamalto/infras/s3"
	auditDto "roamalto/internal/domains/audit/model/dto"
	auditService "roamalto/internal/domains/audit/service"
	"roamalto/internal/domains/packages/model"
	"roamalto/internal/domains/packages/model/dto"
	"roamalto/internal/domains/packages/repository"
	"roamalto/shared"
	"roamalto/shared/base64"
	"roamalto/shared/cache"
	"roamalto/shared/constant"
	gDto "roamalto/shared/dto"
	"roamalto/shared/failure"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetPackage    = "package:get"
	cacheGetAllPackage = "package:gets"
	cacheCountPackage  = "package:count"
)

type Package interface {
	Create(ctx context.Context, req dto.CreatePackageRequest) (dto.PackageResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetPackagesResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	GetBySlug(ctx context.Context, slug string) (dto.PackageResponse, error)
	Update(ctx context.Context, req dto.UpdatePackageRequest, id string) error
	UploadHero(ctx context.Context, req dto.UploadHeroRequest, id string) (dto.UploadHeroResponse, error)
}

type serviceImpl struct {
	repo  repository.Package
	audit auditService.Audit
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	s3    s3.S3
}

func New(repo repository.Package, audit auditService.Audit, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Package {
	return &serviceImpl{
		repo:  repo,
		audit: audit,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		s3:    s3,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreatePackageRequest) (res dto.PackageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	slugTaken, err := s.repo.Exist(ctx, shared.FilterByID(req.Slug, model.FieldSlug, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check package slug")

		return res, fmt.Errorf("failed to check package slug: %w", err)
	}

	if slugTaken {
		return res, failure.Conflict("package slug already in use") // nolint:wrapcheck
	}

	pkg := req.ToModel()

	if err = s.repo.Insert(ctx, pkg); err != nil {
		log.Error().Err(err).Msg("failed to create package")

		return res, fmt.Errorf("failed to create package: %w", err)
	}

	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)
	s.audit.Record(ctx, auditDto.RecordEntryRequest{
		Action:     constant.AuditActionPackageCreate,
		EntityType: model.EntityName,
		EntityID:   pkg.ID,
		Actor:      actor,
		Detail: map[string]any{
			"slug":  pkg.Slug,
			"title": pkg.Title,
		},
	})

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllPackage)
		shared.InvalidateCaches(c, s.cache, cacheCountPackage)
	}()

	res.FromModel(pkg)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetPackagesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllPackage, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for packages")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count packages")

		return res, fmt.Errorf("failed to count packages: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get packages")

		return res, fmt.Errorf("failed to get packages: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save packages to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountPackage, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for package count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count packages")

		return res, fmt.Errorf("failed to count packages: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save package count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetBySlug(ctx context.Context, slug string) (res dto.PackageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetBySlug")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetPackage, slug)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for package")

		return res, nil
	}

	pkg, err := s.repo.Get(ctx, shared.FilterByID(slug, model.FieldSlug, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get package")

		return res, fmt.Errorf("failed to get package: %w", err)
	}

	if pkg.ID == constant.Empty {
		return res, failure.NotFound("package not found") // nolint:wrapcheck
	}

	res.FromModel(pkg)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save package to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdatePackageRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	updatedFields := shared.TransformFields(req)
	if len(updatedFields) == 0 {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	// pq needs the array wrapper to bind text[] columns.
	if req.Highlights != nil {
		updatedFields[model.FieldHighlights] = pq.StringArray(req.Highlights)
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	pkg, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get package for update")

		return fmt.Errorf("failed to get package: %w", err)
	}

	if pkg.ID == constant.Empty {
		return failure.NotFound("package not found") // nolint:wrapcheck
	}

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update package")

		return fmt.Errorf("failed to update package: %w", err)
	}

	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)

	changed := make([]string, 0, len(updatedFields))
	for field := range updatedFields {
		changed = append(changed, field)
	}

	s.audit.Record(ctx, auditDto.RecordEntryRequest{
		Action:     constant.AuditActionPackageUpdate,
		EntityType: model.EntityName,
		EntityID:   id,
		Actor:      actor,
		Detail: map[string]any{
			"fields": strings.Join(changed, ","),
		},
	})

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetPackage, pkg.Slug)); err != nil {
			log.Error().Err(err).Msg("failed to delete package from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllPackage)
		shared.InvalidateCaches(c, s.cache, cacheCountPackage)
	}()

	return nil
}

// UploadHero stores a base64 data-URI image on S3 and points the package at
// the uploaded object.
func (s *serviceImpl) UploadHero(ctx context.Context, req dto.UploadHeroRequest, id string) (res dto.UploadHeroResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UploadHero")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	pkg, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get package for hero upload")

		return res, fmt.Errorf("failed to get package: %w", err)
	}

	if pkg.ID == constant.Empty {
		return res, failure.NotFound("package not found") // nolint:wrapcheck
	}

	fileData, err := base64.Decode(req.File)
	if err != nil {
		log.Error().Err(err).Msg("failed to decode hero image")

		return res, failure.BadRequestFromString("invalid hero image payload") // nolint:wrapcheck
	}

	contentType := base64.GetContentType(req.File)
	fileName := fmt.Sprintf("%s-%s.%s", pkg.Slug, uuid.NewString(), strings.TrimPrefix(contentType, "image/"))

	url, err := s.s3.UploadFileBytes(ctx, s.cfg.External.S3.BucketName, model.EntityName, fileName, contentType, fileData)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload hero image to S3")

		return res, fmt.Errorf("failed to upload hero image: %w", err)
	}

	if err = s.repo.Update(ctx, map[string]any{model.FieldHeroImageURL: url}, filter); err != nil {
		log.Error().Err(err).Msg("failed to store hero image URL")

		return res, fmt.Errorf("failed to store hero image URL: %w", err)
	}

	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)
	s.audit.Record(ctx, auditDto.RecordEntryRequest{
		Action:     constant.AuditActionPackageUpdate,
		EntityType: model.EntityName,
		EntityID:   id,
		Actor:      actor,
		Detail: map[string]any{
			"fields": model.FieldHeroImageURL,
		},
	})

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetPackage, pkg.Slug)); err != nil {
			log.Error().Err(err).Msg("failed to delete package from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllPackage)

		// Replace the previous hero object once the new URL is live.
		if pkg.HeroImageURL != constant.Empty {
			objectName := s.s3.GetObjectNameFromURL(s.cfg.External.S3.BucketName, pkg.HeroImageURL)
			if objectName == constant.Empty {
				log.Warn().Str("url", pkg.HeroImageURL).Msg("failed to extract object name from URL")

				return
			}

			if err := s.s3.DeleteFile(c, s.cfg.External.S3.BucketName, constant.Empty, objectName); err != nil {
				log.Error().Err(err).Str("objectName", objectName).Msg("failed to delete previous hero image")
			}
		}
	}()

	res.URL = url

	return res, nil
}
