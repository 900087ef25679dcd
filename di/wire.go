//go:build wireinject
// +build wireinject

package di

import (
	"roamalto/config"
	"roamalto/infras/jwt"
	"roamalto/infras/otel"
	"roamalto/infras/postgres"
	"roamalto/infras/redis"
	"roamalto/infras/s3"
	"roamalto/permissions"
	"roamalto/shared/cache"
	"roamalto/shared/limiter"
	"roamalto/transport/http"
	"roamalto/transport/http/middleware"
	"roamalto/transport/http/router"

	auditRepository "roamalto/internal/domains/audit/repository"
	auditService "roamalto/internal/domains/audit/service"
	bookingRepository "roamalto/internal/domains/booking/repository"
	bookingService "roamalto/internal/domains/booking/service"
	eventRepository "roamalto/internal/domains/event/repository"
	eventService "roamalto/internal/domains/event/service"
	inquiryRepository "roamalto/internal/domains/inquiry/repository"
	inquiryService "roamalto/internal/domains/inquiry/service"
	leadRepository "roamalto/internal/domains/lead/repository"
	leadService "roamalto/internal/domains/lead/service"
	packageRepository "roamalto/internal/domains/packages/repository"
	packageService "roamalto/internal/domains/packages/service"

	auditHandler "roamalto/internal/handlers/audit"
	bookingHandler "roamalto/internal/handlers/booking"
	eventHandler "roamalto/internal/handlers/event"
	healthHandler "roamalto/internal/handlers/health"
	inquiryHandler "roamalto/internal/handlers/inquiry"
	leadHandler "roamalto/internal/handlers/lead"
	packageHandler "roamalto/internal/handlers/packages"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	limiter.NewFromConfig,
)

var auditDomain = wire.NewSet(
	auditRepository.New,
	auditService.New,
)

var leadDomain = wire.NewSet(
	leadRepository.New,
	leadService.New,
)

var inquiryDomain = wire.NewSet(
	inquiryRepository.New,
	inquiryService.New,
)

var packageDomain = wire.NewSet(
	packageRepository.New,
	packageService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var eventDomain = wire.NewSet(
	eventRepository.New,
	eventRepository.NewVisit,
	eventService.New,
)

var domains = wire.NewSet(
	auditDomain,
	leadDomain,
	inquiryDomain,
	packageDomain,
	bookingDomain,
	eventDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	healthHandler.New,
	leadHandler.New,
	inquiryHandler.New,
	packageHandler.New,
	bookingHandler.New,
	eventHandler.New,
	auditHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
