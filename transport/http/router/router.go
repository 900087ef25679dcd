package router

import (
	"roamalto/internal/handlers/audit"
	"roamalto/internal/handlers/booking"
	"roamalto/internal/handlers/event"
	"roamalto/internal/handlers/health"
	"roamalto/internal/handlers/inquiry"
	"roamalto/internal/handlers/lead"
	"roamalto/internal/handlers/packages"
	"roamalto/transport/http/middleware"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Health  health.Handler
	Lead    lead.Handler
	Inquiry inquiry.Handler
	Package packages.Handler
	Booking booking.Handler
	Event   event.Handler
	Audit   audit.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	AuthRole       middleware.AuthRole
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(r.AuthRole.APIKey)
		routerGroup.Use(r.AuthRole.Auth)
		routerGroup.Use(r.AuthRole.RBAC)

		r.DomainHandlers.Health.Router(routerGroup)
		r.DomainHandlers.Lead.Router(routerGroup)
		r.DomainHandlers.Inquiry.Router(routerGroup)
		r.DomainHandlers.Package.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Event.Router(routerGroup)
		r.DomainHandlers.Audit.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers, authRole middleware.AuthRole) Router {
	return Router{
		DomainHandlers: domainHandlers,
		AuthRole:       authRole,
	}
}
