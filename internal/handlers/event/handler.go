package event

import (
	"net"
	"net/http"
	"strings"

	"roamalto/infras/otel"
	"roamalto/internal/domains/event/model"
	"roamalto/internal/domains/event/model/dto"
	"roamalto/internal/domains/event/service"
	"roamalto/shared/constant"
	gDto "roamalto/shared/dto"
	"roamalto/shared/validator"
	"roamalto/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Event
	otel    otel.Otel
}

func New(service service.Event, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/events", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.IngestEvent)
		routerGroup.Get("/", handler.GetEvents)
	})

	router.Route("/visits", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetVisits)
	})
}

// IngestEvent accepts a single analytics event from the marketing site.
// @Summary Ingest an analytics event
// @Description Accept one analytics event. Page views derive an anonymized visit. Rate limited per visitor.
// @Tags Event
// @Accept json
// @Produce json
// @Param request body dto.IngestEventRequest true "Ingest Event Request"
// @Success 202 {object} response.Data[dto.IngestEventResponse] "Event accepted"
// @Failure 400 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 429 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/events [post]
func (handler *Handler) IngestEvent(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".IngestEvent")
	defer scope.End()

	req := dto.IngestEventRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	req.ClientIP = clientIP(request)
	req.UserAgent = request.Header.Get(constant.RequestHeaderUserAgent)

	res, limit, err := handler.service.Ingest(ctx, req)

	response.WithRateLimitHeaders(writer, limit.Limit, limit.Remaining, limit.Reset)

	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Str("ip", req.ClientIP).Msg("event rejected")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Event ingested successfully")

	response.WithJSON(writer, http.StatusAccepted, res)
}

// GetEvents retrieves raw analytics events.
// @Summary Get all events
// @Description Retrieve raw analytics events with optional filtering and pagination.
// @Tags Event
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param type query string false "Filter by event type"
// @Param session_id query string false "Filter by session ID"
// @Success 200 {object} response.Data[dto.GetEventsResponse] "List of events"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/events [get]
// @Security BearerAuth
func (handler *Handler) GetEvents(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetEvents")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	eventType := r.URL.Query().Get(model.FieldType)
	sessionID := r.URL.Query().Get(model.FieldSessionID)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if eventType != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldType,
			Operator: gDto.FilterOperatorEq,
			Value:    eventType,
			Table:    model.TableName,
		})
	}

	if sessionID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldSessionID,
			Operator: gDto.FilterOperatorEq,
			Value:    sessionID,
			Table:    model.TableName,
		})
	}

	events, err := handler.service.GetAllEvents(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get events")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Events retrieved successfully")

	response.WithJSON(w, http.StatusOK, events)
}

// GetVisits retrieves derived visits.
// @Summary Get all visits
// @Description Retrieve anonymized visits derived from page views, with optional filtering and pagination.
// @Tags Event
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param day query string false "Filter by day (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.GetVisitsResponse] "List of visits"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/visits [get]
// @Security BearerAuth
func (handler *Handler) GetVisits(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetVisits")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	day := r.URL.Query().Get(model.VisitFieldDay)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if day != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.VisitFieldDay,
			Operator: gDto.FilterOperatorEq,
			Value:    day,
			Table:    model.VisitTableName,
		})
	}

	visits, err := handler.service.GetAllVisits(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get visits")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Visits retrieved successfully")

	response.WithJSON(w, http.StatusOK, visits)
}

// clientIP resolves the originating address, trusting proxy headers in the
// order the load balancer sets them.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get(constant.RequestHeaderForwardedFor); forwarded != "" {
		parts := strings.Split(forwarded, ",")

		return strings.TrimSpace(parts[0])
	}

	if realIP := r.Header.Get(constant.RequestHeaderRealIP); realIP != "" {
		return realIP
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
