package audit

import (
	"net/http"
	"roamalto/infras/otel"
	"roamalto/internal/domains/audit/model"
	"roamalto/internal/domains/audit/service"
	"roamalto/shared/constant"
	gDto "roamalto/shared/dto"
	"roamalto/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Audit
	otel    otel.Otel
}

func New(service service.Audit, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/audit", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetEntries)
	})
}

// GetEntries retrieves audit log entries.
// @Summary Get audit log entries
// @Description Retrieve audit log entries with optional filtering and pagination.
// @Tags Audit
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param action query string false "Filter by action"
// @Param entity_type query string false "Filter by entity type"
// @Param entity_id query string false "Filter by entity ID"
// @Success 200 {object} response.Data[dto.GetEntriesResponse] "List of audit entries"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/audit [get]
// @Security BearerAuth
func (handler *Handler) GetEntries(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetEntries")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	action := r.URL.Query().Get(model.FieldAction)
	entityType := r.URL.Query().Get(model.FieldEntityType)
	entityID := r.URL.Query().Get(model.FieldEntityID)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if action != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldAction,
			Operator: gDto.FilterOperatorEq,
			Value:    action,
			Table:    model.TableName,
		})
	}

	if entityType != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldEntityType,
			Operator: gDto.FilterOperatorEq,
			Value:    entityType,
			Table:    model.TableName,
		})
	}

	if entityID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldEntityID,
			Operator: gDto.FilterOperatorEq,
			Value:    entityID,
			Table:    model.TableName,
		})
	}

	entries, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get audit entries")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Audit entries retrieved successfully")

	response.WithJSON(w, http.StatusOK, entries)
}
