package lead

import (
	"net/http"
	"roamalto/infras/otel"
	"roamalto/internal/domains/lead/model"
	"roamalto/internal/domains/lead/model/dto"
	"roamalto/internal/domains/lead/service"
	"roamalto/shared/constant"
	gDto "roamalto/shared/dto"
	"roamalto/shared/validator"
	"roamalto/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Lead
	otel    otel.Otel
}

func New(service service.Lead, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/leads", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateLead)
		routerGroup.Get("/", handler.GetLeads)
		routerGroup.Get("/{id}", handler.GetLeadByID)
	})
}

// CreateLead captures a marketing lead from the public site.
// @Summary Capture a new lead
// @Description Capture a lead submitted through the public marketing site.
// @Tags Lead
// @Accept json
// @Produce json
// @Param request body dto.CreateLeadRequest true "Create Lead Request"
// @Success 201 {object} response.Data[dto.CreateLeadResponse] "Lead captured successfully"
// @Failure 400 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/leads [post]
func (handler *Handler) CreateLead(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateLead")
	defer scope.End()

	req := dto.CreateLeadRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create lead")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Lead captured successfully")

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetLeads retrieves all leads based on query parameters.
// @Summary Get all leads
// @Description Retrieve all captured leads with optional filtering and pagination.
// @Tags Lead
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param country query string false "Filter by country"
// @Param source query string false "Filter by source"
// @Param email query string false "Search by email"
// @Success 200 {object} response.Data[dto.GetLeadsResponse] "List of leads"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/leads [get]
// @Security BearerAuth
func (handler *Handler) GetLeads(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetLeads")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	country := r.URL.Query().Get(model.FieldCountry)
	source := r.URL.Query().Get(model.FieldSource)
	email := r.URL.Query().Get(model.FieldEmail)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if country != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldCountry,
			Operator: gDto.FilterOperatorEq,
			Value:    country,
			Table:    model.TableName,
		})
	}

	if source != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldSource,
			Operator: gDto.FilterOperatorEq,
			Value:    source,
			Table:    model.TableName,
		})
	}

	if email != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldEmail,
			Operator: gDto.FilterOperatorLike,
			Value:    email,
			Table:    model.TableName,
		})
	}

	leads, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get leads")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Leads retrieved successfully")

	response.WithJSON(w, http.StatusOK, leads)
}

// GetLeadByID retrieves a lead by its ID.
// @Summary Get a lead by ID
// @Description Retrieve a lead by its unique identifier.
// @Tags Lead
// @Accept json
// @Produce json
// @Param id path string true "Lead ID"
// @Success 200 {object} response.Data[dto.LeadResponse] "Lead details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/leads/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetLeadByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetLeadByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	lead, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get lead by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Lead retrieved successfully")

	response.WithJSON(w, http.StatusOK, lead)
}
