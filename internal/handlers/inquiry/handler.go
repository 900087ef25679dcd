package inquiry

import (
	"net/http"
	"roamalto/infras/otel"
	"roamalto/internal/domains/inquiry/model"
	"roamalto/internal/domains/inquiry/model/dto"
	"roamalto/internal/domains/inquiry/service"
	"roamalto/shared/constant"
	gDto "roamalto/shared/dto"
	"roamalto/shared/validator"
	"roamalto/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Inquiry
	otel    otel.Otel
}

func New(service service.Inquiry, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/inquiries", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateInquiry)
		routerGroup.Get("/", handler.GetInquiries)
	})
}

// CreateInquiry records a staff touchpoint with a lead.
// @Summary Record a new inquiry
// @Description Record an inquiry touchpoint between staff and a lead.
// @Tags Inquiry
// @Accept json
// @Produce json
// @Param request body dto.CreateInquiryRequest true "Create Inquiry Request"
// @Success 201 {object} response.Data[dto.InquiryResponse] "Inquiry recorded successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 422 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/inquiries [post]
// @Security BearerAuth
func (handler *Handler) CreateInquiry(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateInquiry")
	defer scope.End()

	req := dto.CreateInquiryRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create inquiry")

		response.WithError(writer, err)

		return
	}

	staff, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Inquiry recorded successfully by staff " + staff)

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetInquiries retrieves all inquiries based on query parameters.
// @Summary Get all inquiries
// @Description Retrieve all inquiries with optional filtering and pagination.
// @Tags Inquiry
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param lead_id query string false "Filter by lead ID"
// @Param channel query string false "Filter by channel (whatsapp, email, form)"
// @Success 200 {object} response.Data[dto.GetInquiriesResponse] "List of inquiries"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/inquiries [get]
// @Security BearerAuth
func (handler *Handler) GetInquiries(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetInquiries")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	leadID := r.URL.Query().Get(model.FieldLeadID)
	channel := r.URL.Query().Get(model.FieldChannel)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if leadID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldLeadID,
			Operator: gDto.FilterOperatorEq,
			Value:    leadID,
			Table:    model.TableName,
		})
	}

	if channel != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldChannel,
			Operator: gDto.FilterOperatorEq,
			Value:    channel,
			Table:    model.TableName,
		})
	}

	inquiries, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get inquiries")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Inquiries retrieved successfully")

	response.WithJSON(w, http.StatusOK, inquiries)
}
