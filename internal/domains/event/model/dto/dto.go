package dto

import (
	"roamalto/internal/domains/event/model"
	"roamalto/shared"
	"roamalto/shared/constant"
	gDto "roamalto/shared/dto"
	"roamalto/shared/jsonval"
	gModel "roamalto/shared/model"
	"roamalto/shared/timezone"

	"github.com/google/uuid"
)

type IngestEventRequest struct {
	Type      string        `json:"type"       validate:"required,oneof=page_view cta_click book_click itinerary_open"`
	Path      string        `json:"path"       validate:"required,max=2048"`
	SessionID string        `json:"session_id" validate:"omitempty,max=128"`
	Meta      jsonval.Value `json:"meta"       validate:"omitempty"`

	// Filled by the handler from the request, never from the payload.
	ClientIP  string `json:"-"`
	UserAgent string `json:"-"`
}

// SessionKey is the session part of the rate-limit key and the visit
// fingerprint preimage. Anonymous traffic shares one bucket per IP.
func (r *IngestEventRequest) SessionKey() string {
	if r.SessionID == constant.Empty {
		return constant.AnonymousSessionKey
	}

	return r.SessionID
}

func (r *IngestEventRequest) ToModel() model.Event {
	return model.Event{
		ID:        uuid.NewString(),
		Type:      r.Type,
		Path:      r.Path,
		SessionID: r.SessionID,
		Meta:      r.Meta,
		Metadata: gModel.Metadata{
			CreatedAt: timezone.Now(),
		},
	}
}

type IngestEventResponse struct {
	ID        string `json:"id"`
	CreatedAt string `json:"created_at"`
}

type EventResponse struct {
	ID        string        `json:"id"`
	Type      string        `json:"type"`
	Path      string        `json:"path"`
	SessionID string        `json:"session_id"`
	Meta      jsonval.Value `json:"meta"`
	gDto.Metadata
}

func (r *EventResponse) FromModel(model model.Event) {
	r.ID = model.ID
	r.Type = model.Type
	r.Path = model.Path
	r.SessionID = model.SessionID
	r.Meta = model.Meta
	r.Metadata.FromModel(model.Metadata)
}

type GetEventsResponse struct {
	Events    []EventResponse `json:"events"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetEventsResponse) FromModels(models []model.Event, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Events = make([]EventResponse, len(models))
	for i, mod := range models {
		r.Events[i].FromModel(mod)
	}
}

type VisitResponse struct {
	ID          string        `json:"id"`
	Path        string        `json:"path"`
	Fingerprint string        `json:"fingerprint"`
	Day         string        `json:"day"`
	Utm         jsonval.Value `json:"utm"`
	gDto.Metadata
}

func (r *VisitResponse) FromModel(model model.Visit) {
	r.ID = model.ID
	r.Path = model.Path
	r.Fingerprint = model.Fingerprint
	r.Day = model.Day
	r.Utm = model.Utm
	r.Metadata.FromModel(model.Metadata)
}

type GetVisitsResponse struct {
	Visits    []VisitResponse `json:"visits"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetVisitsResponse) FromModels(models []model.Visit, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Visits = make([]VisitResponse, len(models))
	for i, mod := range models {
		r.Visits[i].FromModel(mod)
	}
}
