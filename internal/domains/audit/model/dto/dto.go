package dto

import (
	"roamalto/internal/domains/audit/model"
	"roamalto/shared"
	gDto "roamalto/shared/dto"
	gModel "roamalto/shared/model"
	"roamalto/shared/jsonval"
	"roamalto/shared/timezone"

	"github.com/google/uuid"
)

type RecordEntryRequest struct {
	Action     string         `json:"action"      validate:"required"`
	EntityType string         `json:"entity_type" validate:"required"`
	EntityID   string         `json:"entity_id"   validate:"required"`
	Actor      string         `json:"actor"       validate:"omitempty"`
	Detail     map[string]any `json:"detail"      validate:"omitempty"`
}

func (r *RecordEntryRequest) ToModel() (model.Entry, error) {
	detail, err := jsonval.Object(r.Detail)
	if err != nil {
		return model.Entry{}, err
	}

	return model.Entry{
		ID:         uuid.NewString(),
		Action:     r.Action,
		EntityType: r.EntityType,
		EntityID:   r.EntityID,
		Actor:      r.Actor,
		Detail:     detail,
		Metadata: gModel.Metadata{
			CreatedAt: timezone.Now(),
		},
	}, nil
}

type EntryResponse struct {
	ID         string        `json:"id"`
	Action     string        `json:"action"`
	EntityType string        `json:"entity_type"`
	EntityID   string        `json:"entity_id"`
	Actor      string        `json:"actor"`
	Detail     jsonval.Value `json:"detail"`
	gDto.Metadata
}

func (r *EntryResponse) FromModel(model model.Entry) {
	r.ID = model.ID
	r.Action = model.Action
	r.EntityType = model.EntityType
	r.EntityID = model.EntityID
	r.Actor = model.Actor
	r.Detail = model.Detail
	r.Metadata.FromModel(model.Metadata)
}

type GetEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetEntriesResponse) FromModels(models []model.Entry, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Entries = make([]EntryResponse, len(models))
	for i, mod := range models {
		r.Entries[i].FromModel(mod)
	}
}
