package dto

import (
	"roamalto/internal/domains/lead/model"
	"roamalto/shared"
	"roamalto/shared/constant"
	gDto "roamalto/shared/dto"
	"roamalto/shared/jsonval"
	gModel "roamalto/shared/model"
	"roamalto/shared/timezone"

	"github.com/google/uuid"
)

type CreateLeadRequest struct {
	Name         string        `json:"name"          validate:"required,min=2,max=120"`
	Email        string        `json:"email"         validate:"required,email,max=160"`
	Phone        string        `json:"phone"         validate:"omitempty,min=6,max=32"`
	Country      string        `json:"country"       validate:"omitempty,max=80"`
	TravelWindow string        `json:"travel_window" validate:"omitempty,max=120"`
	Notes        string        `json:"notes"         validate:"omitempty,max=2000"`
	Source       string        `json:"source"        validate:"omitempty,max=80"`
	Utm          jsonval.Value `json:"utm"           validate:"omitempty"`
}

func (c *CreateLeadRequest) ToModel() model.Lead {
	return model.Lead{
		ID:           uuid.NewString(),
		Name:         c.Name,
		Email:        c.Email,
		Phone:        c.Phone,
		Country:      c.Country,
		TravelWindow: c.TravelWindow,
		Notes:        c.Notes,
		Source:       c.Source,
		Utm:          c.Utm,
		Metadata: gModel.Metadata{
			CreatedAt: timezone.Now(),
		},
	}
}

type CreateLeadResponse struct {
	ID        string `json:"id"`
	CreatedAt string `json:"created_at"`
}

func (r *CreateLeadResponse) FromModel(model model.Lead) {
	r.ID = model.ID
	r.CreatedAt = timezone.Format(model.CreatedAt, constant.DateFormat)
}

type LeadResponse struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Email        string        `json:"email"`
	Phone        string        `json:"phone"`
	Country      string        `json:"country"`
	TravelWindow string        `json:"travel_window"`
	Notes        string        `json:"notes"`
	Source       string        `json:"source"`
	Utm          jsonval.Value `json:"utm"`
	gDto.Metadata
}

func (r *LeadResponse) FromModel(model model.Lead) {
	r.ID = model.ID
	r.Name = model.Name
	r.Email = model.Email
	r.Phone = model.Phone
	r.Country = model.Country
	r.TravelWindow = model.TravelWindow
	r.Notes = model.Notes
	r.Source = model.Source
	r.Utm = model.Utm
	r.Metadata.FromModel(model.Metadata)
}

type GetLeadsResponse struct {
	Leads     []LeadResponse `json:"leads"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetLeadsResponse) FromModels(models []model.Lead, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Leads = make([]LeadResponse, len(models))
	for i, mod := range models {
		r.Leads[i].FromModel(mod)
	}
}
