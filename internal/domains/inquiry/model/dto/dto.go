package dto

import (
	"roamalto/internal/domains/inquiry/model"
	"roamalto/shared"
	gDto "roamalto/shared/dto"
	gModel "roamalto/shared/model"
	"roamalto/shared/timezone"

	"github.com/google/uuid"
)

type CreateInquiryRequest struct {
	LeadID  string `json:"lead_id" validate:"required"`
	Channel string `json:"channel" validate:"required,oneof=whatsapp email form"`
	Message string `json:"message" validate:"required,max=2000"`
}

func (c *CreateInquiryRequest) ToModel(staffID string) model.Inquiry {
	return model.Inquiry{
		ID:      uuid.NewString(),
		LeadID:  c.LeadID,
		Channel: c.Channel,
		Message: c.Message,
		StaffID: staffID,
		Metadata: gModel.Metadata{
			CreatedAt: timezone.Now(),
		},
	}
}

type InquiryResponse struct {
	ID      string `json:"id"`
	LeadID  string `json:"lead_id"`
	Channel string `json:"channel"`
	Message string `json:"message"`
	StaffID string `json:"staff_id"`
	gDto.Metadata
}

func (r *InquiryResponse) FromModel(model model.Inquiry) {
	r.ID = model.ID
	r.LeadID = model.LeadID
	r.Channel = model.Channel
	r.Message = model.Message
	r.StaffID = model.StaffID
	r.Metadata.FromModel(model.Metadata)
}

type GetInquiriesResponse struct {
	Inquiries []InquiryResponse `json:"inquiries"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetInquiriesResponse) FromModels(models []model.Inquiry, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Inquiries = make([]InquiryResponse, len(models))
	for i, mod := range models {
		r.Inquiries[i].FromModel(mod)
	}
}
