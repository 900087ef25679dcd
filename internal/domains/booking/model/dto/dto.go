package dto

import (
	"roamalto/internal/domains/booking/model"
	"roamalto/shared"
	"roamalto/shared/constant"
	gDto "roamalto/shared/dto"
	"roamalto/shared/jsonval"
	gModel "roamalto/shared/model"
	"roamalto/shared/timezone"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	LeadID         string        `json:"lead_id"         validate:"required"`
	PackageID      string        `json:"package_id"      validate:"required"`
	AmountEstimate int64         `json:"amount_estimate" validate:"omitempty,gte=0"`
	Meta           jsonval.Value `json:"meta"            validate:"omitempty"`
}

func (c *CreateBookingRequest) ToModel() model.Booking {
	now := timezone.Now()

	return model.Booking{
		ID:             uuid.NewString(),
		LeadID:         c.LeadID,
		PackageID:      c.PackageID,
		Status:         model.StatusNew,
		AmountEstimate: c.AmountEstimate,
		Meta:           c.Meta,
		UpdatedAt:      now,
		Metadata: gModel.Metadata{
			CreatedAt: now,
		},
	}
}

type TransitionBookingRequest struct {
	Status string `json:"status" validate:"required,oneof=new consulting docs booked closed"`
}

type BookingResponse struct {
	ID             string        `json:"id"`
	LeadID         string        `json:"lead_id"`
	PackageID      string        `json:"package_id"`
	Status         string        `json:"status"`
	AmountEstimate int64         `json:"amount_estimate"`
	Meta           jsonval.Value `json:"meta"`
	UpdatedAt      string        `json:"updated_at"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.LeadID = model.LeadID
	r.PackageID = model.PackageID
	r.Status = model.Status
	r.AmountEstimate = model.AmountEstimate
	r.Meta = model.Meta
	r.UpdatedAt = timezone.Format(model.UpdatedAt, constant.DateFormat)
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}
