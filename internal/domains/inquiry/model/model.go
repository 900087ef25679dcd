package model

import (
	"roamalto/shared/model"
)

const (
	TableName  = "inquiries"
	EntityName = "inquiry"

	FieldID      = "id"
	FieldLeadID  = "lead_id"
	FieldChannel = "channel"
	FieldMessage = "message"
	FieldStaffID = "staff_id"
)

const (
	ChannelWhatsapp = "whatsapp"
	ChannelEmail    = "email"
	ChannelForm     = "form"
)

type Inquiry struct {
	ID      string `db:"id"`
	LeadID  string `db:"lead_id"`
	Channel string `db:"channel"`
	Message string `db:"message"`
	StaffID string `db:"staff_id"`
	model.Metadata
}
