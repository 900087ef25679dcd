package model

import (
	"roamalto/shared/jsonval"
	"roamalto/shared/model"
)

const (
	TableName  = "leads"
	EntityName = "lead"

	FieldID           = "id"
	FieldName         = "name"
	FieldEmail        = "email"
	FieldPhone        = "phone"
	FieldCountry      = "country"
	FieldTravelWindow = "travel_window"
	FieldNotes        = "notes"
	FieldSource       = "source"
	FieldUtm          = "utm"
)

type Lead struct {
	ID           string        `db:"id"`
	Name         string        `db:"name"`
	Email        string        `db:"email"`
	Phone        string        `db:"phone"`
	Country      string        `db:"country"`
	TravelWindow string        `db:"travel_window"`
	Notes        string        `db:"notes"`
	Source       string        `db:"source"`
	Utm          jsonval.Value `db:"utm"`
	model.Metadata
}
