package model

import (
	"slices"
	"time"

	"roamalto/shared/jsonval"
	"roamalto/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID             = "id"
	FieldLeadID         = "lead_id"
	FieldPackageID      = "package_id"
	FieldStatus         = "status"
	FieldAmountEstimate = "amount_estimate"
	FieldMeta           = "meta"
	FieldUpdatedAt      = "updated_at"
)

const (
	StatusNew        = "new"
	StatusConsulting = "consulting"
	StatusDocs       = "docs"
	StatusBooked     = "booked"
	StatusClosed     = "closed"
)

// AllowedTransitions is the full outgoing-edge set of the booking workflow.
// booked and closed are terminal; they have no entries.
var AllowedTransitions = map[string][]string{
	StatusNew:        {StatusConsulting},
	StatusConsulting: {StatusDocs},
	StatusDocs:       {StatusBooked, StatusClosed},
}

// CanTransition reports whether from→to is a legal edge.
func CanTransition(from, to string) bool {
	return slices.Contains(AllowedTransitions[from], to)
}

type Booking struct {
	ID             string        `db:"id"`
	LeadID         string        `db:"lead_id"`
	PackageID      string        `db:"package_id"`
	Status         string        `db:"status"`
	AmountEstimate int64         `db:"amount_estimate"`
	Meta           jsonval.Value `db:"meta"`
	UpdatedAt      time.Time     `db:"updated_at"`
	model.Metadata
}
