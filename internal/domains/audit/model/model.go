package model

import (
	"roamalto/shared/jsonval"
	"roamalto/shared/model"
)

const (
	TableName  = "audit_log"
	EntityName = "audit"

	FieldID         = "id"
	FieldAction     = "action"
	FieldEntityType = "entity_type"
	FieldEntityID   = "entity_id"
	FieldActor      = "actor"
	FieldDetail     = "detail"
)

// Entry is one immutable audit trail row. Entries are only ever inserted;
// there is no update or delete path for them.
type Entry struct {
	ID         string        `db:"id"`
	Action     string        `db:"action"`
	EntityType string        `db:"entity_type"`
	EntityID   string        `db:"entity_id"`
	Actor      string        `db:"actor"`
	Detail     jsonval.Value `db:"detail"`
	model.Metadata
}
