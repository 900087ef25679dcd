package model

import "time"

// Metadata carries the creation timestamp shared by every persisted entity.
// Rows in this system are append-mostly; entities that mutate track their own
// modified columns explicitly.
type Metadata struct {
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
