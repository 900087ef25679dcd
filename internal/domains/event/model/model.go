package model

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"roamalto/shared/constant"
	"roamalto/shared/jsonval"
	"roamalto/shared/model"
)

const (
	TableName  = "events"
	EntityName = "event"

	FieldID        = "id"
	FieldType      = "type"
	FieldPath      = "path"
	FieldSessionID = "session_id"
	FieldMeta      = "meta"
)

const (
	VisitTableName  = "visits"
	VisitEntityName = "visit"

	VisitFieldID          = "id"
	VisitFieldPath        = "path"
	VisitFieldFingerprint = "fingerprint"
	VisitFieldDay         = "day"
	VisitFieldUtm         = "utm"
)

const (
	TypePageView      = "page_view"
	TypeCtaClick      = "cta_click"
	TypeBookClick     = "book_click"
	TypeItineraryOpen = "itinerary_open"
)

type Event struct {
	ID        string        `db:"id"`
	Type      string        `db:"type"`
	Path      string        `db:"path"`
	SessionID string        `db:"session_id"`
	Meta      jsonval.Value `db:"meta"`
	model.Metadata
}

type Visit struct {
	ID          string        `db:"id"`
	Path        string        `db:"path"`
	Fingerprint string        `db:"fingerprint"`
	Day         string        `db:"day"`
	Utm         jsonval.Value `db:"utm"`
	model.Metadata
}

// VisitFingerprint hashes the visitor identity down to a hex digest so no raw
// IP or user agent ever reaches storage. The UTC day in the preimage rolls the
// fingerprint over at midnight, bounding how long a visitor is linkable.
func VisitFingerprint(userAgent, clientIP string, at time.Time, sessionKey string) string {
	day := at.UTC().Format(constant.DayFormatUTC)
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s:%s:%s:%s", userAgent, clientIP, day, sessionKey)))

	return hex.EncodeToString(sum[:])
}
