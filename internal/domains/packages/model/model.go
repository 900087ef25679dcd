package model

import (
	"roamalto/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "packages"
	EntityName = "package"

	FieldID           = "id"
	FieldTitle        = "title"
	FieldSlug         = "slug"
	FieldSummary      = "summary"
	FieldDays         = "days"
	FieldHighlights   = "highlights"
	FieldPriceFrom    = "price_from"
	FieldHeroImageURL = "hero_image_url"
	FieldActive       = "active"
)

// Package is a sellable itinerary in the catalog. PriceFrom is the lowest
// advertised price in whole IDR, never a computed quote.
type Package struct {
	ID           string         `db:"id"`
	Title        string         `db:"title"`
	Slug         string         `db:"slug"`
	Summary      string         `db:"summary"`
	Days         int            `db:"days"`
	Highlights   pq.StringArray `db:"highlights"`
	PriceFrom    int64          `db:"price_from"`
	HeroImageURL string         `db:"hero_image_url"`
	Active       bool           `db:"active"`
	model.Metadata
}
