package dto

import (
	"roamalto/internal/domains/packages/model"
	"roamalto/shared"
	gDto "roamalto/shared/dto"
	gModel "roamalto/shared/model"
	"roamalto/shared/timezone"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type CreatePackageRequest struct {
	Title      string   `json:"title"      validate:"required,min=3,max=160"`
	Slug       string   `json:"slug"       validate:"required,min=3,max=160,lowercase"`
	Summary    string   `json:"summary"    validate:"omitempty,max=2000"`
	Days       int      `json:"days"       validate:"required,gte=1,lte=60"`
	Highlights []string `json:"highlights" validate:"required,min=1,max=12,dive,min=1,max=160"`
	PriceFrom  int64    `json:"price_from" validate:"omitempty,gte=0"`
	Active     bool     `json:"active"`
}

func (c *CreatePackageRequest) ToModel() model.Package {
	return model.Package{
		ID:         uuid.NewString(),
		Title:      c.Title,
		Slug:       c.Slug,
		Summary:    c.Summary,
		Days:       c.Days,
		Highlights: pq.StringArray(c.Highlights),
		PriceFrom:  c.PriceFrom,
		Active:     c.Active,
		Metadata: gModel.Metadata{
			CreatedAt: timezone.Now(),
		},
	}
}

// UpdatePackageRequest carries a partial update; pointer fields distinguish
// "leave unchanged" from an explicit zero such as active=false.
type UpdatePackageRequest struct {
	Title      *string  `db:"title"      json:"title"      validate:"omitempty,min=3,max=160"`
	Summary    *string  `db:"summary"    json:"summary"    validate:"omitempty,max=2000"`
	Days       *int     `db:"days"       json:"days"       validate:"omitempty,gte=1,lte=60"`
	Highlights []string `db:"highlights" json:"highlights" validate:"omitempty,min=1,max=12,dive,min=1,max=160"`
	PriceFrom  *int64   `db:"price_from" json:"price_from" validate:"omitempty,gte=0"`
	Active     *bool    `db:"active"     json:"active"     validate:"omitempty"`
}

type UploadHeroRequest struct {
	File string `json:"file" validate:"required,mimetypes=image/png image/jpeg image/webp,maxfilesize=5"`
}

type UploadHeroResponse struct {
	URL string `json:"url"`
}

type PackageResponse struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Slug         string   `json:"slug"`
	Summary      string   `json:"summary"`
	Days         int      `json:"days"`
	Highlights   []string `json:"highlights"`
	PriceFrom    int64    `json:"price_from"`
	HeroImageURL string   `json:"hero_image_url"`
	Active       bool     `json:"active"`
	gDto.Metadata
}

func (r *PackageResponse) FromModel(model model.Package) {
	r.ID = model.ID
	r.Title = model.Title
	r.Slug = model.Slug
	r.Summary = model.Summary
	r.Days = model.Days
	r.Highlights = model.Highlights
	r.PriceFrom = model.PriceFrom
	r.HeroImageURL = model.HeroImageURL
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetPackagesResponse struct {
	Packages  []PackageResponse `json:"packages"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetPackagesResponse) FromModels(models []model.Package, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Packages = make([]PackageResponse, len(models))
	for i, mod := range models {
		r.Packages[i].FromModel(mod)
	}
}
