package dto

import (
	"roamalto/shared/constant"
	"roamalto/shared/model"
	"roamalto/shared/timezone"
)

type Metadata struct {
	CreatedAt string `json:"created_at"`
}

func (m *Metadata) FromModel(model model.Metadata) {
	m.CreatedAt = timezone.Format(model.CreatedAt, constant.DateFormat)
}
