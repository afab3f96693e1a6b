package dto

import (
	"hotelier/shared/constant"
	"hotelier/shared/model"
	"hotelier/shared/timezone"
)

// Metadata is the audit trail shown on every record. Edited is false until something
// other than the creating write has touched the record.
type Metadata struct {
	CreatedAt  string `json:"created_at"`
	CreatedBy  string `json:"created_by"`
	ModifiedAt string `json:"modified_at"`
	ModifiedBy string `json:"modified_by"`
	Edited     bool   `json:"edited"`
}

func (m *Metadata) FromModel(meta model.Metadata) {
	m.CreatedAt = timezone.Format(meta.CreatedAt, constant.DateFormat)
	m.CreatedBy = meta.CreatedBy
	m.ModifiedAt = timezone.Format(meta.ModifiedAt, constant.DateFormat)
	m.ModifiedBy = meta.ModifiedBy
	m.Edited = meta.ModifiedAt.After(meta.CreatedAt)
}
