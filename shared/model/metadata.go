package model

import "time"

type Metadata struct {
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
	CreatedBy  string    `json:"created_by"`
	ModifiedBy string    `json:"modified_by"`
}

// Stamp fills the creation fields and mirrors them into the modification fields.
func (m *Metadata) Stamp(now time.Time, by string) {
	m.CreatedAt = now
	m.CreatedBy = by
	m.ModifiedAt = now
	m.ModifiedBy = by
}

// Touch records a modification.
func (m *Metadata) Touch(now time.Time, by string) {
	m.ModifiedAt = now
	m.ModifiedBy = by
}
