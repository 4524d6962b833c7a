package model

import "time"

// Audit carries the bookkeeping columns shared by every table in the schema.
// Deletion is always a soft delete: rows are flagged, never removed, so
// referential history stays intact.
type Audit struct {
	CreatedBy    string    `json:"CreatedBy"`
	DateCreated  time.Time `json:"DateCreated"`
	ModifiedBy   string    `json:"ModifiedBy"`
	DateModified time.Time `json:"DateModified"`
	Deleted      bool      `json:"Deleted"`
}

// StampCreate fills all audit fields for a freshly created row.
func (a *Audit) StampCreate(actor string, now time.Time) {
	a.CreatedBy = actor
	a.DateCreated = now
	a.ModifiedBy = actor
	a.DateModified = now
	a.Deleted = false
}
