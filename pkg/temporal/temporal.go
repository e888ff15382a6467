// Package temporal models rows that are valid over a half-open interval
// [start_time, close_time). A row whose close_time is OpenEnd is the current
// version; superseding it closes the interval instead of overwriting the row.
package temporal

import (
	"time"

	"Brandi/pkg/errs"
)

// OpenEnd is the close_time stored on the version that is still current.
var OpenEnd = time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC)

// Period is embedded by every versioned table model.
type Period struct {
	StartTime time.Time `gorm:"column:start_time;not null;index" json:"start_time"`
	CloseTime time.Time `gorm:"column:close_time;not null;index;default:'9999-12-31 23:59:59'" json:"close_time"`
}

// Contains reports whether t falls in [StartTime, CloseTime).
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.StartTime) && t.Before(p.CloseTime)
}

func (p Period) IsOpen() bool {
	return p.CloseTime.Equal(OpenEnd)
}

func (p Period) Span() Period {
	return p
}

// Open starts a new current version at the given instant.
func (p *Period) Open(at time.Time) {
	p.StartTime = at
	p.CloseTime = OpenEnd
}

// Versioned is satisfied by pointers to models embedding Period.
type Versioned interface {
	Span() Period
	Open(at time.Time)
}

// Family names a versioned table and the column identifying the entity whose
// history the rows form.
type Family struct {
	Name      string
	KeyColumn string
}

var (
	ProductDetail = Family{Name: "PRODUCT_DETAIL", KeyColumn: "product_id"}
	ProductImage  = Family{Name: "PRODUCT_IMAGE", KeyColumn: "product_id"}
	Quantity      = Family{Name: "QUANTITY", KeyColumn: "product_option_id"}
)

func (f Family) NotFound() *errs.Error {
	return errs.NotFound(f.Name + "_NOT_FOUND")
}

// Single returns the only element of rows. rows must come from a query that
// selects at most two candidates: one is the answer, none is NotFound and two
// means the single-version invariant is broken.
func Single[T any](f Family, entityID uint64, rows []*T) (*T, error) {
	switch len(rows) {
	case 0:
		return nil, f.NotFound().Withf("%s=%d", f.KeyColumn, entityID)
	case 1:
		return rows[0], nil
	default:
		return nil, errs.Invariant("%s: %d versions valid at once for %s=%d", f.Name, len(rows), f.KeyColumn, entityID)
	}
}

// CheckSuccession validates that a version opened at start may be closed at now.
func CheckSuccession(f Family, entityID uint64, start, now time.Time) error {
	if now.Before(start) {
		return errs.Invariant("%s: revision at %s precedes open version start %s for %s=%d",
			f.Name, now.Format(time.RFC3339Nano), start.Format(time.RFC3339Nano), f.KeyColumn, entityID)
	}
	return nil
}
