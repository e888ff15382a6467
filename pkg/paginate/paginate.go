package paginate

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

type Page struct {
	Page  int
	Limit int
}

// New clamps page to >= 1 and limit to [1, MaxLimit], falling back to DefaultLimit.
func New(page, limit int) Page {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Page{Page: page, Limit: limit}
}

// Offset is the number of rows before this page.
func (p Page) Offset() int {
	return (p.Page - 1) * p.Limit
}
