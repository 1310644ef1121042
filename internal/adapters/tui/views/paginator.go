package views

// Paginator tracks a cursor over a list shown one page at a time.
// The visible page is always the one holding the cursor.
type Paginator struct {
	size   int
	cursor int
	total  int
}

// NewPaginator creates a paginator; a non-positive size means 10 rows
func NewPaginator(size int) *Paginator {
	if size <= 0 {
		size = 10
	}
	return &Paginator{size: size}
}

// SetTotal sets the number of items, pulling the cursor back onto the list
func (p *Paginator) SetTotal(total int) {
	p.total = max(total, 0)
	p.cursor = clamp(p.cursor, 0, p.total-1)
}

// Reset empties the paginator
func (p *Paginator) Reset() {
	p.cursor, p.total = 0, 0
}

// Cursor returns the absolute index of the selected item
func (p *Paginator) Cursor() int { return p.cursor }

// CursorInPage returns the cursor relative to the first visible row
func (p *Paginator) CursorInPage() int { return p.cursor - p.offset() }

// PageSize returns the number of rows per page
func (p *Paginator) PageSize() int { return p.size }

// CursorUp moves the selection one row up
func (p *Paginator) CursorUp() bool {
	return p.move(p.cursor - 1)
}

// CursorDown moves the selection one row down
func (p *Paginator) CursorDown() bool {
	return p.move(p.cursor + 1)
}

// NextPage selects the first row of the following page
func (p *Paginator) NextPage() bool {
	return p.move(p.offset() + p.size)
}

// PrevPage selects the first row of the preceding page
func (p *Paginator) PrevPage() bool {
	if p.offset() == 0 {
		return false
	}
	return p.move(p.offset() - p.size)
}

// VisibleRange returns the half-open index range of the current page
func (p *Paginator) VisibleRange() (start, end int) {
	start = p.offset()
	return start, min(start+p.size, p.total)
}

// CurrentPage is 1-based
func (p *Paginator) CurrentPage() int {
	return p.offset()/p.size + 1
}

// TotalPages is at least 1, even for an empty list
func (p *Paginator) TotalPages() int {
	if p.total == 0 {
		return 1
	}
	return (p.total + p.size - 1) / p.size
}

func (p *Paginator) offset() int {
	return p.cursor / p.size * p.size
}

func (p *Paginator) move(to int) bool {
	if to < 0 || to >= p.total || to == p.cursor {
		return false
	}
	p.cursor = to
	return true
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return min(max(v, lo), hi)
}
