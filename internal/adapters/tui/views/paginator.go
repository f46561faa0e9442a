package views

import "github.com/charmbracelet/bubbles/paginator"

// Paginator tracks a cursor over a list and shows it one page at a time.
// The page always follows the cursor.
type Paginator struct {
	pages  paginator.Model
	cursor int
	total  int
}

// NewPaginator creates a paginator showing perPage items per page
func NewPaginator(perPage int) *Paginator {
	pages := paginator.New()
	pages.Type = paginator.Dots
	if perPage > 0 {
		pages.PerPage = perPage
	}
	return &Paginator{pages: pages}
}

// SetPageSize changes the page height, e.g. after a resize
func (p *Paginator) SetPageSize(perPage int) {
	if perPage <= 0 {
		return
	}
	p.pages.PerPage = perPage
	p.sync()
}

// SetTotal sets the list length, clamping the cursor into it
func (p *Paginator) SetTotal(total int) {
	p.total = total
	p.cursor = min(p.cursor, max(total-1, 0))
	p.sync()
}

// Cursor returns the absolute index under the cursor
func (p *Paginator) Cursor() int {
	return p.cursor
}

// CursorUp moves the cursor up one item
func (p *Paginator) CursorUp() bool {
	if p.cursor == 0 {
		return false
	}
	p.cursor--
	p.sync()
	return true
}

// CursorDown moves the cursor down one item
func (p *Paginator) CursorDown() bool {
	if p.cursor >= p.total-1 {
		return false
	}
	p.cursor++
	p.sync()
	return true
}

// VisibleRange returns the bounds of the current page
func (p *Paginator) VisibleRange() (start, end int) {
	return p.pages.GetSliceBounds(p.total)
}

// Reset moves the cursor back to the top
func (p *Paginator) Reset() {
	p.cursor = 0
	p.sync()
}

// View renders page dots, or nothing when everything fits on one page
func (p *Paginator) View() string {
	if p.pages.TotalPages <= 1 {
		return ""
	}
	return p.pages.View()
}

func (p *Paginator) sync() {
	p.pages.SetTotalPages(p.total)
	p.pages.Page = p.cursor / p.pages.PerPage
}
