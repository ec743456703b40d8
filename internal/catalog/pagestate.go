package catalog

// PageState tracks the current page and the last known total-pages bound for
// one content surface. Each surface keeps its own instance.
type PageState struct {
	Page       int `json:"page"`
	TotalPages int `json:"total_pages"`
}

func NewPageState() *PageState { return &PageState{Page: 1} }

// SetPage clamps n to [1, TotalPages] when a bound is known, else to >= 1.
func (p *PageState) SetPage(n int) {
	if n < 1 {
		n = 1
	}
	if p.TotalPages > 0 && n > p.TotalPages {
		n = p.TotalPages
	}
	p.Page = n
}

// SetTotal records the total-pages bound from the latest fetch and re-clamps
// the current page against it.
func (p *PageState) SetTotal(total int) {
	if total < 0 {
		total = 0
	}
	p.TotalPages = total
	p.SetPage(p.Page)
}

func (p *PageState) Next() { p.SetPage(p.Page + 1) }
func (p *PageState) Prev() { p.SetPage(p.Page - 1) }

// Reset returns to page 1, called whenever a filter, sort or kind dimension
// changes.
func (p *PageState) Reset() { p.Page = 1 }
