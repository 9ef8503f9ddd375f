package service

// maxVisiblePages is how many numbered pages the pager shows at once
const maxVisiblePages = 5

// Pager describes the page controls for a paged list.
// Pages holds the numbered window; First/Last are set when page 1 or the
// last page sit outside it, with the ellipsis flags marking a gap.
type Pager struct {
	Current int
	Total   int
	Pages   []int

	First       bool
	LeadingGap  bool
	Last        bool
	TrailingGap bool
	HasPrev     bool
	HasNext     bool
}

// PageWindow builds the pager for current of total pages. The window is
// centered on current where possible and shifted to stay 5 wide at the ends.
func PageWindow(current, total int) Pager {
	if total < 1 {
		total = 1
	}
	if current < 1 {
		current = 1
	}
	if current > total {
		current = total
	}

	start := max(1, current-maxVisiblePages/2)
	end := min(total, start+maxVisiblePages-1)
	if end-start < maxVisiblePages-1 {
		start = max(1, end-maxVisiblePages+1)
	}

	p := Pager{
		Current: current,
		Total:   total,
		Pages:   make([]int, 0, end-start+1),
		HasPrev: current > 1,
		HasNext: current < total,
	}
	for i := start; i <= end; i++ {
		p.Pages = append(p.Pages, i)
	}

	if start > 1 {
		p.First = true
		p.LeadingGap = start > 2
	}
	if end < total {
		p.Last = true
		p.TrailingGap = end < total-1
	}
	return p
}

// Clamp keeps a requested page inside 1..Total
func (p Pager) Clamp(page int) int {
	if page < 1 {
		return 1
	}
	if page > p.Total {
		return p.Total
	}
	return page
}
