package repository

import "math"

// Page selects a 1-based page of Limit documents.
type Page struct {
	Number int64
	Limit  int64
}

// Skip returns the number of documents before the page. It saturates at
// math.MaxInt64 instead of overflowing.
func (p Page) Skip() int64 {
	if p.Number < 1 || p.Limit < 1 {
		return 0
	}
	if p.Number-1 > math.MaxInt64/p.Limit {
		return math.MaxInt64
	}
	return (p.Number - 1) * p.Limit
}
