package usecase

import (
	"math"

	"github.com/vasapolrittideah/portfolio-api/services/portfolio-service/internal/repository"
)

const MaxPageLimit = 1000

// checkPage rejects non-positive values and pages whose offset does not fit
// in an int64, then caps the limit.
func checkPage(page repository.Page) (repository.Page, error) {
	if page.Number < 1 || page.Limit < 1 {
		return repository.Page{}, ErrInvalidPagination
	}

	page.Limit = min(page.Limit, MaxPageLimit)
	if page.Number > math.MaxInt64/page.Limit {
		return repository.Page{}, ErrInvalidPagination
	}

	return page, nil
}
