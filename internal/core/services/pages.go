package services

import (
	"context"

	"github.com/custodia-labs/userdir-cli/internal/core/domain"
	"github.com/custodia-labs/userdir-cli/internal/core/ports/driven"
	"github.com/custodia-labs/userdir-cli/internal/logger"
)

// scanPages fetches pages 1..bound in order and calls visit for each,
// stopping early when visit returns true. The bound is replaced by the
// server-reported total once a page reports one.
func scanPages(
	ctx context.Context,
	client driven.DirectoryClient,
	bound int,
	visit func(domain.Page) bool,
) (bool, error) {
	total := bound
	for p := 1; p <= total; p++ {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		page, err := client.ListPage(ctx, p)
		if err != nil {
			return false, err
		}
		if page.Number == 0 {
			page.Number = p
		}
		if page.TotalPages > 0 && page.TotalPages != total {
			logger.Debug("Page bound %d replaced by server total %d", total, page.TotalPages)
			total = page.TotalPages
		}
		if visit(page) {
			return true, nil
		}
	}
	return false, nil
}
