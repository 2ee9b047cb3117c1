package orders

import (
	"context"

	"go.uber.org/zap"

	"github.com/backo/backend/internal/domain/storefront"
)

// customerEnricher backfills buyer contact details on orders that reference an
// upstream customer by id only. Lookups are cached for the lifetime of one
// operation, so each customer id is fetched at most once even when it appears
// on many orders; misses are cached as nil too.
type customerEnricher struct {
	cache map[string]*storefront.CustomerRecord
}

func newCustomerEnricher() *customerEnricher {
	return &customerEnricher{cache: make(map[string]*storefront.CustomerRecord)}
}

// Enrich fills customer contacts in place for every order that needs it.
// Lookup failures are logged and skipped; an unreachable customers endpoint
// must not fail the whole operation.
func (e *customerEnricher) Enrich(ctx context.Context, platform storefront.Platform, creds storefront.Credentials, orders []storefront.Order, logger *zap.Logger) {
	for i := range orders {
		if !orders[i].NeedsCustomerEnrichment() {
			continue
		}

		key := string(platform.Code()) + ":" + orders[i].CustomerID
		rec, seen := e.cache[key]
		if !seen {
			var err error
			rec, err = platform.FetchCustomerByID(ctx, creds, orders[i].CustomerID)
			if err != nil {
				logger.Warn("customer enrichment lookup failed",
					zap.String("platform", platform.Code().String()),
					zap.String("customer_id", orders[i].CustomerID),
					zap.Error(err),
				)
				continue
			}
			e.cache[key] = rec
		}

		orders[i].ApplyCustomer(rec)
	}
}
