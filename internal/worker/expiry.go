package worker

import (
	"context"
	"log/slog"
	"time"

	"marketplace-api/internal/bus"
	"marketplace-api/internal/domain"
	"marketplace-api/internal/metrics"
	productrepo "marketplace-api/internal/repository/product"
)

// ExpirySweeper marks products past their expiry date as expired and
// unavailable, publishing a product.expired event for each one.
type ExpirySweeper struct {
	products productrepo.Repository
	bus      bus.Publisher
	logger   *slog.Logger
	metrics  *metrics.Metrics
	now      func() time.Time
}

func NewExpirySweeper(products productrepo.Repository, b bus.Publisher, logger *slog.Logger, m *metrics.Metrics) *ExpirySweeper {
	return &ExpirySweeper{
		products: products,
		bus:      b,
		logger:   logger.With("sweeper", "expiry"),
		metrics:  m,
		now:      time.Now,
	}
}

// RunOnce performs a single sweep. A failure on one product is logged and
// counted but does not stop the rest of the batch.
func (s *ExpirySweeper) RunOnce(ctx context.Context) error {
	expiring, err := s.products.ListExpiring(ctx, s.now())
	if err != nil {
		s.metrics.SweepFailures.WithLabelValues("expiry").Inc()
		return err
	}

	for i := range expiring {
		p := expiring[i]
		if err := s.products.MarkExpired(ctx, p.ID); err != nil {
			s.metrics.SweepFailures.WithLabelValues("expiry").Inc()
			s.logger.ErrorContext(ctx, "mark expired failed", "product_id", p.ID, "error", err)
			continue
		}
		p.Expired = true
		p.Available = false
		s.bus.Publish(ctx, domain.ProductExpired{Product: p})
	}

	s.metrics.SweepRuns.WithLabelValues("expiry").Inc()
	if len(expiring) > 0 {
		s.logger.InfoContext(ctx, "expiry sweep completed", "expired", len(expiring))
	}
	return nil
}
