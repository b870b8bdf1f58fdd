package folio

import (
	"context"
	"time"

	"hotelops/models"

	"go.uber.org/zap"
)

// GetFolio collects, deduplicates and aggregates the folio of a booking.
func (s *DefaultFolioService) GetFolio(ctx context.Context, bookingID string, asOf time.Time) (*models.Folio, error) {
	snap, err := Collect(ctx, s.Repo, bookingID)
	if err != nil {
		return nil, err
	}

	f, res := Compute(s.Dedup, snap, asOf)
	if len(res.Dropped) > 0 {
		rules := make([]string, 0, len(res.Dropped))
		for _, d := range res.Dropped {
			rules = append(rules, d.Transaction.ID+":"+d.Rule)
		}
		s.Logger.Debug("folio ledger lines deduplicated",
			zap.String("bookingId", bookingID),
			zap.Int("dropped", len(res.Dropped)),
			zap.Strings("rules", rules))
	}
	return f, nil
}
