package folio

import (
	"context"
	"errors"
	"time"

	folioRepo "hotelops/database/repository/folio"
	"hotelops/models"

	"go.uber.org/zap"
)

// Checkout closes the folio. A positive balance blocks checkout unless force is
// set. Guest notification and statement delivery are best effort.
func (s *DefaultFolioService) Checkout(ctx context.Context, bookingID string, force bool, asOf time.Time) (*models.Folio, error) {
	f, err := s.GetFolio(ctx, bookingID, asOf)
	if err != nil {
		return nil, err
	}
	switch f.Booking.Status {
	case models.BookingCancelled:
		return nil, ErrBookingCancelled
	case models.BookingCheckedOut:
		return nil, ErrAlreadyCheckedOut
	}
	if f.Summary.Balance.IsPositive() && !force {
		return nil, &OutstandingBalanceError{Balance: f.Summary.Balance}
	}

	if err := s.Repo.CheckOutBooking(ctx, bookingID); err != nil {
		if errors.Is(err, folioRepo.ErrStatusConflict) {
			return nil, s.closedBookingError(ctx, bookingID)
		}
		return nil, mapRepoError(err)
	}
	f.Booking.Status = models.BookingCheckedOut

	if s.Records != nil {
		if _, err := s.Records.Create(ctx, models.NewFolioRecord(f, force)); err != nil {
			s.Logger.Warn("checkout record not archived", zap.String("bookingId", bookingID), zap.Error(err))
		}
	}
	if s.Notifier != nil {
		if err := s.Notifier.NotifyCheckout(ctx, f.Booking, f.Summary); err != nil {
			s.Logger.Warn("checkout notification failed", zap.String("bookingId", bookingID), zap.Error(err))
		}
	}
	if err := s.RequestStatement(ctx, bookingID, "checkout"); err != nil {
		s.Logger.Warn("statement enqueue failed", zap.String("bookingId", bookingID), zap.Error(err))
	}

	s.Logger.Info("guest checked out",
		zap.String("bookingId", bookingID),
		zap.String("grandTotal", f.Summary.GrandTotal.StringFixed(2)),
		zap.String("balance", f.Summary.Balance.StringFixed(2)),
		zap.Bool("forced", force))
	return f, nil
}

// closedBookingError reports why a concurrent checkout lost the race.
func (s *DefaultFolioService) closedBookingError(ctx context.Context, bookingID string) error {
	if b, err := s.Repo.GetBooking(ctx, bookingID); err == nil && b.Status == models.BookingCancelled {
		return ErrBookingCancelled
	}
	return ErrAlreadyCheckedOut
}

// RequestStatement queues a statement build for the booking.
func (s *DefaultFolioService) RequestStatement(ctx context.Context, bookingID, actor string) error {
	if s.Statements == nil {
		return nil
	}
	return s.Statements.EnqueueStatement(ctx, models.StatementPayload{BookingID: bookingID, RequestedBy: actor})
}

// CheckoutHistory lists archived checkouts of a booking, newest first.
func (s *DefaultFolioService) CheckoutHistory(ctx context.Context, bookingID string) ([]models.FolioRecord, error) {
	if _, err := s.Repo.GetBooking(ctx, bookingID); err != nil {
		return nil, mapRepoError(err)
	}
	if s.Records == nil {
		return []models.FolioRecord{}, nil
	}
	return s.Records.GetByBookingID(ctx, bookingID)
}

// StatementID returns the storage ID of the booking's latest delivered statement.
func (s *DefaultFolioService) StatementID(ctx context.Context, bookingID string) (string, error) {
	booking, err := s.Repo.GetBooking(ctx, bookingID)
	if err != nil {
		return "", mapRepoError(err)
	}
	if booking.StatementID == "" {
		return "", ErrNoStatement
	}
	return booking.StatementID, nil
}
