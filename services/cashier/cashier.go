package cashier

import (
	"context"
	"fmt"
	"strings"

	"hotelops/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var hundred = decimal.NewFromInt(100)

// ToMinorUnits converts a currency amount to cents, rounding half away from zero.
func ToMinorUnits(amount decimal.Decimal) int64 {
	return amount.Mul(hundred).Round(0).IntPart()
}

// CreatePaymentIntent starts a card collection for the folio's current balance.
func (s *DefaultCashierService) CreatePaymentIntent(ctx context.Context, bookingID, actor string) (*models.PaymentIntent, error) {
	f, err := s.Folios.GetFolio(ctx, bookingID, s.Now())
	if err != nil {
		return nil, err
	}
	balance := f.Summary.Balance
	minor := ToMinorUnits(balance)
	if minor <= 0 {
		return nil, ErrNothingDue
	}

	currency := strings.ToLower(f.Booking.Currency)
	if currency == "" {
		currency = strings.ToLower(s.Currency)
	}
	req := IntentRequest{
		BookingID:    bookingID,
		AmountMinor:  minor,
		Currency:     currency,
		Description:  fmt.Sprintf("Folio balance for booking %s", bookingID),
		ReceiptEmail: f.Booking.GuestEmail,
		// One open intent per booking and balance.
		IdempotencyKey: fmt.Sprintf("folio-%s-%d", bookingID, minor),
		Metadata: map[string]string{
			"bookingId":   bookingID,
			"requestedBy": actor,
		},
	}
	intent, err := s.Gateway.CreateIntent(ctx, req)
	if err != nil {
		s.Logger.Error("payment intent creation failed", zap.String("bookingId", bookingID), zap.Error(err))
		return nil, fmt.Errorf("create payment intent: %w", err)
	}
	intent.BookingID = bookingID
	intent.Amount = models.AmountFromDecimal(balance)
	intent.AmountMinor = minor
	intent.Currency = currency

	s.Logger.Info("payment intent created",
		zap.String("bookingId", bookingID),
		zap.String("intentId", intent.ID),
		zap.Int64("amountMinor", minor),
		zap.String("currency", currency))
	return intent, nil
}
