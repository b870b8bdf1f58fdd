package cashier

import (
	"context"
	"errors"
	"time"

	"hotelops/models"

	"go.uber.org/zap"
)

var (
	ErrNothingDue       = errors.New("folio has no outstanding balance")
	ErrDuplicateRequest = errors.New("request with this idempotency key was already processed")
)

// CashierService collects outstanding folio balances.
type CashierService interface {
	CreatePaymentIntent(ctx context.Context, bookingID, actor string) (*models.PaymentIntent, error)
}

// FolioReader is the part of the folio service the cashier depends on.
type FolioReader interface {
	GetFolio(ctx context.Context, bookingID string, asOf time.Time) (*models.Folio, error)
}

// IntentRequest is what is sent to the payment gateway.
type IntentRequest struct {
	BookingID      string
	AmountMinor    int64
	Currency       string
	Description    string
	ReceiptEmail   string
	IdempotencyKey string
	Metadata       map[string]string
}

// PaymentGateway creates card payment intents with a processor.
type PaymentGateway interface {
	CreateIntent(ctx context.Context, req IntentRequest) (*models.PaymentIntent, error)
}

// DefaultCashierService implements CashierService.
type DefaultCashierService struct {
	Folios   FolioReader
	Gateway  PaymentGateway
	Currency string
	Logger   *zap.Logger
	Now      func() time.Time
}

// NewDefaultCashierService wires the cashier with the folio reader and gateway.
func NewDefaultCashierService(folios FolioReader, gateway PaymentGateway, currency string, logger *zap.Logger) *DefaultCashierService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if currency == "" {
		currency = "usd"
	}
	return &DefaultCashierService{
		Folios:   folios,
		Gateway:  gateway,
		Currency: currency,
		Logger:   logger,
		Now:      time.Now,
	}
}
