package folio

import (
	"context"
	"errors"
	"fmt"

	folioRepo "hotelops/database/repository/folio"
	"hotelops/models"

	"github.com/shopspring/decimal"
)

// Snapshot is everything fetched for one folio at one point in time.
type Snapshot struct {
	Booking       models.Booking
	FoodOrders    []models.FoodOrder
	GuestServices []models.GuestService
	Transactions  []models.Transaction
}

// NormalizeServiceAmount resolves the amount of a guest service across schema
// versions: totalAmount, then the legacy amount field, then zero.
func NormalizeServiceAmount(svc models.GuestService) decimal.Decimal {
	switch {
	case svc.TotalAmount != nil:
		return svc.TotalAmount.Decimal()
	case svc.Amount != nil:
		return svc.Amount.Decimal()
	default:
		return decimal.Zero
	}
}

// Collect fetches the four source collections for a booking. Guest services come
// back with TotalAmount always populated.
func Collect(ctx context.Context, repo folioRepo.FolioRepository, bookingID string) (*Snapshot, error) {
	booking, err := repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	orders, err := repo.ListFoodOrders(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("collect food orders: %w", err)
	}
	services, err := repo.ListGuestServices(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("collect guest services: %w", err)
	}
	txs, err := repo.ListTransactions(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("collect transactions: %w", err)
	}

	for i := range services {
		total := models.AmountFromDecimal(NormalizeServiceAmount(services[i]))
		services[i].TotalAmount = &total
	}

	return &Snapshot{
		Booking:       *booking,
		FoodOrders:    orders,
		GuestServices: services,
		Transactions:  txs,
	}, nil
}

func mapRepoError(err error) error {
	if errors.Is(err, folioRepo.ErrNotFound) {
		return ErrBookingNotFound
	}
	return fmt.Errorf("load booking: %w", err)
}
