package folioRepo

import (
	"context"
	"errors"

	"hotelops/models"
)

// ErrNotFound is returned when the requested booking does not exist.
var ErrNotFound = errors.New("folio document not found")

// ErrStatusConflict is returned when a booking is not in a state that allows
// the requested transition.
var ErrStatusConflict = errors.New("booking status does not allow this change")

// FolioRepository reads and writes the documents that make up a guest folio.
type FolioRepository interface {
	// GetBooking retrieves a booking by its ID.
	GetBooking(ctx context.Context, bookingID string) (*models.Booking, error)
	// ListFoodOrders returns food orders charged to the booking, oldest first.
	ListFoodOrders(ctx context.Context, bookingID string) ([]models.FoodOrder, error)
	// ListGuestServices returns guest services charged to the booking, oldest first.
	ListGuestServices(ctx context.Context, bookingID string) ([]models.GuestService, error)
	// ListTransactions returns ledger lines for the booking in ledger order.
	ListTransactions(ctx context.Context, bookingID string) ([]models.Transaction, error)

	InsertTransaction(ctx context.Context, tx *models.Transaction) error
	InsertFoodOrder(ctx context.Context, order *models.FoodOrder) error
	InsertGuestService(ctx context.Context, svc *models.GuestService) error
	// RecordPayment inserts a payment line and adds it to the booking's
	// cumulative payments atomically.
	RecordPayment(ctx context.Context, tx *models.Transaction) error
	// CheckOutBooking closes an open booking exactly once.
	CheckOutBooking(ctx context.Context, bookingID string) error
	SetStatementID(ctx context.Context, bookingID, publicID string) error
}
