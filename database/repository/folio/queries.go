package folioRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotelops/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetBooking retrieves a booking by its ID.
func (r *MongoFolioRepo) GetBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var booking models.Booking
	if err := r.bookingColl.FindOne(ctx, bson.M{"id": bookingID}).Decode(&booking); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch booking %s: %w", bookingID, err)
	}
	return &booking, nil
}

// ListFoodOrders returns food orders charged to the booking, oldest first.
func (r *MongoFolioRepo) ListFoodOrders(ctx context.Context, bookingID string) ([]models.FoodOrder, error) {
	var orders []models.FoodOrder
	if err := findByBooking(ctx, r.foodOrderColl, bookingID, "createdAt", &orders); err != nil {
		return nil, fmt.Errorf("failed to list food orders for %s: %w", bookingID, err)
	}
	return orders, nil
}

// ListGuestServices returns guest services charged to the booking, oldest first.
func (r *MongoFolioRepo) ListGuestServices(ctx context.Context, bookingID string) ([]models.GuestService, error) {
	var services []models.GuestService
	if err := findByBooking(ctx, r.guestServiceColl, bookingID, "createdAt", &services); err != nil {
		return nil, fmt.Errorf("failed to list guest services for %s: %w", bookingID, err)
	}
	return services, nil
}

// ListTransactions returns ledger lines for the booking in ledger order.
func (r *MongoFolioRepo) ListTransactions(ctx context.Context, bookingID string) ([]models.Transaction, error) {
	var txs []models.Transaction
	if err := findByBooking(ctx, r.transactionColl, bookingID, "date", &txs); err != nil {
		return nil, fmt.Errorf("failed to list transactions for %s: %w", bookingID, err)
	}
	return txs, nil
}

// findByBooking decodes every document of coll belonging to bookingID into out.
func findByBooking(ctx context.Context, coll *mongo.Collection, bookingID, sortField string, out interface{}) error {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: sortField, Value: 1}, {Key: "id", Value: 1}})
	cursor, err := coll.Find(ctx, bson.M{"bookingId": bookingID}, opts)
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)

	return cursor.All(ctx, out)
}
