package folioRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ensureIndexes creates the indexes every folio read relies on.
func (r *MongoFolioRepo) ensureIndexes() error {
	ctx, cancel := newContext(context.Background(), 10*time.Second)
	defer cancel()

	byBooking := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "bookingId", Value: 1}, {Key: "createdAt", Value: 1}}},
	}

	if _, err := r.bookingColl.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("bookings indexes: %w", err)
	}
	if _, err := r.foodOrderColl.Indexes().CreateMany(ctx, byBooking); err != nil {
		return fmt.Errorf("food_orders indexes: %w", err)
	}
	if _, err := r.guestServiceColl.Indexes().CreateMany(ctx, byBooking); err != nil {
		return fmt.Errorf("guest_services indexes: %w", err)
	}
	if _, err := r.transactionColl.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "bookingId", Value: 1}, {Key: "date", Value: 1}}},
	}); err != nil {
		return fmt.Errorf("transactions indexes: %w", err)
	}
	return nil
}
