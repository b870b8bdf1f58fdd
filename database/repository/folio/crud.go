package folioRepo

import (
	"context"
	"fmt"
	"time"

	"hotelops/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// InsertTransaction appends a ledger line. Missing IDs and dates are filled in.
func (r *MongoFolioRepo) InsertTransaction(ctx context.Context, tx *models.Transaction) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	if tx.ID == "" {
		tx.ID = uuid.New().String()
	}
	if tx.Date.IsZero() {
		tx.Date = time.Now()
	}
	if _, err := r.transactionColl.InsertOne(ctx, tx); err != nil {
		return fmt.Errorf("error creating transaction: %w", err)
	}
	return nil
}

// InsertFoodOrder stores a kitchen order.
func (r *MongoFolioRepo) InsertFoodOrder(ctx context.Context, order *models.FoodOrder) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	if _, err := r.foodOrderColl.InsertOne(ctx, order); err != nil {
		return fmt.Errorf("error creating food order: %w", err)
	}
	return nil
}

// InsertGuestService stores a guest service request.
func (r *MongoFolioRepo) InsertGuestService(ctx context.Context, svc *models.GuestService) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	if svc.ID == "" {
		svc.ID = uuid.New().String()
	}
	if svc.CreatedAt.IsZero() {
		svc.CreatedAt = time.Now()
	}
	if _, err := r.guestServiceColl.InsertOne(ctx, svc); err != nil {
		return fmt.Errorf("error creating guest service: %w", err)
	}
	return nil
}

// SetStatementID records the storage ID of the latest folio statement.
func (r *MongoFolioRepo) SetStatementID(ctx context.Context, bookingID, publicID string) error {
	return r.updateBooking(ctx, bookingID, bson.M{
		"$set": bson.M{"statementId": publicID, "updatedAt": time.Now()},
	})
}

func (r *MongoFolioRepo) updateBooking(ctx context.Context, bookingID string, update bson.M) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	res, err := r.bookingColl.UpdateOne(ctx, bson.M{"id": bookingID}, update)
	if err != nil {
		return fmt.Errorf("error updating booking %s: %w", bookingID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
