package folioRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotelops/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// paidAmountAdd adds amount to paidAmount, reading legacy string or null
// values as zero instead of failing like $inc would.
func paidAmountAdd(amount models.Amount) mongo.Pipeline {
	return mongo.Pipeline{
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "paidAmount", Value: bson.D{{Key: "$add", Value: bson.A{
				bson.D{{Key: "$convert", Value: bson.D{
					{Key: "input", Value: "$paidAmount"},
					{Key: "to", Value: "double"},
					{Key: "onError", Value: 0},
					{Key: "onNull", Value: 0},
				}}},
				float64(amount),
			}}}},
			{Key: "updatedAt", Value: "$$NOW"},
		}}},
	}
}

// RecordPayment writes a payment ledger line and raises the booking's paid
// amount in one transaction. Either both land or neither does.
func (r *MongoFolioRepo) RecordPayment(ctx context.Context, tx *models.Transaction) error {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	if tx.ID == "" {
		tx.ID = uuid.New().String()
	}
	if tx.Date.IsZero() {
		tx.Date = time.Now()
	}

	client := r.bookingColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		if _, err := r.transactionColl.InsertOne(sc, tx); err != nil {
			return fmt.Errorf("insert payment failed: %w", err)
		}
		res, err := r.bookingColl.UpdateOne(sc, bson.M{"id": tx.BookingID}, paidAmountAdd(tx.Amount))
		if err != nil {
			return fmt.Errorf("update paid amount failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return ErrNotFound
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		return fmt.Errorf("payment transaction failed: %w", err)
	}
	return nil
}

// CheckOutBooking moves an open booking to checked_out. The status filter makes
// the transition happen at most once; a booking that is already closed
// returns ErrStatusConflict.
func (r *MongoFolioRepo) CheckOutBooking(ctx context.Context, bookingID string) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"id":     bookingID,
		"status": bson.M{"$nin": bson.A{models.BookingCheckedOut, models.BookingCancelled}},
	}
	res, err := r.bookingColl.UpdateOne(ctx, filter, bson.M{
		"$set": bson.M{"status": models.BookingCheckedOut, "updatedAt": time.Now()},
	})
	if err != nil {
		return fmt.Errorf("error checking out booking %s: %w", bookingID, err)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	n, err := r.bookingColl.CountDocuments(ctx, bson.M{"id": bookingID})
	if err != nil {
		return fmt.Errorf("error checking out booking %s: %w", bookingID, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return ErrStatusConflict
}
