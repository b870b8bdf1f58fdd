package folioRepo

import (
	"context"
	"time"

	"hotelops/database"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// MongoFolioRepo implements FolioRepository using MongoDB.
type MongoFolioRepo struct {
	bookingColl      *mongo.Collection
	foodOrderColl    *mongo.Collection
	guestServiceColl *mongo.Collection
	transactionColl  *mongo.Collection
}

// NewMongoFolioRepo constructs a repository over the application database.
func NewMongoFolioRepo(logger *zap.Logger) FolioRepository {
	db := database.Database()
	repo := &MongoFolioRepo{
		bookingColl:      db.Collection("bookings"),
		foodOrderColl:    db.Collection("food_orders"),
		guestServiceColl: db.Collection("guest_services"),
		transactionColl:  db.Collection("transactions"),
	}
	if err := repo.ensureIndexes(); err != nil {
		logger.Warn("failed to create folio indexes", zap.Error(err))
	}
	return repo
}

// newContext bounds a repository call when the caller did not set a deadline.
func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, timeout)
}
