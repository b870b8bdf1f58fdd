package recordsRepo

import (
	"context"

	"hotelops/database"
	"hotelops/models"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// FolioRecordRepository archives closed folios.
type FolioRecordRepository interface {
	Create(ctx context.Context, record models.FolioRecord) (string, error)
	GetByBookingID(ctx context.Context, bookingID string) ([]models.FolioRecord, error)
}

type mongoRecordRepo struct {
	coll *mongo.Collection
}

// NewMongoRecordRepo returns a new FolioRecordRepository instance using MongoDB.
func NewMongoRecordRepo(logger *zap.Logger) FolioRecordRepository {
	r := &mongoRecordRepo{
		coll: database.Database().Collection("folio_records"),
	}
	if err := r.ensureIndexes(); err != nil {
		logger.Warn("failed to create folio record indexes", zap.Error(err))
	}
	return r
}
