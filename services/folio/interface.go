package folio

import (
	"context"
	"time"

	folioRepo "hotelops/database/repository/folio"
	"hotelops/models"

	"go.uber.org/zap"
)

// FolioService is the back-office entry point for guest accounts.
type FolioService interface {
	GetFolio(ctx context.Context, bookingID string, asOf time.Time) (*models.Folio, error)
	PostTransaction(ctx context.Context, bookingID string, in TransactionInput, actor string) (*models.Transaction, error)
	AddFoodOrder(ctx context.Context, bookingID string, in FoodOrderInput, actor string) (*models.FoodOrder, error)
	AddGuestService(ctx context.Context, bookingID string, in GuestServiceInput, actor string) (*models.GuestService, error)
	Checkout(ctx context.Context, bookingID string, force bool, asOf time.Time) (*models.Folio, error)
	RequestStatement(ctx context.Context, bookingID, actor string) error
	CheckoutHistory(ctx context.Context, bookingID string) ([]models.FolioRecord, error)
	StatementID(ctx context.Context, bookingID string) (string, error)
}

// Notifier tells the guest about folio events.
type Notifier interface {
	NotifyCheckout(ctx context.Context, booking models.Booking, summary models.FolioSummary) error
}

// StatementQueue schedules statement generation off the request path.
type StatementQueue interface {
	EnqueueStatement(ctx context.Context, payload models.StatementPayload) error
}

// Archiver keeps a record of every checkout.
type Archiver interface {
	Create(ctx context.Context, record models.FolioRecord) (string, error)
	GetByBookingID(ctx context.Context, bookingID string) ([]models.FolioRecord, error)
}

// DefaultFolioService implements FolioService.
type DefaultFolioService struct {
	Repo       folioRepo.FolioRepository
	Dedup      *Deduplicator
	Notifier   Notifier
	Statements StatementQueue
	Records    Archiver
	Logger     *zap.Logger
}

// NewDefaultFolioService wires the service; legacy toggles the heuristic matchers.
func NewDefaultFolioService(repo folioRepo.FolioRepository, notifier Notifier, statements StatementQueue, legacy bool, logger *zap.Logger) *DefaultFolioService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultFolioService{
		Repo:       repo,
		Dedup:      NewDeduplicator(legacy),
		Notifier:   notifier,
		Statements: statements,
		Logger:     logger,
	}
}

// TransactionInput is a manual ledger entry from the front desk.
type TransactionInput struct {
	Type        string        `json:"type"`
	Amount      models.Amount `json:"amount"`
	Description string        `json:"description"`
	Reference   string        `json:"reference"`
	Category    string        `json:"category"`
}

// FoodOrderInput is a kitchen or bar order charged to the room.
type FoodOrderInput struct {
	OrderNumber string                 `json:"orderNumber"`
	Items       []models.FoodOrderItem `json:"items"`
	TotalAmount models.Amount          `json:"totalAmount"`
}

// GuestServiceInput is a guest service request charged to the room.
type GuestServiceInput struct {
	ServiceType string        `json:"serviceType"`
	Description string        `json:"description"`
	TotalAmount models.Amount `json:"totalAmount"`
}
