package folio

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	folioRepo "hotelops/database/repository/folio"
	"hotelops/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PostTransaction records a manual ledger line. Payments also raise the
// booking's cumulative paid amount.
func (s *DefaultFolioService) PostTransaction(ctx context.Context, bookingID string, in TransactionInput, actor string) (*models.Transaction, error) {
	if !models.ValidTransactionType(in.Type) {
		return nil, newValidationError("type", "must be one of charge, payment, allowance")
	}
	if in.Amount <= 0 {
		return nil, newValidationError("amount", "must be greater than zero")
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, newValidationError("description", "is required")
	}
	if _, err := s.openBooking(ctx, bookingID); err != nil {
		return nil, err
	}

	tx := &models.Transaction{
		ID:          uuid.New().String(),
		BookingID:   bookingID,
		Type:        in.Type,
		Amount:      in.Amount,
		Description: strings.TrimSpace(in.Description),
		Reference:   strings.TrimSpace(in.Reference),
		Category:    in.Category,
		Date:        time.Now(),
		CreatedBy:   actor,
	}
	if tx.Type == models.TransactionPayment && tx.Category == "" {
		tx.Category = models.CategoryPayment
	}
	if tx.Type == models.TransactionPayment {
		if err := s.Repo.RecordPayment(ctx, tx); err != nil {
			if errors.Is(err, folioRepo.ErrNotFound) {
				return nil, ErrBookingNotFound
			}
			return nil, fmt.Errorf("record payment: %w", err)
		}
		return tx, nil
	}
	if err := s.Repo.InsertTransaction(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}

// AddFoodOrder stores a food order and its mirrored ledger charge. The two are
// linked both ways so the charge is only ever counted once.
func (s *DefaultFolioService) AddFoodOrder(ctx context.Context, bookingID string, in FoodOrderInput, actor string) (*models.FoodOrder, error) {
	total := in.TotalAmount
	if total == 0 {
		for _, item := range in.Items {
			total += item.Price * models.Amount(item.Quantity)
		}
	}
	if total <= 0 {
		return nil, newValidationError("totalAmount", "must be greater than zero")
	}
	if _, err := s.openBooking(ctx, bookingID); err != nil {
		return nil, err
	}

	now := time.Now()
	order := &models.FoodOrder{
		ID:          uuid.New().String(),
		BookingID:   bookingID,
		OrderNumber: strings.TrimSpace(in.OrderNumber),
		Items:       in.Items,
		TotalAmount: total,
		Status:      "charged",
		CreatedAt:   now,
	}
	if order.OrderNumber == "" {
		order.OrderNumber = strings.ToUpper(strings.ReplaceAll(order.ID, "-", "")[:8])
	}
	tx := &models.Transaction{
		ID:          uuid.New().String(),
		BookingID:   bookingID,
		Type:        models.TransactionCharge,
		Amount:      total,
		Description: "Food Order: #" + order.OrderNumber,
		Reference:   OrderReferencePrefix + order.OrderNumber,
		Category:    models.CategoryFood,
		SourceID:    order.ID,
		Date:        now,
		CreatedBy:   actor,
	}
	order.TransactionID = tx.ID

	if err := s.Repo.InsertFoodOrder(ctx, order); err != nil {
		return nil, err
	}
	if err := s.Repo.InsertTransaction(ctx, tx); err != nil {
		// The order alone is still billed through foodTotal.
		s.Logger.Error("failed to mirror food order into ledger",
			zap.String("bookingId", bookingID), zap.String("orderId", order.ID), zap.Error(err))
	}
	return order, nil
}

// AddGuestService stores a guest service and its mirrored ledger charge.
func (s *DefaultFolioService) AddGuestService(ctx context.Context, bookingID string, in GuestServiceInput, actor string) (*models.GuestService, error) {
	if strings.TrimSpace(in.ServiceType) == "" {
		return nil, newValidationError("serviceType", "is required")
	}
	if in.TotalAmount <= 0 {
		return nil, newValidationError("totalAmount", "must be greater than zero")
	}
	if _, err := s.openBooking(ctx, bookingID); err != nil {
		return nil, err
	}

	now := time.Now()
	total := in.TotalAmount
	svc := &models.GuestService{
		ID:          uuid.New().String(),
		BookingID:   bookingID,
		ServiceType: strings.TrimSpace(in.ServiceType),
		Description: strings.TrimSpace(in.Description),
		TotalAmount: &total,
		Status:      "charged",
		CreatedAt:   now,
	}
	label := svc.Description
	if label == "" {
		label = serviceLabel(svc.ServiceType)
	}
	tx := &models.Transaction{
		ID:          uuid.New().String(),
		BookingID:   bookingID,
		Type:        models.TransactionCharge,
		Amount:      total,
		Description: serviceChargePrefix + " " + label,
		Reference:   ServiceReferencePrefix + ServiceReferenceSuffix(svc.ID),
		Category:    models.CategoryGuestService,
		SourceID:    svc.ID,
		Date:        now,
		CreatedBy:   actor,
	}
	svc.TransactionID = tx.ID

	if err := s.Repo.InsertGuestService(ctx, svc); err != nil {
		return nil, err
	}
	if err := s.Repo.InsertTransaction(ctx, tx); err != nil {
		s.Logger.Error("failed to mirror guest service into ledger",
			zap.String("bookingId", bookingID), zap.String("serviceId", svc.ID), zap.Error(err))
	}
	return svc, nil
}

// openBooking loads a booking that can still take charges and payments.
func (s *DefaultFolioService) openBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	booking, err := s.Repo.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if booking.Status == models.BookingCancelled {
		return nil, ErrBookingCancelled
	}
	return booking, nil
}

func serviceLabel(serviceType string) string {
	words := strings.Fields(strings.ReplaceAll(serviceType, "_", " "))
	for i, w := range words {
		_, size := utf8.DecodeRuneInString(w)
		words[i] = strings.ToUpper(w[:size]) + w[size:]
	}
	return strings.Join(words, " ")
}
