package models

import "time"

// Ledger transaction types.
const (
	TransactionCharge    = "charge"
	TransactionPayment   = "payment"
	TransactionAllowance = "allowance"
)

// Ledger categories with special meaning to folio reconciliation.
const (
	CategoryRoomCharge   = "room_charge"
	CategoryFood         = "food_beverage"
	CategoryGuestService = "guest_service"
	CategoryPayment      = "payment"
)

// Transaction is one ledger line on a guest folio.
type Transaction struct {
	ID          string    `bson:"id" json:"id"`
	BookingID   string    `bson:"bookingId" json:"bookingId"`
	Type        string    `bson:"type" json:"type"`
	Amount      Amount    `bson:"amount" json:"amount"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
	Reference   string    `bson:"reference,omitempty" json:"reference,omitempty"`
	Category    string    `bson:"category,omitempty" json:"category,omitempty"`
	SourceID    string    `bson:"sourceId,omitempty" json:"sourceId,omitempty"`
	Date        time.Time `bson:"date" json:"date"`
	CreatedBy   string    `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
}

// IsCharge reports whether the line adds to the amount owed.
func (t Transaction) IsCharge() bool {
	return t.Type == TransactionCharge
}

// ValidTransactionType reports whether typ is one of the ledger types.
func ValidTransactionType(typ string) bool {
	switch typ {
	case TransactionCharge, TransactionPayment, TransactionAllowance:
		return true
	}
	return false
}
