package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// FolioSummary is the financial roll-up of a folio.
type FolioSummary struct {
	Nights         int             `json:"nights"`
	RoomTotal      decimal.Decimal `json:"roomTotal"`
	MealPlanTotal  decimal.Decimal `json:"mealPlanTotal"`
	FoodTotal      decimal.Decimal `json:"foodTotal"`
	ServiceTotal   decimal.Decimal `json:"serviceTotal"`
	AddOnsTotal    decimal.Decimal `json:"addOnsTotal"`
	OtherCharges   decimal.Decimal `json:"otherCharges"`
	GrossTotal     decimal.Decimal `json:"grossTotal"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	GrandTotal     decimal.Decimal `json:"grandTotal"`
	PaidAmount     decimal.Decimal `json:"paidAmount"`
	Balance        decimal.Decimal `json:"balance"`
}

// Folio is a computed view of one booking's account: the raw line items the
// summary was built from plus the summary itself.
type Folio struct {
	Booking            Booking        `json:"booking"`
	FoodOrders         []FoodOrder    `json:"foodOrders"`
	GuestServices      []GuestService `json:"guestServices"`
	Transactions       []Transaction  `json:"transactions"`
	UniqueTransactions []Transaction  `json:"uniqueTransactions"`
	Summary            FolioSummary   `json:"summary"`
	GeneratedAt        time.Time      `json:"generatedAt"`
}

// StatementPayload is the queued request to build and deliver a folio statement.
type StatementPayload struct {
	BookingID   string `json:"bookingId"`
	RequestedBy string `json:"requestedBy,omitempty"`
}
