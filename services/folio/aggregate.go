package folio

import (
	"math"
	"time"

	"hotelops/models"

	"github.com/shopspring/decimal"
)

const day = 24 * time.Hour

// Nights is the number of billable nights between check-in and check-out,
// rounded up and never less than one. A missing date counts as one night.
func Nights(checkIn, checkOut time.Time) int {
	if checkIn.IsZero() || checkOut.IsZero() {
		return 1
	}
	n := math.Ceil(float64(checkOut.Sub(checkIn)) / float64(day))
	if n < 1 || math.IsNaN(n) {
		return 1
	}
	return int(n)
}

// Aggregate computes the folio summary. uniqueTransactions must already be
// deduplicated. Nothing is mutated and missing amounts count as zero.
func Aggregate(booking models.Booking, foodOrders []models.FoodOrder, guestServices []models.GuestService, uniqueTransactions []models.Transaction) models.FolioSummary {
	nights := Nights(booking.CheckIn, booking.CheckOut)
	n := decimal.NewFromInt(int64(nights))

	// Rates are summed across rooms first, then multiplied by nights.
	rates, mealPlans := decimal.Zero, decimal.Zero
	for _, room := range booking.Rooms {
		rates = rates.Add(room.Price.Decimal())
		mealPlans = mealPlans.Add(room.MealPlanPrice.Decimal())
	}
	roomTotal := rates.Mul(n)
	mealPlanTotal := mealPlans.Mul(n)

	foodTotal := decimal.Zero
	for _, order := range foodOrders {
		foodTotal = foodTotal.Add(order.TotalAmount.Decimal())
	}

	serviceTotal := decimal.Zero
	for _, svc := range guestServices {
		serviceTotal = serviceTotal.Add(NormalizeServiceAmount(svc))
	}

	addOnsTotal := decimal.Zero
	for _, addOn := range booking.AddOns {
		addOnsTotal = addOnsTotal.Add(addOn.Price.Decimal().Mul(addOn.Quantity.Decimal()))
	}

	otherCharges := decimal.Zero
	for _, tx := range uniqueTransactions {
		if tx.IsCharge() {
			otherCharges = otherCharges.Add(tx.Amount.Decimal())
		}
	}

	gross := roomTotal.Add(mealPlanTotal).Add(foodTotal).Add(serviceTotal).Add(addOnsTotal).Add(otherCharges)

	discount := decimal.Zero
	if booking.Discount != nil {
		discount = booking.Discount.Amount.Decimal()
	}
	grand := gross.Sub(discount)
	paid := booking.PaidAmount.Decimal()

	return models.FolioSummary{
		Nights:         nights,
		RoomTotal:      roomTotal,
		MealPlanTotal:  mealPlanTotal,
		FoodTotal:      foodTotal,
		ServiceTotal:   serviceTotal,
		AddOnsTotal:    addOnsTotal,
		OtherCharges:   otherCharges,
		GrossTotal:     gross,
		DiscountAmount: discount,
		GrandTotal:     grand,
		PaidAmount:     paid,
		Balance:        grand.Sub(paid),
	}
}

// Compute runs the pipeline over a snapshot.
func Compute(d *Deduplicator, snap *Snapshot, asOf time.Time) (*models.Folio, DedupResult) {
	res := d.Run(snap.Transactions, snap.FoodOrders, snap.GuestServices)
	return &models.Folio{
		Booking:            snap.Booking,
		FoodOrders:         snap.FoodOrders,
		GuestServices:      snap.GuestServices,
		Transactions:       snap.Transactions,
		UniqueTransactions: res.Unique,
		Summary:            Aggregate(snap.Booking, snap.FoodOrders, snap.GuestServices, res.Unique),
		GeneratedAt:        asOf,
	}, res
}
