package folio

import (
	"testing"
	"time"

	"hotelops/models"

	"github.com/shopspring/decimal"
)

func expectDecimal(t *testing.T, field string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Fatalf("%s: expected %s, got %s", field, want, got.String())
	}
}

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func oneRoomBooking() models.Booking {
	return models.Booking{
		ID:         "bk-1",
		CheckIn:    date("2024-01-01"),
		CheckOut:   date("2024-01-03"),
		Rooms:      []models.BookedRoom{{RoomNumber: "101", Type: "standard", Price: 100}},
		PaidAmount: 150,
		Status:     models.BookingCheckedIn,
	}
}

func TestNights(t *testing.T) {
	tests := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		want     int
	}{
		{"two nights", date("2024-01-01"), date("2024-01-03"), 2},
		{"partial day rounds up", date("2024-01-01"), date("2024-01-02").Add(3 * time.Hour), 2},
		{"same day", date("2024-01-01"), date("2024-01-01"), 1},
		{"reversed dates", date("2024-01-05"), date("2024-01-01"), 1},
		{"missing check-out", date("2024-01-01"), time.Time{}, 1},
		{"missing check-in", time.Time{}, date("2024-01-01"), 1},
	}
	for _, tt := range tests {
		if got := Nights(tt.checkIn, tt.checkOut); got != tt.want {
			t.Fatalf("%s: expected %d, got %d", tt.name, tt.want, got)
		}
	}
}

func TestAggregateRoomOnly(t *testing.T) {
	s := Aggregate(oneRoomBooking(), nil, nil, nil)

	if s.Nights != 2 {
		t.Fatalf("expected 2 nights, got %d", s.Nights)
	}
	expectDecimal(t, "roomTotal", s.RoomTotal, "200")
	expectDecimal(t, "grossTotal", s.GrossTotal, "200")
	expectDecimal(t, "discountAmount", s.DiscountAmount, "0")
	expectDecimal(t, "grandTotal", s.GrandTotal, "200")
	expectDecimal(t, "balance", s.Balance, "50")
}

func TestComputeDropsMirroredServiceCharge(t *testing.T) {
	tests := []struct {
		name    string
		service models.GuestService
		tx      models.Transaction
	}{
		{
			name:    "linked by transaction id",
			service: models.GuestService{ID: "svc123456", ServiceType: "laundry", TotalAmount: amountPtr(30), TransactionID: "svc123456"},
			tx:      models.Transaction{ID: "svc123456", Type: models.TransactionCharge, Amount: 30, Description: "Service Charge: Laundry"},
		},
		{
			name:    "linked by reference",
			service: models.GuestService{ID: "svc123456", ServiceType: "laundry", TotalAmount: amountPtr(30)},
			tx:      models.Transaction{ID: "svc123456", Type: models.TransactionCharge, Amount: 30, Description: "Service Charge: Laundry", Reference: "SVC-123456"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := &Snapshot{
				Booking:       oneRoomBooking(),
				GuestServices: []models.GuestService{tt.service},
				Transactions:  []models.Transaction{tt.tx},
			}
			f, res := Compute(NewDeduplicator(true), snap, date("2024-01-03"))

			if len(res.Dropped) != 1 {
				t.Fatalf("expected one dropped line, got %d", len(res.Dropped))
			}
			expectDecimal(t, "serviceTotal", f.Summary.ServiceTotal, "30")
			expectDecimal(t, "otherCharges", f.Summary.OtherCharges, "0")
			expectDecimal(t, "grossTotal", f.Summary.GrossTotal, "230")
			expectDecimal(t, "balance", f.Summary.Balance, "80")
			if len(f.Transactions) != 1 || len(f.UniqueTransactions) != 0 {
				t.Fatalf("expected raw ledger kept and unique ledger empty, got %d/%d", len(f.Transactions), len(f.UniqueTransactions))
			}
			if !f.GeneratedAt.Equal(date("2024-01-03")) {
				t.Fatalf("expected generatedAt to be the as-of time, got %s", f.GeneratedAt)
			}
		})
	}
}

func TestComputeKeepsRoomChargeCategory(t *testing.T) {
	snap := &Snapshot{
		Booking: oneRoomBooking(),
		GuestServices: []models.GuestService{
			{ID: "svc-rs-0001", ServiceType: "room_service", Description: "Breakfast in room", TotalAmount: amountPtr(15)},
		},
		Transactions: []models.Transaction{
			{ID: "tx-minibar", Type: models.TransactionCharge, Amount: 20, Description: "Room Charge: Minibar", Category: models.CategoryRoomCharge},
		},
	}
	f, _ := Compute(NewDeduplicator(true), snap, time.Time{})

	expectDecimal(t, "otherCharges", f.Summary.OtherCharges, "20")
	expectDecimal(t, "serviceTotal", f.Summary.ServiceTotal, "15")
	expectDecimal(t, "grossTotal", f.Summary.GrossTotal, "235")
}

func TestAggregateDiscountAndPayments(t *testing.T) {
	b := models.Booking{
		CheckIn:    date("2024-03-10"),
		CheckOut:   date("2024-03-12"),
		Rooms:      []models.BookedRoom{{RoomNumber: "204", Price: 150}},
		Discount:   &models.Discount{Amount: 50, Reason: "loyalty"},
		PaidAmount: 200,
	}
	s := Aggregate(b, nil, nil, nil)

	expectDecimal(t, "grossTotal", s.GrossTotal, "300")
	expectDecimal(t, "discountAmount", s.DiscountAmount, "50")
	expectDecimal(t, "grandTotal", s.GrandTotal, "250")
	expectDecimal(t, "balance", s.Balance, "50")
}

func TestAggregateAllComponents(t *testing.T) {
	b := models.Booking{
		CheckIn:  date("2024-05-01"),
		CheckOut: date("2024-05-04"),
		Rooms: []models.BookedRoom{
			{RoomNumber: "301", Price: 120.5, MealPlan: "BB", MealPlanPrice: 10},
			{RoomNumber: "302", Price: 80, MealPlan: "HB", MealPlanPrice: 25.25},
		},
		AddOns:     []models.AddOn{{Name: "Parking", Price: 5, Quantity: 3}, {Name: "Crib", Price: 12.5, Quantity: 0}},
		PaidAmount: 1000,
	}
	orders := []models.FoodOrder{{ID: "o1", OrderNumber: "11", TotalAmount: 42.1}, {ID: "o2", OrderNumber: "12", TotalAmount: 0.2}}
	services := []models.GuestService{
		{ID: "s1", ServiceType: "laundry", TotalAmount: amountPtr(30)},
		{ID: "s2", ServiceType: "spa", Amount: amountPtr(55.5)},
		{ID: "s3", ServiceType: "wake_up_call"},
	}
	unique := []models.Transaction{
		{ID: "t1", Type: models.TransactionCharge, Amount: 9.9},
		{ID: "t2", Type: models.TransactionPayment, Amount: 500},
		{ID: "t3", Type: models.TransactionAllowance, Amount: 20},
	}
	s := Aggregate(b, orders, services, unique)

	if s.Nights != 3 {
		t.Fatalf("expected 3 nights, got %d", s.Nights)
	}
	expectDecimal(t, "roomTotal", s.RoomTotal, "601.5")
	expectDecimal(t, "mealPlanTotal", s.MealPlanTotal, "105.75")
	expectDecimal(t, "foodTotal", s.FoodTotal, "42.3")
	expectDecimal(t, "serviceTotal", s.ServiceTotal, "85.5")
	expectDecimal(t, "addOnsTotal", s.AddOnsTotal, "15")
	expectDecimal(t, "otherCharges", s.OtherCharges, "9.9")

	sum := s.RoomTotal.Add(s.MealPlanTotal).Add(s.FoodTotal).Add(s.ServiceTotal).Add(s.AddOnsTotal).Add(s.OtherCharges)
	if !sum.Equal(s.GrossTotal) {
		t.Fatalf("expected gross total %s to equal component sum %s", s.GrossTotal, sum)
	}
	expectDecimal(t, "grossTotal", s.GrossTotal, "859.95")
	expectDecimal(t, "balance", s.Balance, "-140.05")
}

func TestNormalizeServiceAmount(t *testing.T) {
	tests := []struct {
		name string
		svc  models.GuestService
		want string
	}{
		{"total amount", models.GuestService{TotalAmount: amountPtr(30), Amount: amountPtr(99)}, "30"},
		{"legacy amount", models.GuestService{Amount: amountPtr(12.75)}, "12.75"},
		{"coerced total wins", models.GuestService{TotalAmount: amountPtr(0), Amount: amountPtr(40)}, "0"},
		{"missing", models.GuestService{}, "0"},
	}
	for _, tt := range tests {
		expectDecimal(t, tt.name, NormalizeServiceAmount(tt.svc), tt.want)
	}
}
