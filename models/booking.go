package models

import "time"

// Booking statuses. Cancelled bookings are soft-marked and never removed.
const (
	BookingConfirmed  = "confirmed"
	BookingCheckedIn  = "checked_in"
	BookingCheckedOut = "checked_out"
	BookingCancelled  = "cancelled"
)

// Booking is a guest reservation and the anchor of its folio.
type Booking struct {
	ID          string       `bson:"id" json:"id"`
	GuestID     string       `bson:"guestId" json:"guestId"`
	GuestName   string       `bson:"guestName" json:"guestName"`
	GuestEmail  string       `bson:"guestEmail,omitempty" json:"guestEmail,omitempty"`
	DeviceToken string       `bson:"deviceToken,omitempty" json:"-"`
	CheckIn     time.Time    `bson:"checkIn" json:"checkIn"`
	CheckOut    time.Time    `bson:"checkOut" json:"checkOut"`
	Rooms       []BookedRoom `bson:"rooms" json:"rooms"`
	AddOns      []AddOn      `bson:"addOns,omitempty" json:"addOns,omitempty"`
	Discount    *Discount    `bson:"discount,omitempty" json:"discount,omitempty"`
	PaidAmount  Amount       `bson:"paidAmount" json:"paidAmount"`
	Currency    string       `bson:"currency,omitempty" json:"currency,omitempty"`
	Status      string       `bson:"status" json:"status"`
	StatementID string       `bson:"statementId,omitempty" json:"statementId,omitempty"`
	CreatedAt   time.Time    `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time    `bson:"updatedAt" json:"updatedAt"`
}

// BookedRoom is one room selection on a booking.
type BookedRoom struct {
	RoomNumber        string `bson:"roomNumber,omitempty" json:"roomNumber,omitempty"`
	Type              string `bson:"type,omitempty" json:"type,omitempty"`
	AllocatedRoomType string `bson:"allocatedRoomType,omitempty" json:"allocatedRoomType,omitempty"`
	Price             Amount `bson:"price" json:"price"`
	MealPlan          string `bson:"mealPlan,omitempty" json:"mealPlan,omitempty"`
	MealPlanPrice     Amount `bson:"mealPlanPrice" json:"mealPlanPrice"`
}

// AddOn is an extra sold with the booking (airport transfer, late checkout, ...).
type AddOn struct {
	Name     string `bson:"name" json:"name"`
	Price    Amount `bson:"price" json:"price"`
	Quantity Amount `bson:"quantity" json:"quantity"`
}

// Discount is a flat amount taken off the gross total.
type Discount struct {
	Amount Amount `bson:"amount" json:"amount"`
	Reason string `bson:"reason,omitempty" json:"reason,omitempty"`
}
