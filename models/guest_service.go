package models

import "time"

// GuestService is a non-room service request (laundry, spa, transport, ...).
// Amount is the field name used by older documents; TotalAmount supersedes it.
type GuestService struct {
	ID            string    `bson:"id" json:"id"`
	BookingID     string    `bson:"bookingId" json:"bookingId"`
	ServiceType   string    `bson:"serviceType" json:"serviceType"`
	Description   string    `bson:"description,omitempty" json:"description,omitempty"`
	TotalAmount   *Amount   `bson:"totalAmount,omitempty" json:"totalAmount,omitempty"`
	Amount        *Amount   `bson:"amount,omitempty" json:"amount,omitempty"`
	Status        string    `bson:"status,omitempty" json:"status,omitempty"`
	TransactionID string    `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
}
