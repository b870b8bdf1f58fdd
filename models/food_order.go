package models

import "time"

// FoodOrder is a kitchen or bar order charged to a room.
type FoodOrder struct {
	ID            string          `bson:"id" json:"id"`
	BookingID     string          `bson:"bookingId" json:"bookingId"`
	OrderNumber   string          `bson:"orderNumber" json:"orderNumber"`
	Items         []FoodOrderItem `bson:"items,omitempty" json:"items,omitempty"`
	TotalAmount   Amount          `bson:"totalAmount" json:"totalAmount"`
	Status        string          `bson:"status,omitempty" json:"status,omitempty"`
	TransactionID string          `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	CreatedAt     time.Time       `bson:"createdAt" json:"createdAt"`
}

type FoodOrderItem struct {
	Name     string `bson:"name" json:"name"`
	Quantity int    `bson:"quantity" json:"quantity"`
	Price    Amount `bson:"price" json:"price"`
}
