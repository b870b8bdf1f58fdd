package models

// PaymentIntent is a card collection started against a folio balance.
type PaymentIntent struct {
	ID           string `json:"id"`
	BookingID    string `json:"bookingId"`
	ClientSecret string `json:"clientSecret"`
	Amount       Amount `json:"amount"`
	AmountMinor  int64  `json:"amountMinor"`
	Currency     string `json:"currency"`
	Status       string `json:"status"`
}
