package models

import "time"

// FolioRecord is the archived summary of a folio as it stood at checkout.
type FolioRecord struct {
	ID             string    `bson:"id" json:"id"`
	BookingID      string    `bson:"bookingId" json:"bookingId"`
	GuestName      string    `bson:"guestName,omitempty" json:"guestName,omitempty"`
	Nights         int       `bson:"nights" json:"nights"`
	GrossTotal     Amount    `bson:"grossTotal" json:"grossTotal"`
	DiscountAmount Amount    `bson:"discountAmount" json:"discountAmount"`
	GrandTotal     Amount    `bson:"grandTotal" json:"grandTotal"`
	PaidAmount     Amount    `bson:"paidAmount" json:"paidAmount"`
	Balance        Amount    `bson:"balance" json:"balance"`
	LedgerLines    int       `bson:"ledgerLines" json:"ledgerLines"`
	UniqueLines    int       `bson:"uniqueLines" json:"uniqueLines"`
	Forced         bool      `bson:"forced" json:"forced"`
	CheckedOutAt   time.Time `bson:"checkedOutAt" json:"checkedOutAt"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
}

// NewFolioRecord snapshots a folio for the archive.
func NewFolioRecord(f *Folio, forced bool) FolioRecord {
	s := f.Summary
	return FolioRecord{
		BookingID:      f.Booking.ID,
		GuestName:      f.Booking.GuestName,
		Nights:         s.Nights,
		GrossTotal:     AmountFromDecimal(s.GrossTotal),
		DiscountAmount: AmountFromDecimal(s.DiscountAmount),
		GrandTotal:     AmountFromDecimal(s.GrandTotal),
		PaidAmount:     AmountFromDecimal(s.PaidAmount),
		Balance:        AmountFromDecimal(s.Balance),
		LedgerLines:    len(f.Transactions),
		UniqueLines:    len(f.UniqueTransactions),
		Forced:         forced,
		CheckedOutAt:   f.GeneratedAt,
	}
}
