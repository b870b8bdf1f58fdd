package models

// Notification types sent to guests.
const (
	NotificationCheckout       = "folio_checkout"
	NotificationStatementReady = "folio_statement_ready"
)
