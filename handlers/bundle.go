package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Folio read endpoints
	GetFolioHandler          gin.HandlerFunc
	DownloadStatementHandler gin.HandlerFunc
	RequestStatementHandler  gin.HandlerFunc
	StatementLinkHandler     gin.HandlerFunc

	// Folio write endpoints
	PostTransactionHandler gin.HandlerFunc
	AddFoodOrderHandler    gin.HandlerFunc
	AddGuestServiceHandler gin.HandlerFunc
	CreatePaymentIntent    gin.HandlerFunc
	CheckoutHandler        gin.HandlerFunc
	CheckoutHistoryHandler gin.HandlerFunc

	// Health endpoint
	HealthHandler gin.HandlerFunc
}

// NewHandlerBundle assembles the bundle from the folio and storage handlers.
func NewHandlerBundle(fh *FolioHandler, sh *StorageHandler) *HandlerBundle {
	return &HandlerBundle{
		GetFolioHandler:          fh.GetFolioHandler,
		DownloadStatementHandler: fh.DownloadStatementHandler,
		RequestStatementHandler:  fh.RequestStatementHandler,
		StatementLinkHandler:     sh.StatementLinkHandler,
		PostTransactionHandler:   fh.PostTransactionHandler,
		AddFoodOrderHandler:      fh.AddFoodOrderHandler,
		AddGuestServiceHandler:   fh.AddGuestServiceHandler,
		CreatePaymentIntent:      fh.CreatePaymentIntentHandler,
		CheckoutHandler:          fh.CheckoutHandler,
		CheckoutHistoryHandler:   fh.CheckoutHistoryHandler,
		HealthHandler:            HealthHandler,
	}
}
