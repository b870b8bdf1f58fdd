package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"hotelops/services/folio"
	"hotelops/services/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const statementLinkTTL = 15 * time.Minute

// StatementLocator finds the stored statement of a booking.
type StatementLocator interface {
	StatementID(ctx context.Context, bookingID string) (string, error)
}

// StorageHandler hands out links to stored statements.
type StorageHandler struct {
	StorageSvc storage.StorageService
	Statements StatementLocator
}

// NewStorageHandler creates a new StorageHandler instance.
func NewStorageHandler(svc storage.StorageService, statements StatementLocator) *StorageHandler {
	return &StorageHandler{StorageSvc: svc, Statements: statements}
}

// StatementLinkHandler returns a short-lived signed URL for the booking's
// delivered statement.
func (h *StorageHandler) StatementLinkHandler(c *gin.Context) {
	bookingID := c.Param("bookingID")
	publicID, err := h.Statements.StatementID(c.Request.Context(), bookingID)
	switch {
	case errors.Is(err, folio.ErrBookingNotFound), errors.Is(err, folio.ErrNoStatement):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	case err != nil:
		getLogger(c).Error("failed to look up statement", zap.String("bookingId", bookingID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	url, err := h.StorageSvc.GetSecureDownloadURL(c.Request.Context(), publicID, statementLinkTTL)
	if err != nil {
		getLogger(c).Error("failed to sign statement url", zap.String("bookingId", bookingID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to construct download URL"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"url":       url,
		"expiresAt": time.Now().Add(statementLinkTTL).UTC().Format(time.RFC3339),
	})
}
