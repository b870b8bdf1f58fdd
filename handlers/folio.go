package handlers

import (
	"errors"
	"net/http"
	"time"

	"hotelops/middleware"
	"hotelops/services/cashier"
	"hotelops/services/folio"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// FolioHandler serves the guest folio endpoints.
type FolioHandler struct {
	Folios         folio.FolioService
	Cashier        cashier.CashierService
	Idempotency    cashier.IdempotencyStore
	IdempotencyTTL time.Duration
}

func NewFolioHandler(folios folio.FolioService, cashierSvc cashier.CashierService, idem cashier.IdempotencyStore, idemTTL time.Duration) *FolioHandler {
	if idemTTL <= 0 {
		idemTTL = 24 * time.Hour
	}
	return &FolioHandler{
		Folios:         folios,
		Cashier:        cashierSvc,
		Idempotency:    idem,
		IdempotencyTTL: idemTTL,
	}
}

// asOf reads the optional ?asOf=RFC3339 query parameter.
func asOf(c *gin.Context) (time.Time, bool) {
	raw := c.Query("asOf")
	if raw == "" {
		return time.Now(), true
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "asOf must be an RFC3339 timestamp"})
		return time.Time{}, false
	}
	return t, true
}

// GetFolioHandler returns the computed folio of a booking.
func (h *FolioHandler) GetFolioHandler(c *gin.Context) {
	at, ok := asOf(c)
	if !ok {
		return
	}
	f, err := h.Folios.GetFolio(c.Request.Context(), c.Param("bookingID"), at)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, f)
}

// DownloadStatementHandler streams the folio statement as an xlsx workbook.
func (h *FolioHandler) DownloadStatementHandler(c *gin.Context) {
	at, ok := asOf(c)
	if !ok {
		return
	}
	bookingID := c.Param("bookingID")
	f, err := h.Folios.GetFolio(c.Request.Context(), bookingID, at)
	if err != nil {
		h.writeError(c, err)
		return
	}
	data, err := folio.ExportStatement(f)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+folio.StatementFileName(bookingID)+`"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}

// RequestStatementHandler queues delivery of the statement to the guest.
func (h *FolioHandler) RequestStatementHandler(c *gin.Context) {
	bookingID := c.Param("bookingID")
	if err := h.Folios.RequestStatement(c.Request.Context(), bookingID, middleware.StaffID(c)); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"message": "statement queued", "bookingId": bookingID})
}

// PostTransactionHandler records a manual ledger line. A repeated
// Idempotency-Key is rejected with 409.
func (h *FolioHandler) PostTransactionHandler(c *gin.Context) {
	var input folio.TransactionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	ctx := c.Request.Context()
	bookingID := c.Param("bookingID")
	key := c.GetHeader("Idempotency-Key")
	if key != "" {
		key = bookingID + ":" + key
	}

	var created interface{}
	err := cashier.Idempotent(ctx, h.Idempotency, key, h.IdempotencyTTL, func() error {
		tx, err := h.Folios.PostTransaction(ctx, bookingID, input, middleware.StaffID(c))
		created = tx
		return err
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// AddFoodOrderHandler charges a kitchen or bar order to the room.
func (h *FolioHandler) AddFoodOrderHandler(c *gin.Context) {
	var input folio.FoodOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	order, err := h.Folios.AddFoodOrder(c.Request.Context(), c.Param("bookingID"), input, middleware.StaffID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

// AddGuestServiceHandler charges a guest service to the room.
func (h *FolioHandler) AddGuestServiceHandler(c *gin.Context) {
	var input folio.GuestServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	svc, err := h.Folios.AddGuestService(c.Request.Context(), c.Param("bookingID"), input, middleware.StaffID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, svc)
}

// CreatePaymentIntentHandler starts a card collection for the open balance.
func (h *FolioHandler) CreatePaymentIntentHandler(c *gin.Context) {
	intent, err := h.Cashier.CreatePaymentIntent(c.Request.Context(), c.Param("bookingID"), middleware.StaffID(c))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, intent)
}

// CheckoutHandler closes the folio. {"force": true} overrides an open balance.
func (h *FolioHandler) CheckoutHandler(c *gin.Context) {
	var input struct {
		Force bool `json:"force"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
			return
		}
	}
	f, err := h.Folios.Checkout(c.Request.Context(), c.Param("bookingID"), input.Force, time.Now())
	if err != nil {
		h.writeError(c, err)
		return
	}
	if input.Force && f.Summary.Balance.IsPositive() {
		getLogger(c).Warn("checkout forced with open balance",
			zap.String("bookingId", f.Booking.ID),
			zap.String("staffId", middleware.StaffID(c)),
			zap.String("balance", f.Summary.Balance.StringFixed(2)))
	}
	c.JSON(http.StatusOK, f)
}

// CheckoutHistoryHandler lists the archived checkouts of a booking.
func (h *FolioHandler) CheckoutHistoryHandler(c *gin.Context) {
	records, err := h.Folios.CheckoutHistory(c.Request.Context(), c.Param("bookingID"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": records})
}

func (h *FolioHandler) writeError(c *gin.Context, err error) {
	var verr *folio.ValidationError
	var balErr *folio.OutstandingBalanceError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error(), "field": verr.Field})
	case errors.As(err, &balErr):
		c.JSON(http.StatusConflict, gin.H{"error": balErr.Error(), "balance": balErr.Balance})
	case errors.Is(err, folio.ErrBookingNotFound), errors.Is(err, folio.ErrNoStatement):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, folio.ErrBookingCancelled),
		errors.Is(err, folio.ErrAlreadyCheckedOut),
		errors.Is(err, cashier.ErrNothingDue),
		errors.Is(err, cashier.ErrDuplicateRequest):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		getLogger(c).Error("folio request failed",
			zap.String("path", c.FullPath()),
			zap.String("bookingId", c.Param("bookingID")),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
