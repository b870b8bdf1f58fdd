package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hotelops/middleware"
	"hotelops/models"
	"hotelops/services/cashier"
	"hotelops/services/folio"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeFolioService struct {
	folio       *models.Folio
	err         error
	statementID string
	posted      int
	lastAsOf    time.Time
	lastForce   bool
	statements  []string
}

func (f *fakeFolioService) GetFolio(ctx context.Context, bookingID string, asOf time.Time) (*models.Folio, error) {
	f.lastAsOf = asOf
	return f.folio, f.err
}

func (f *fakeFolioService) PostTransaction(ctx context.Context, bookingID string, in folio.TransactionInput, actor string) (*models.Transaction, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.posted++
	return &models.Transaction{ID: "tx-1", BookingID: bookingID, Type: in.Type, Amount: in.Amount, CreatedBy: actor}, nil
}

func (f *fakeFolioService) AddFoodOrder(ctx context.Context, bookingID string, in folio.FoodOrderInput, actor string) (*models.FoodOrder, error) {
	return &models.FoodOrder{ID: "o-1", BookingID: bookingID, TotalAmount: in.TotalAmount}, f.err
}

func (f *fakeFolioService) AddGuestService(ctx context.Context, bookingID string, in folio.GuestServiceInput, actor string) (*models.GuestService, error) {
	return &models.GuestService{ID: "s-1", BookingID: bookingID, ServiceType: in.ServiceType}, f.err
}

func (f *fakeFolioService) Checkout(ctx context.Context, bookingID string, force bool, asOf time.Time) (*models.Folio, error) {
	f.lastForce = force
	return f.folio, f.err
}

func (f *fakeFolioService) RequestStatement(ctx context.Context, bookingID, actor string) error {
	f.statements = append(f.statements, bookingID+":"+actor)
	return f.err
}

func (f *fakeFolioService) CheckoutHistory(ctx context.Context, bookingID string) ([]models.FolioRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []models.FolioRecord{{ID: "rec-1", BookingID: bookingID, Balance: 50}}, nil
}

func (f *fakeFolioService) StatementID(ctx context.Context, bookingID string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if f.statementID == "" {
		return "", folio.ErrNoStatement
	}
	return f.statementID, nil
}

type fakeCashier struct {
	err error
}

func (c *fakeCashier) CreatePaymentIntent(ctx context.Context, bookingID, actor string) (*models.PaymentIntent, error) {
	if c.err != nil {
		return nil, c.err
	}
	return &models.PaymentIntent{ID: "pi_1", BookingID: bookingID, AmountMinor: 5000}, nil
}

type memoryIdempotency struct {
	keys map[string]bool
}

func (m *memoryIdempotency) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	if m.keys[key] {
		return false, nil
	}
	m.keys[key] = true
	return true, nil
}

func (m *memoryIdempotency) Release(ctx context.Context, key string) error {
	delete(m.keys, key)
	return nil
}

func sampleFolio() *models.Folio {
	return &models.Folio{
		Booking: models.Booking{ID: "bk-1", GuestName: "Test Guest", Status: models.BookingCheckedOut},
		Summary: models.FolioSummary{
			Nights:     2,
			RoomTotal:  decimal.NewFromInt(200),
			GrossTotal: decimal.NewFromInt(200),
			GrandTotal: decimal.NewFromInt(200),
			PaidAmount: decimal.NewFromInt(150),
			Balance:    decimal.NewFromInt(50),
		},
	}
}

func newTestRouter(fs *fakeFolioService, cs *fakeCashier) *gin.Engine {
	h := NewFolioHandler(fs, cs, &memoryIdempotency{keys: map[string]bool{}}, time.Hour)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("logger", zap.NewNop())
		c.Set(middleware.StaffIDKey, "staff-1")
		c.Next()
	})
	r.GET("/folios/:bookingID", h.GetFolioHandler)
	r.GET("/folios/:bookingID/statement", h.DownloadStatementHandler)
	r.POST("/folios/:bookingID/statement", h.RequestStatementHandler)
	r.POST("/folios/:bookingID/transactions", h.PostTransactionHandler)
	r.POST("/folios/:bookingID/food-orders", h.AddFoodOrderHandler)
	r.POST("/folios/:bookingID/guest-services", h.AddGuestServiceHandler)
	r.POST("/folios/:bookingID/payment-intent", h.CreatePaymentIntentHandler)
	r.POST("/folios/:bookingID/checkout", h.CheckoutHandler)
	r.GET("/folios/:bookingID/checkouts", h.CheckoutHistoryHandler)
	return r
}

func perform(r *gin.Engine, method, path, body string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestGetFolioHandler(t *testing.T) {
	fs := &fakeFolioService{folio: sampleFolio()}
	r := newTestRouter(fs, &fakeCashier{})

	w := perform(r, http.MethodGet, "/folios/bk-1?asOf=2024-01-03T10:00:00Z", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var body struct {
		Summary struct {
			Balance json.Number `json:"balance"`
		} `json:"summary"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if !strings.Contains(string(body.Summary.Balance), "50") {
		t.Fatalf("expected balance 50, got %s", body.Summary.Balance)
	}
	if !fs.lastAsOf.Equal(time.Date(2024, 1, 3, 10, 0, 0, 0, time.UTC)) {
		t.Fatalf("expected asOf to be passed through, got %s", fs.lastAsOf)
	}

	if w := perform(r, http.MethodGet, "/folios/bk-1?asOf=yesterday", "", nil); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad asOf, got %d", w.Code)
	}
}

func TestFolioHandlerErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		method string
		path   string
		body   string
		status int
	}{
		{"not found", folio.ErrBookingNotFound, http.MethodGet, "/folios/bk-9", "", http.StatusNotFound},
		{"validation", &folio.ValidationError{Field: "amount", Message: "must be greater than zero"}, http.MethodPost, "/folios/bk-1/transactions", `{"type":"charge","amount":0}`, http.StatusBadRequest},
		{"cancelled", folio.ErrBookingCancelled, http.MethodPost, "/folios/bk-1/food-orders", `{"totalAmount":10}`, http.StatusConflict},
		{"balance", &folio.OutstandingBalanceError{Balance: decimal.NewFromInt(50)}, http.MethodPost, "/folios/bk-1/checkout", "", http.StatusConflict},
		{"already checked out", folio.ErrAlreadyCheckedOut, http.MethodPost, "/folios/bk-1/checkout", `{"force":true}`, http.StatusConflict},
		{"internal", errors.New("mongo timeout"), http.MethodPost, "/folios/bk-1/guest-services", `{"serviceType":"spa","totalAmount":10}`, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		r := newTestRouter(&fakeFolioService{err: tt.err}, &fakeCashier{})
		w := perform(r, tt.method, tt.path, tt.body, nil)
		if w.Code != tt.status {
			t.Fatalf("%s: expected %d, got %d: %s", tt.name, tt.status, w.Code, w.Body.String())
		}
	}
}

func TestPostTransactionHandlerIdempotency(t *testing.T) {
	fs := &fakeFolioService{}
	r := newTestRouter(fs, &fakeCashier{})
	body := `{"type":"payment","amount":"50.00","description":"Card at desk"}`
	header := map[string]string{"Idempotency-Key": "abc"}

	if w := perform(r, http.MethodPost, "/folios/bk-1/transactions", body, header); w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if w := perform(r, http.MethodPost, "/folios/bk-1/transactions", body, header); w.Code != http.StatusConflict {
		t.Fatalf("expected 409 on replay, got %d", w.Code)
	}
	if w := perform(r, http.MethodPost, "/folios/bk-2/transactions", body, header); w.Code != http.StatusCreated {
		t.Fatalf("expected key to be scoped per booking, got %d", w.Code)
	}
	if fs.posted != 2 {
		t.Fatalf("expected 2 postings, got %d", fs.posted)
	}
	if w := perform(r, http.MethodPost, "/folios/bk-1/transactions", `{"type":`, nil); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed json, got %d", w.Code)
	}
}

func TestPaymentIntentHandler(t *testing.T) {
	r := newTestRouter(&fakeFolioService{}, &fakeCashier{})
	if w := perform(r, http.MethodPost, "/folios/bk-1/payment-intent", "", nil); w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}

	r = newTestRouter(&fakeFolioService{}, &fakeCashier{err: cashier.ErrNothingDue})
	if w := perform(r, http.MethodPost, "/folios/bk-1/payment-intent", "", nil); w.Code != http.StatusConflict {
		t.Fatalf("expected 409 when nothing is due, got %d", w.Code)
	}
}

func TestCheckoutHandlerForce(t *testing.T) {
	fs := &fakeFolioService{folio: sampleFolio()}
	r := newTestRouter(fs, &fakeCashier{})

	if w := perform(r, http.MethodPost, "/folios/bk-1/checkout", `{"force":true}`, nil); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !fs.lastForce {
		t.Fatalf("expected force to be passed through")
	}
}

func TestStatementHandlers(t *testing.T) {
	fs := &fakeFolioService{folio: sampleFolio()}
	r := newTestRouter(fs, &fakeCashier{})

	w := perform(r, http.MethodGet, "/folios/bk-1/statement", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != xlsxContentType {
		t.Fatalf("expected xlsx content type, got %s", ct)
	}
	if !strings.Contains(w.Header().Get("Content-Disposition"), "folio-bk-1.xlsx") {
		t.Fatalf("expected attachment filename, got %s", w.Header().Get("Content-Disposition"))
	}

	w = perform(r, http.MethodPost, "/folios/bk-1/statement", "", nil)
	if w.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d", w.Code)
	}
	if len(fs.statements) != 1 || fs.statements[0] != "bk-1:staff-1" {
		t.Fatalf("unexpected statement requests %v", fs.statements)
	}
}

func TestCheckoutHistoryHandler(t *testing.T) {
	r := newTestRouter(&fakeFolioService{}, &fakeCashier{})
	w := perform(r, http.MethodGet, "/folios/bk-1/checkouts", "", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "rec-1") {
		t.Fatalf("expected archived record, got %d: %s", w.Code, w.Body.String())
	}

	r = newTestRouter(&fakeFolioService{err: folio.ErrBookingNotFound}, &fakeCashier{})
	if w := perform(r, http.MethodGet, "/folios/bk-9/checkouts", "", nil); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
