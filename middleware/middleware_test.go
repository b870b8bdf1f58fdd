package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hotelops/config"
	"hotelops/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers = append(handlers, func(c *gin.Context) {
		c.String(http.StatusOK, StaffID(c))
	})
	r.GET("/", handlers...)
	return r
}

func doGet(r *gin.Engine, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func bearer(t *testing.T, caps ...string) http.Header {
	t.Helper()
	token, err := utils.GenerateStaffToken("staff-7", caps, time.Hour)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return http.Header{"Authorization": []string{"Bearer " + token}}
}

func TestStaffAuthAndCapability(t *testing.T) {
	config.AppConfig.JWTSecret = "middleware-secret"
	defer func() { config.AppConfig.JWTSecret = "" }()

	r := newRouter(JWTAuthStaffMiddleware(), RequireCapability(CapFolioRead))

	tests := []struct {
		name   string
		header http.Header
		status int
	}{
		{"no header", http.Header{}, http.StatusUnauthorized},
		{"not bearer", http.Header{"Authorization": []string{"Basic abc"}}, http.StatusUnauthorized},
		{"garbage token", http.Header{"Authorization": []string{"Bearer abc.def.ghi"}}, http.StatusUnauthorized},
		{"missing capability", bearer(t, CapKitchenPost), http.StatusForbidden},
		{"granted", bearer(t, CapKitchenPost, CapFolioRead), http.StatusOK},
	}
	for _, tt := range tests {
		w := doGet(r, tt.header)
		if w.Code != tt.status {
			t.Fatalf("%s: expected status %d, got %d", tt.name, tt.status, w.Code)
		}
		if tt.status == http.StatusOK && w.Body.String() != "staff-7" {
			t.Fatalf("%s: expected staff-7 in context, got %s", tt.name, w.Body.String())
		}
	}
}

func TestRateLimit(t *testing.T) {
	r := newRouter(rateLimit(newRateLimiterStore(2)))
	header := http.Header{"X-Forwarded-For": []string{"203.0.113.9, 10.0.0.1"}}

	for i := 0; i < 2; i++ {
		if w := doGet(r, header); w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, w.Code)
		}
	}
	if w := doGet(r, header); w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after burst, got %d", w.Code)
	}
	other := http.Header{"X-Real-IP": []string{"198.51.100.4"}}
	if w := doGet(r, other); w.Code != http.StatusOK {
		t.Fatalf("expected a different client to be allowed, got %d", w.Code)
	}
}

func TestRequestLoggerSetsRequestID(t *testing.T) {
	r := newRouter(RequestLogger(zap.NewNop()))

	w := doGet(r, http.Header{})
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected a generated request id")
	}
	w = doGet(r, http.Header{"X-Request-Id": []string{"req-42"}})
	if got := w.Header().Get("X-Request-ID"); got != "req-42" {
		t.Fatalf("expected request id to be echoed, got %s", got)
	}
}
