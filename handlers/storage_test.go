package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"hotelops/services/folio"
	"hotelops/services/storage"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type fakeStorage struct {
	signed []string
}

func (s *fakeStorage) UploadBytes(ctx context.Context, name, folder string, data []byte) (*storage.UploadResult, error) {
	return &storage.UploadResult{PublicID: folder + "/" + name}, nil
}

func (s *fakeStorage) DeleteFile(ctx context.Context, publicID string) error { return nil }

func (s *fakeStorage) GetSecureDownloadURL(ctx context.Context, publicID string, expires time.Duration) (string, error) {
	s.signed = append(s.signed, publicID)
	return "https://api.cloudinary.com/v1_1/demo/raw/download?public_id=" + publicID, nil
}

func TestStatementLinkHandler(t *testing.T) {
	cases := []struct {
		name     string
		folios   *fakeFolioService
		wantCode int
		wantSign bool
	}{
		{"delivered statement", &fakeFolioService{statementID: "statements/folio-bk-1.xlsx"}, http.StatusOK, true},
		{"no statement yet", &fakeFolioService{}, http.StatusNotFound, false},
		{"unknown booking", &fakeFolioService{err: folio.ErrBookingNotFound}, http.StatusNotFound, false},
		{"store failure", &fakeFolioService{err: errors.New("mongo down")}, http.StatusInternalServerError, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			st := &fakeStorage{}
			h := NewStorageHandler(st, tc.folios)
			r := gin.New()
			r.Use(func(c *gin.Context) {
				c.Set("logger", zap.NewNop())
				c.Next()
			})
			r.GET("/folios/:bookingID/statement/link", h.StatementLinkHandler)

			w := perform(r, http.MethodGet, "/folios/bk-1/statement/link", "", nil)
			if w.Code != tc.wantCode {
				t.Fatalf("expected %d, got %d: %s", tc.wantCode, w.Code, w.Body.String())
			}
			if signed := len(st.signed) == 1; signed != tc.wantSign {
				t.Fatalf("expected signing=%v, got %v", tc.wantSign, st.signed)
			}
			if tc.wantSign && !strings.Contains(w.Body.String(), "statements/folio-bk-1.xlsx") {
				t.Fatalf("expected link for the stored statement, got %s", w.Body.String())
			}
		})
	}
}
