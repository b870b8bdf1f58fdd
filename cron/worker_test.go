package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"hotelops/models"
	"hotelops/services/folio"
	"hotelops/services/storage"
	"hotelops/services/tasks"

	"github.com/hibiken/asynq"
	"github.com/shopspring/decimal"
)

type stubFolios struct {
	err error
}

func (s *stubFolios) GetFolio(ctx context.Context, bookingID string, asOf time.Time) (*models.Folio, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.Folio{
		Booking:     models.Booking{ID: bookingID, GuestName: "Test Guest", DeviceToken: "tok"},
		Summary:     models.FolioSummary{Nights: 1, GrossTotal: decimal.NewFromInt(100), GrandTotal: decimal.NewFromInt(100), Balance: decimal.NewFromInt(100)},
		GeneratedAt: asOf,
	}, nil
}

type stubRecorder struct {
	ids map[string]string
	err error
}

func (r *stubRecorder) SetStatementID(ctx context.Context, bookingID, publicID string) error {
	if r.err != nil {
		return r.err
	}
	r.ids[bookingID] = publicID
	return nil
}

type stubUploader struct {
	names   []string
	deleted []string
	err     error
}

func (u *stubUploader) DeleteFile(ctx context.Context, publicID string) error {
	u.deleted = append(u.deleted, publicID)
	return nil
}

func (u *stubUploader) UploadBytes(ctx context.Context, name, folder string, data []byte) (*storage.UploadResult, error) {
	if u.err != nil {
		return nil, u.err
	}
	u.names = append(u.names, folder+"/"+name)
	return &storage.UploadResult{PublicID: folder + "/" + name, Bytes: len(data)}, nil
}

type stubNotifier struct {
	bookings []string
}

func (n *stubNotifier) NotifyStatementReady(ctx context.Context, booking models.Booking) error {
	n.bookings = append(n.bookings, booking.ID)
	return nil
}

func statementTask(t *testing.T, bookingID string) *asynq.Task {
	t.Helper()
	task, _, err := tasks.NewStatementTask(models.StatementPayload{BookingID: bookingID})
	if err != nil {
		t.Fatalf("failed to build task: %v", err)
	}
	return task
}

func TestProcessStatementTask(t *testing.T) {
	rec := &stubRecorder{ids: map[string]string{}}
	up := &stubUploader{}
	notif := &stubNotifier{}
	proc := NewStatementProcessor(&stubFolios{}, rec, up, notif, nil)

	if err := proc.ProcessTask(context.Background(), statementTask(t, "bk-1")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "statements/folio-bk-1.xlsx"
	if rec.ids["bk-1"] != want {
		t.Fatalf("expected recorded id %s, got %s", want, rec.ids["bk-1"])
	}
	if len(notif.bookings) != 1 || notif.bookings[0] != "bk-1" {
		t.Fatalf("expected statement ready push, got %v", notif.bookings)
	}
}

func TestProcessStatementTaskSkipsRetry(t *testing.T) {
	rec := &stubRecorder{ids: map[string]string{}}
	proc := NewStatementProcessor(&stubFolios{err: folio.ErrBookingNotFound}, rec, &stubUploader{}, nil, nil)

	err := proc.ProcessTask(context.Background(), statementTask(t, "bk-404"))
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("expected SkipRetry for unknown booking, got %v", err)
	}

	err = proc.ProcessTask(context.Background(), asynq.NewTask(tasks.TypeFolioStatement, []byte("{")))
	if !errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("expected SkipRetry for bad payload, got %v", err)
	}
}

func TestProcessStatementTaskRetriesUploadFailure(t *testing.T) {
	rec := &stubRecorder{ids: map[string]string{}}
	boom := errors.New("cloudinary unavailable")
	proc := NewStatementProcessor(&stubFolios{}, rec, &stubUploader{err: boom}, nil, nil)

	err := proc.ProcessTask(context.Background(), statementTask(t, "bk-1"))
	if !errors.Is(err, boom) || errors.Is(err, asynq.SkipRetry) {
		t.Fatalf("expected retryable upload error, got %v", err)
	}
	if len(rec.ids) != 0 {
		t.Fatalf("expected no statement recorded")
	}
}

func TestProcessStatementTaskRemovesOrphanedUpload(t *testing.T) {
	boom := errors.New("mongo write failed")
	rec := &stubRecorder{ids: map[string]string{}, err: boom}
	up := &stubUploader{}
	proc := NewStatementProcessor(&stubFolios{}, rec, up, nil, nil)

	err := proc.ProcessTask(context.Background(), statementTask(t, "bk-1"))
	if !errors.Is(err, boom) {
		t.Fatalf("expected recorder error, got %v", err)
	}
	if len(up.deleted) != 1 || up.deleted[0] != "statements/folio-bk-1.xlsx" {
		t.Fatalf("expected orphaned upload to be removed, got %v", up.deleted)
	}
}
