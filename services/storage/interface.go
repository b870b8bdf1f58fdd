package storage

import (
	"context"
	"time"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// StorageService stores generated documents such as folio statements.
type StorageService interface {
	UploadBytes(ctx context.Context, name, folder string, data []byte) (*UploadResult, error)
	DeleteFile(ctx context.Context, publicID string) error
	GetSecureDownloadURL(ctx context.Context, publicID string, expires time.Duration) (string, error)
}

// UploadResult identifies a stored object.
type UploadResult struct {
	PublicID string `json:"publicId"`
	Bytes    int    `json:"bytes"`
}

// uploadAPI is the subset of the cloudinary upload API in use.
type uploadAPI interface {
	Upload(ctx context.Context, file interface{}, uploadParams uploader.UploadParams) (*uploader.UploadResult, error)
	Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error)
}
