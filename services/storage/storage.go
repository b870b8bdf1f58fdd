package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/cloudinary/cloudinary-go/v2/config"
	"go.uber.org/zap"
)

// Documents are stored as raw assets, not images.
const resourceType = api.File

// Statements are private: they are only reachable through a signed download link.
const deliveryType = api.Authenticated

var (
	ErrEmptyUpload        = errors.New("refusing to upload empty document")
	ErrMissingCredentials = errors.New("cloudinary api key and secret are required to sign links")
)

// StorageServiceImpl stores documents in Cloudinary.
type StorageServiceImpl struct {
	upload    uploadAPI
	cloud     config.Cloud
	apiPrefix string
	logger    *zap.Logger
	now       func() time.Time
}

// NewStorageService creates a Cloudinary backed StorageService.
func NewStorageService(cld *cloudinary.Cloudinary, logger *zap.Logger) *StorageServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug("initializing cloudinary storage", zap.String("cloudName", cld.Config.Cloud.CloudName))
	return &StorageServiceImpl{
		upload:    &cld.Upload,
		cloud:     cld.Config.Cloud,
		apiPrefix: cld.Config.API.UploadPrefix,
		logger:    logger,
		now:       time.Now,
	}
}

// UploadBytes stores data under folder/name as an authenticated asset,
// replacing any earlier version.
func (s *StorageServiceImpl) UploadBytes(ctx context.Context, name, folder string, data []byte) (*UploadResult, error) {
	if len(data) == 0 {
		return nil, ErrEmptyUpload
	}
	params := uploader.UploadParams{
		PublicID:     name,
		Folder:       folder,
		ResourceType: resourceType,
		Type:         deliveryType,
		Overwrite:    api.Bool(true),
	}
	result, err := s.upload.Upload(ctx, bytes.NewReader(data), params)
	if err != nil {
		return nil, fmt.Errorf("StorageServiceImpl: failed to upload %s: %w", name, err)
	}
	if result.Error.Message != "" {
		return nil, fmt.Errorf("StorageServiceImpl: upload rejected: %s", result.Error.Message)
	}
	if result.PublicID == "" {
		return nil, fmt.Errorf("StorageServiceImpl: no public ID returned")
	}
	s.logger.Info("document uploaded", zap.String("publicId", result.PublicID), zap.Int("bytes", result.Bytes))
	return &UploadResult{PublicID: result.PublicID, Bytes: result.Bytes}, nil
}

// DeleteFile deletes a stored document given its public ID.
func (s *StorageServiceImpl) DeleteFile(ctx context.Context, publicID string) error {
	_, err := s.upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		Type:         deliveryType,
		ResourceType: resourceType,
	})
	if err != nil {
		return fmt.Errorf("StorageServiceImpl: failed to delete file: %w", err)
	}
	return nil
}

// GetSecureDownloadURL builds a private download link for an authenticated
// document that stops working after expires. Parameters are signed with the
// account's API secret the same way upload requests are.
func (s *StorageServiceImpl) GetSecureDownloadURL(ctx context.Context, publicID string, expires time.Duration) (string, error) {
	if publicID == "" {
		return "", errors.New("StorageServiceImpl: public ID is required")
	}
	if s.cloud.APIKey == "" || s.cloud.APISecret == "" {
		return "", ErrMissingCredentials
	}
	now := s.now()
	params := url.Values{}
	params.Set("public_id", publicID)
	params.Set("type", deliveryType)
	params.Set("attachment", "true")
	params.Set("expires_at", strconv.FormatInt(now.Add(expires).Unix(), 10))
	params.Set("timestamp", strconv.FormatInt(now.Unix(), 10))

	signature, err := api.SignParameters(params, s.cloud.APISecret)
	if err != nil {
		return "", fmt.Errorf("StorageServiceImpl: failed to sign download link: %w", err)
	}
	params.Set("signature", signature)
	params.Set("api_key", s.cloud.APIKey)

	return fmt.Sprintf("%s/%s/%s/download?%s", api.BaseURL(s.apiPrefix, ""), s.cloud.CloudName, resourceType, params.Encode()), nil
}
