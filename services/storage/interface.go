package storage

import (
	"context"

	"github.com/cloudinary/cloudinary-go/v2"
)

// UploadedImage identifies an uploaded asset.
type UploadedImage struct {
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
}

// StorageService defines the interface for tour image storage.
type StorageService interface {
	// UploadImage accepts anything the Cloudinary uploader accepts: a path, URL or io.Reader.
	UploadImage(ctx context.Context, file interface{}, destFolder string) (*UploadedImage, error)
	DeleteFile(ctx context.Context, publicID string) error
	GetDownloadURL(ctx context.Context, publicID string) (string, error)
}

// StorageServiceImpl implements StorageService using Cloudinary.
type StorageServiceImpl struct {
	cld       *cloudinary.Cloudinary
	cloudName string
}
