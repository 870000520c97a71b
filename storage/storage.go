package storage

import (
	"io"

	"github.com/vanbenpham/forunime-backend/config"
)

// Provider persists uploaded photos and hands out public URLs for them.
type Provider interface {
	Save(path string, reader io.Reader) (int64, error)
	Delete(path string) error
	URL(path string) string
}

var Default Provider

func Init() {
	if config.S3_BUCKET != "" {
		Default = NewS3Storage()
		return
	}
	Default = NewDiskStorage(config.UPLOAD_DIR)
}
