package storage

import (
	"context"
	"errors"
	"path"
)

// ErrNotFound is returned by Retrieve when no archived object has the name
var ErrNotFound = errors.New("archived object not found")

// StorageInterface defines the contract for report archive operations
type StorageInterface interface {
	Store(ctx context.Context, filename string, data []byte) error
	Retrieve(ctx context.Context, filename string) ([]byte, error)
	List(ctx context.Context, prefix string) ([]string, error)
}

// ContentType maps an archived report export to its MIME type
func ContentType(name string) string {
	switch path.Ext(name) {
	case ".json":
		return "application/json"
	case ".pdf":
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}
