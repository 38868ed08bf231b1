// Package storage holds the blob stores that keep product photos and provider
// logos. Entities only ever store the object key; URLs are signed on read.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/Rakhulsr/go-catalog/app/metrics"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

type BlobStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	// Delete removes the object. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	SignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)
}

var (
	ErrInvalidKey       = errors.New("invalid object key")
	ErrExpiredSignature = errors.New("signature expired")
	ErrBadSignature     = errors.New("invalid signature")
)

const (
	PrefixProducts  = "products"
	PrefixProviders = "providers"
)

var allowedImageTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

// NewKey returns a random key under prefix. Nothing from the client file name
// ends up in it.
func NewKey(prefix, extension string) string {
	return prefix + "/" + uuid.New().String() + extension
}

// SniffImage reports the content type and extension of data when it is one of
// the accepted image formats.
func SniffImage(data []byte) (contentType string, extension string, ok bool) {
	mtype := mimetype.Detect(data)
	for _, allowed := range allowedImageTypes {
		if mtype.Is(allowed) {
			return allowed, mtype.Extension(), true
		}
	}
	return "", "", false
}

type instrumented struct {
	next BlobStore
}

// Instrument counts every call on store in the blob operation metric.
func Instrument(store BlobStore) BlobStore {
	return &instrumented{next: store}
}

func (i *instrumented) Put(ctx context.Context, key string, data []byte, contentType string) error {
	err := i.next.Put(ctx, key, data, contentType)
	metrics.RecordBlobOperation("put", err)
	return err
}

func (i *instrumented) Delete(ctx context.Context, key string) error {
	err := i.next.Delete(ctx, key)
	metrics.RecordBlobOperation("delete", err)
	return err
}

func (i *instrumented) SignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	url, err := i.next.SignedURL(ctx, key, expiry)
	metrics.RecordBlobOperation("sign", err)
	return url, err
}
