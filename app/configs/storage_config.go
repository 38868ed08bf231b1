package configs

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"

	"github.com/Rakhulsr/go-catalog/app/storage"
)

// OpenBlobStore builds the blob store selected by STORAGE_DRIVER. The second
// value is non-nil only for the local driver, whose files the API serves itself.
func OpenBlobStore(ctx context.Context, env ENV) (storage.BlobStore, *storage.LocalStore, error) {
	switch env.StorageDriver {
	case "firebase", "gcs":
		store, err := storage.NewGCSStore(ctx, env.FirebaseBucket, env.FirebaseCredentials)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("✅ Blob store: bucket %s", env.FirebaseBucket)
		return storage.Instrument(store), nil, nil
	case "local":
		key, err := base64.URLEncoding.DecodeString(env.StorageSigningKey)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to decode STORAGE_SIGNING_KEY from Base64: %w", err)
		}
		store, err := storage.NewLocalStore(env.StorageLocalDir, env.AppURL, key)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("✅ Blob store: local dir %s", env.StorageLocalDir)
		return storage.Instrument(store), store, nil
	case "memory":
		log.Println("Warning: using in-memory blob store, uploads are lost on restart")
		return storage.Instrument(storage.NewMemoryStore()), nil, nil
	}
	return nil, nil, fmt.Errorf("unsupported STORAGE_DRIVER %q", env.StorageDriver)
}
