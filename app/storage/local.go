package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gorilla/securecookie"
)

const signatureName = "blob"

type signedKey struct {
	Key     string `json:"k"`
	Expires int64  `json:"e"`
}

// LocalStore keeps objects on disk and signs URLs served by the API under
// /files/{key}.
type LocalStore struct {
	root    string
	baseURL string
	codec   *securecookie.SecureCookie
}

func NewLocalStore(root, baseURL string, signingKey []byte) (*LocalStore, error) {
	if len(signingKey) == 0 {
		return nil, fmt.Errorf("local storage requires a signing key")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage dir %s: %w", root, err)
	}

	codec := securecookie.New(signingKey, nil)
	codec.SetSerializer(securecookie.JSONEncoder{})
	// Expiry is carried in the payload.
	codec.MaxAge(0)

	return &LocalStore{
		root:    root,
		baseURL: strings.TrimRight(baseURL, "/"),
		codec:   codec,
	}, nil
}

func (s *LocalStore) path(key string) (string, error) {
	clean := path.Clean("/" + key)
	if key == "" || clean == "/" || clean[1:] != key {
		return "", ErrInvalidKey
	}
	return filepath.Join(s.root, filepath.FromSlash(key)), nil
}

func (s *LocalStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("failed to create dir for %s: %w", key, err)
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

func (s *LocalStore) Delete(ctx context.Context, key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (s *LocalStore) SignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	if _, err := s.path(key); err != nil {
		return "", err
	}
	signature, err := s.codec.Encode(signatureName, signedKey{Key: key, Expires: time.Now().Add(expiry).Unix()})
	if err != nil {
		return "", fmt.Errorf("failed to sign %s: %w", key, err)
	}
	return fmt.Sprintf("%s/files/%s?signature=%s", s.baseURL, key, url.QueryEscape(signature)), nil
}

// Verify checks a signature produced by SignedURL for key.
func (s *LocalStore) Verify(key, signature string, now time.Time) error {
	var sk signedKey
	if err := s.codec.Decode(signatureName, signature, &sk); err != nil {
		return ErrBadSignature
	}
	if sk.Key != key {
		return ErrBadSignature
	}
	if now.Unix() >= sk.Expires {
		return ErrExpiredSignature
	}
	return nil
}

// Open returns the object content; os.ErrNotExist when missing.
func (s *LocalStore) Open(key string) ([]byte, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(p)
}
