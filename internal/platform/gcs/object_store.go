package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"github.com/jmvaldez/flashdeck-api/internal/config"
	storepkg "github.com/jmvaldez/flashdeck-api/internal/store"
)

// Per-operation timeouts. Uploads get more room than metadata operations.
const (
	readTimeout   = 30 * time.Second
	writeTimeout  = 2 * time.Minute
	deleteTimeout = 30 * time.Second
	listTimeout   = 30 * time.Second
)

// ObjectStore is the GCS-backed implementation of store.ObjectStore.
type ObjectStore struct {
	log           *slog.Logger
	client        *storage.Client
	bucket        string
	publicBaseURL string
}

// Verify interface compliance at compile time.
var _ storepkg.ObjectStore = (*ObjectStore)(nil)

// New creates an ObjectStore against the configured bucket. Credentials come
// from application default credentials; the client is constructed once at
// startup and reused for the process lifetime.
func New(ctx context.Context, log *slog.Logger, cfg config.StorageConfig) (*ObjectStore, error) {
	if log == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.Bucket == "" {
		return nil, errors.New("storage bucket cannot be empty")
	}

	client, err := storage.NewClient(ctx, option.WithScopes(storage.ScopeReadWrite))
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	serviceLog := log.With(slog.String("component", "gcs_object_store"))
	serviceLog.Info("object store initialized",
		"bucket", cfg.Bucket,
		"public_base_url", cfg.PublicBaseURL)

	return &ObjectStore{
		log:           serviceLog,
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
	}, nil
}

// Close releases the underlying client.
func (s *ObjectStore) Close() error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Close()
}

// Exists reports whether an object is stored under key.
func (s *ObjectStore) Exists(ctx context.Context, key string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	_, err := s.client.Bucket(s.bucket).Object(key).Attrs(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to stat object %q: %w", key, err)
	}
	return true, nil
}

// ListByPrefix returns all objects whose key starts with prefix, with their
// last-modification timestamps.
func (s *ObjectStore) ListByPrefix(ctx context.Context, prefix string) ([]storepkg.ObjectInfo, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	it := s.client.Bucket(s.bucket).Objects(ctx, &storage.Query{Prefix: prefix})
	var out []storepkg.ObjectInfo
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list objects with prefix %q: %w", prefix, err)
		}
		out = append(out, storepkg.ObjectInfo{Key: attrs.Name, Updated: attrs.Updated})
	}
	return out, nil
}

// Get returns the object's content, mapping a missing object to
// store.ErrObjectNotFound.
func (s *ObjectStore) Get(ctx context.Context, key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	r, err := s.client.Bucket(s.bucket).Object(key).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil, fmt.Errorf("%w: %s", storepkg.ErrObjectNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open object %q: %w", key, err)
	}
	defer func() {
		if cerr := r.Close(); cerr != nil {
			s.log.Warn("failed to close object reader", "key", key, "error", cerr)
		}
	}()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read object %q: %w", key, err)
	}
	return data, nil
}

// Put stores content under key, overwriting any existing object.
func (s *ObjectStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	w := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	if contentType != "" {
		w.ContentType = contentType
	}
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return fmt.Errorf("%w: failed to write object %q: %v", storepkg.ErrWriteFailed, key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("%w: failed to close writer for %q: %v", storepkg.ErrWriteFailed, key, err)
	}

	s.log.Debug("object stored", "key", key, "bytes", len(data), "content_type", contentType)
	return nil
}

// Delete removes the object under key, mapping a missing object to
// store.ErrObjectNotFound.
func (s *ObjectStore) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, deleteTimeout)
	defer cancel()

	err := s.client.Bucket(s.bucket).Object(key).Delete(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("%w: %s", storepkg.ErrObjectNotFound, key)
	}
	if err != nil {
		return fmt.Errorf("failed to delete object %q: %w", key, err)
	}

	s.log.Debug("object deleted", "key", key)
	return nil
}

// PublicURL returns the externally resolvable location of the object under
// key: the configured base URL (CDN or emulator) when set, otherwise the
// canonical storage.googleapis.com form.
func (s *ObjectStore) PublicURL(key string) string {
	key = strings.TrimLeft(key, "/")
	if s.publicBaseURL != "" {
		return fmt.Sprintf("%s/%s/%s", s.publicBaseURL, s.bucket, key)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, key)
}
