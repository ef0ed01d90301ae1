package lake

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
)

// BlobStore is the write side of the curve lake. Put stores a named blob
// and returns the URI the catalog should reference it by.
type BlobStore interface {
	Put(ctx context.Context, name string, data []byte) (string, error)
	Get(ctx context.Context, name string) ([]byte, error)
}

// Open picks a store from a location spec: "gs://bucket/prefix" opens a
// Cloud Storage store, anything else is treated as a local directory.
// An empty spec falls back to ./lake.
func Open(ctx context.Context, spec string) (BlobStore, error) {
	if spec == "" {
		spec = "./lake"
	}
	if strings.HasPrefix(spec, "gs://") {
		rest := strings.TrimPrefix(spec, "gs://")
		bucket, prefix, _ := strings.Cut(rest, "/")
		if bucket == "" {
			return nil, fmt.Errorf("lake location %q has no bucket", spec)
		}
		return NewGCSStore(ctx, bucket, prefix)
	}
	return NewLocalStore(spec)
}

// LocalStore keeps lake blobs in a directory on disk.
type LocalStore struct {
	root string
}

// NewLocalStore creates the directory if needed and returns a store rooted there.
func NewLocalStore(root string) (*LocalStore, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve lake root: %w", err)
	}
	if err := os.MkdirAll(abs, 0755); err != nil {
		return nil, fmt.Errorf("create lake root: %w", err)
	}
	return &LocalStore{root: abs}, nil
}

// Put writes the blob under the store root and returns its absolute path.
func (s *LocalStore) Put(_ context.Context, name string, data []byte) (string, error) {
	path := filepath.Join(s.root, filepath.Base(name))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write lake blob: %w", err)
	}
	return path, nil
}

// Get reads a blob back by the name or path Put returned.
func (s *LocalStore) Get(_ context.Context, name string) ([]byte, error) {
	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.root, filepath.Base(name))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read lake blob: %w", err)
	}
	return data, nil
}

// GCSStore keeps lake blobs in a Google Cloud Storage bucket.
type GCSStore struct {
	client *storage.Client
	bucket string
	prefix string
}

// NewGCSStore dials Cloud Storage with ambient credentials.
func NewGCSStore(ctx context.Context, bucket, prefix string) (*GCSStore, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return &GCSStore{client: client, bucket: bucket, prefix: strings.Trim(prefix, "/")}, nil
}

func (s *GCSStore) object(name string) string {
	name = filepath.Base(name)
	if s.prefix == "" {
		return name
	}
	return s.prefix + "/" + name
}

// Put uploads the blob and returns its gs:// URI.
func (s *GCSStore) Put(ctx context.Context, name string, data []byte) (string, error) {
	obj := s.object(name)
	w := s.client.Bucket(s.bucket).Object(obj).NewWriter(ctx)
	w.ContentType = "application/octet-stream"
	if _, err := w.Write(data); err != nil {
		w.Close()
		return "", fmt.Errorf("upload lake blob: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalize lake blob: %w", err)
	}
	return fmt.Sprintf("gs://%s/%s", s.bucket, obj), nil
}

// Get downloads a blob by name or gs:// URI.
func (s *GCSStore) Get(ctx context.Context, name string) ([]byte, error) {
	obj := s.object(name)
	if strings.HasPrefix(name, "gs://") {
		rest := strings.TrimPrefix(name, "gs://")
		if _, after, ok := strings.Cut(rest, "/"); ok {
			obj = after
		}
	}
	r, err := s.client.Bucket(s.bucket).Object(obj).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("open lake blob: %w", err)
	}
	defer r.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read lake blob: %w", err)
	}
	return data, nil
}
