package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	storage_go "github.com/supabase-community/storage-go"
)

// ObjectStorage defines the interface for the media bucket to enable mocking
//
//go:generate mockgen -source=storage.go -destination=../mocks/storage.go -package=mocks -mock_names=ObjectStorage=MockObjectStorage
type ObjectStorage interface {
	// Exists reports whether an object already exists at the given path
	Exists(ctx context.Context, objectPath string) (bool, error)

	// Upload writes the object, overwriting any concurrent duplicate
	Upload(ctx context.Context, objectPath string, body io.Reader, contentType string) error

	// PublicURL returns the public URL of an object
	PublicURL(objectPath string) string

	// Bucket returns the bucket name
	Bucket() string
}

// SupabaseStorage implements ObjectStorage against a Supabase storage bucket
type SupabaseStorage struct {
	client *storage_go.Client
	url    string
	bucket string
}

// NewSupabaseStorage creates a storage client for the given bucket
func NewSupabaseStorage(url, serviceKey, bucket string) *SupabaseStorage {
	return &SupabaseStorage{
		client: storage_go.NewClient(url+"/storage/v1", serviceKey, nil),
		url:    url,
		bucket: bucket,
	}
}

// Exists reports whether an object already exists at the given path. The
// lookup filters server-side on the object name so directories of any size
// answer in one page.
func (s *SupabaseStorage) Exists(ctx context.Context, objectPath string) (bool, error) {
	dir := path.Dir(objectPath)
	name := path.Base(objectPath)

	files, err := s.client.ListFiles(s.bucket, dir, storage_go.FileSearchOptions{
		Limit:  100,
		Offset: 0,
		Search: name,
		SortByOptions: storage_go.SortBy{
			Column: "name",
			Order:  "asc",
		},
	})
	if err != nil {
		return false, fmt.Errorf("failed to list %s/%s: %w", s.bucket, dir, err)
	}

	// Search matches substrings, so verify the exact name
	for _, file := range files {
		if file.Name == name {
			return true, nil
		}
	}
	return false, nil
}

// Upload writes the object. Upsert semantics: a concurrent duplicate upload
// may repeat work but never diverges the stored state.
func (s *SupabaseStorage) Upload(ctx context.Context, objectPath string, body io.Reader, contentType string) error {
	upsert := true
	_, err := s.client.UploadFile(s.bucket, objectPath, body, storage_go.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s/%s: %w", s.bucket, objectPath, err)
	}
	return nil
}

// PublicURL returns the public URL of an object
func (s *SupabaseStorage) PublicURL(objectPath string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s",
		strings.TrimSuffix(s.url, "/"), s.bucket, objectPath)
}

// Bucket returns the bucket name
func (s *SupabaseStorage) Bucket() string {
	return s.bucket
}
