// Package storage issues opaque attachment references by uploading files to
// Cloud Storage. The inquiry core treats the returned URL as an opaque
// string; no processing (thumbnailing, scanning) happens here.
package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"

	gcs "cloud.google.com/go/storage"
	"github.com/google/uuid"
)

type AttachmentStore struct {
	client *gcs.Client
	bucket string
}

func NewAttachmentStore(ctx context.Context, bucket string) (*AttachmentStore, error) {
	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, err
	}
	return &AttachmentStore{client: client, bucket: bucket}, nil
}

// Upload stores the file under the inquiry's prefix and returns a tokenized
// download URL usable as an attachment reference.
func (s *AttachmentStore) Upload(ctx context.Context, inquiryID, filename, contentType string, r io.Reader) (string, error) {
	token := uuid.NewString()
	objectPath := fmt.Sprintf("inquiries/%s/%s%s", inquiryID, uuid.NewString(), path.Ext(filename))

	obj := s.client.Bucket(s.bucket).Object(objectPath)
	w := obj.NewWriter(ctx)
	w.ContentType = contentType
	w.Metadata = map[string]string{
		"firebaseStorageDownloadTokens": token,
	}
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	escapedPath := url.PathEscape(objectPath)
	return fmt.Sprintf("https://firebasestorage.googleapis.com/v0/b/%s/o/%s?alt=media&token=%s",
		s.bucket, escapedPath, token), nil
}
