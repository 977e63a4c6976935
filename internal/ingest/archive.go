package ingest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
)

// GCSArchiver keeps a copy of every uploaded statement in a GCS bucket.
// Objects are date-sharded: uploads/2006/01/02/<uuid>-<filename>.
type GCSArchiver struct {
	bucket string
}

// NewGCSArchiver builds an archiver for the given bucket.
func NewGCSArchiver(bucket string) *GCSArchiver {
	return &GCSArchiver{bucket: bucket}
}

// Archive writes the upload to GCS and returns its gs:// URI. Assumes
// Application Default Credentials.
func (a *GCSArchiver) Archive(ctx context.Context, filename, mimeType string, content []byte) (string, error) {
	objectName := fmt.Sprintf("uploads/%s/%s", time.Now().Format("2006/01/02"), uuid.New().String()+"-"+filename)

	client, err := storage.NewClient(ctx)
	if err != nil {
		return "", fmt.Errorf("create storage client: %w", err)
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	w := client.Bucket(a.bucket).Object(objectName).NewWriter(ctx)
	w.ContentType = mimeType

	if _, err := io.Copy(w, bytes.NewReader(content)); err != nil {
		return "", fmt.Errorf("copy upload to GCS writer: %w", err)
	}

	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalize upload: %w", err)
	}

	return fmt.Sprintf("gs://%s/%s", a.bucket, objectName), nil
}
