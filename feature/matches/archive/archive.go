package archive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"valortracker/core/storage"
	"valortracker/feature/matches/henrik"
	"valortracker/feature/matches/models"

	"github.com/minio/minio-go/v7"
)

// Archive writes raw remote match records to object storage.
type Archive struct {
	client storage.Client
	bucket string
}

// New creates an archive in bucket.
func New(client storage.Client, bucket string) *Archive {
	return &Archive{client: client, bucket: bucket}
}

// Key returns the object name of a raw match.
func Key(region, matchID string) string {
	if region == "" {
		region = "unknown"
	}
	return fmt.Sprintf("matches/%s/%s.json", region, matchID)
}

// Archive stores the undecoded record of raw.
func (a *Archive) Archive(ctx context.Context, region string, raw henrik.RawMatch) error {
	id := raw.ID()
	if id == "" || len(raw.Raw) == 0 {
		return errors.New("raw match has no id or payload")
	}
	_, err := a.client.PutObject(ctx, a.bucket, Key(region, id),
		bytes.NewReader(raw.Raw), int64(len(raw.Raw)),
		minio.PutObjectOptions{ContentType: "application/json"},
	)
	if err != nil {
		return fmt.Errorf("failed to archive match %s: %w", id, err)
	}
	return nil
}

// Load returns the archived record of a match.
func (a *Archive) Load(ctx context.Context, region, matchID string) ([]byte, error) {
	obj, err := a.client.GetObject(ctx, a.bucket, Key(region, matchID), minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to open archived match %s: %w", matchID, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, fmt.Errorf("archived match %s: %w", matchID, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to read archived match %s: %w", matchID, err)
	}
	return data, nil
}
