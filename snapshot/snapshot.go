// Package snapshot mirrors the raw submitted code to S3 as a
// compressed audit artifact, independent of the versioned remote
// store. Mirroring is best-effort; a failed upload never fails a sync.
package snapshot

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"

	"github.com/hrsync/backend/extract"
)

type S3Snapshots struct {
	client     *s3.Client
	bucketName string
}

func NewS3Snapshots(client *s3.Client, bucketName string) *S3Snapshots {
	return &S3Snapshots{
		client:     client,
		bucketName: bucketName,
	}
}

// Save uploads the zstd-compressed raw code of the submission. The key
// embeds slug, language and a fresh uuid so snapshots never collide.
func (r *S3Snapshots) Save(ctx context.Context, sub extract.ExtractedSubmission) (string, error) {
	compressed, err := compressWithZstd([]byte(sub.Code))
	if err != nil {
		return "", fmt.Errorf("failed to compress snapshot: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate snapshot id: %w", err)
	}
	key := fmt.Sprintf("%s/%s/%s.code.zst", sub.ProblemSlug, sub.Language, id.String())

	mediaType := "application/zstd"
	_, err = r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(r.bucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(compressed),
		ContentType: aws.String(mediaType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload snapshot: %w", err)
	}
	return key, nil
}

func compressWithZstd(body []byte) ([]byte, error) {
	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	defer encoder.Close()
	return encoder.EncodeAll(body, nil), nil
}
