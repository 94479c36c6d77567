package rowstore

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"stock-sync/core/storage"

	"github.com/minio/minio-go/v7"
)

// ObjectStore keeps each table as one CSV object in a bucket. All writes are
// read-modify-write of the whole object; Replace stages the new content under
// a temp key and promotes it with a server-side copy so the live table is
// never observed half-written.
type ObjectStore struct {
	client storage.Client
	bucket string
	prefix string
}

// NewObjectStore creates a CSV-object-backed row store.
func NewObjectStore(client storage.Client, bucket, prefix string) *ObjectStore {
	return &ObjectStore{client: client, bucket: bucket, prefix: prefix}
}

func (o *ObjectStore) key(table string) string {
	return o.prefix + table + ".csv"
}

func (o *ObjectStore) ReadAll(ctx context.Context, table string) ([][]string, error) {
	reader, err := o.client.GetObject(ctx, o.bucket, o.key(table), minio.GetObjectOptions{})
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get table %s: %w", table, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read table %s: %w", table, err)
	}

	return decodeCSV(data)
}

func (o *ObjectStore) WriteRange(ctx context.Context, table string, start int, rows [][]string) error {
	existing, err := o.ReadAll(ctx, table)
	if err != nil {
		return err
	}
	for i, row := range rows {
		idx := start + i
		for len(existing) <= idx {
			existing = append(existing, nil)
		}
		existing[idx] = row
	}
	return o.put(ctx, o.key(table), existing)
}

func (o *ObjectStore) Append(ctx context.Context, table string, rows [][]string) error {
	existing, err := o.ReadAll(ctx, table)
	if err != nil {
		return err
	}
	return o.put(ctx, o.key(table), append(existing, rows...))
}

func (o *ObjectStore) Replace(ctx context.Context, table string, rows [][]string) error {
	live := o.key(table)
	staged := live + ".staging"

	if err := o.put(ctx, staged, rows); err != nil {
		return fmt.Errorf("failed to stage table %s: %w", table, err)
	}

	_, err := o.client.CopyObject(ctx,
		minio.CopyDestOptions{Bucket: o.bucket, Object: live},
		minio.CopySrcOptions{Bucket: o.bucket, Object: staged},
	)
	if err != nil {
		return fmt.Errorf("failed to promote staged table %s: %w", table, err)
	}

	// The staged object is only discarded after the promotion succeeded.
	if err := o.client.RemoveObject(ctx, o.bucket, staged, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove staged table %s: %w", table, err)
	}
	return nil
}

func (o *ObjectStore) put(ctx context.Context, key string, rows [][]string) error {
	data, err := encodeCSV(rows)
	if err != nil {
		return err
	}
	_, err = o.client.PutObject(ctx, o.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "text/csv",
	})
	if err != nil {
		return fmt.Errorf("failed to write object %s: %w", key, err)
	}
	return nil
}

func decodeCSV(data []byte) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1 // rows may be ragged
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse table csv: %w", err)
	}
	return rows, nil
}

func encodeCSV(rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	for _, row := range rows {
		if len(row) == 0 {
			// csv cannot encode a zero-field record; keep the placeholder cell.
			row = []string{""}
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func isNotFound(err error) bool {
	resp := minio.ToErrorResponse(err)
	return resp.Code == "NoSuchKey" || strings.Contains(err.Error(), "key does not exist")
}
