// Copyright 2026 The Bda Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package snapshot backs up and restores a Catalog's full contents as
// newline-delimited JSON to S3-compatible object storage, the way
// libaf/s3 wires a minio.Client for the teacher's own artifact transfers.
package snapshot

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/catalogdb/bda/bql"
	"github.com/catalogdb/bda/catalog"
	"github.com/catalogdb/bda/internal/jsonutil"
	"github.com/catalogdb/bda/resource"
)

// Credentials configures NewClient, mirroring libaf/s3's
// Credentials.NewMinioClient shape.
type Credentials struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
}

// NewClient builds a minio.Client for c.
func (c Credentials) NewClient() (*minio.Client, error) {
	return minio.New(c.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(c.AccessKey, c.SecretKey, ""),
		Secure: c.UseSSL,
	})
}

// record is one NDJSON line: a resource, whose index partition is
// derived from its own resource_kind at restore time.
type record struct {
	Resource resource.Resource `json:"resource"`
}

// NewObjectKey returns a fresh, collision-resistant snapshot object key
// under prefix.
func NewObjectKey(prefix string) string {
	return fmt.Sprintf("%s/%s.ndjson", prefix, uuid.NewString())
}

// Backup writes every record in cat, across every kind, as NDJSON to
// bucket/key. It does not touch the index or set-iterator algebra; it
// only serializes the result of Catalog.Search.
func Backup(ctx context.Context, client *minio.Client, bucket, key string, cat *catalog.Catalog) error {
	var buf bytes.Buffer
	enc := jsonutil.NewEncoder(&buf)

	for _, kind := range cat.Kinds() {
		q := catalog.Query{Kinds: []catalog.EntityKind{kind}, Ast: bql.All{}}
		resources, err := cat.Search(q)
		if err != nil {
			return fmt.Errorf("snapshot: searching kind %s: %w", kind, err)
		}
		for _, r := range resources {
			if err := enc.Encode(record{Resource: *r}); err != nil {
				return fmt.Errorf("snapshot: encoding record: %w", err)
			}
		}
	}

	_, err := client.PutObject(ctx, bucket, key, &buf, int64(buf.Len()),
		minio.PutObjectOptions{ContentType: "application/x-ndjson"})
	if err != nil {
		return fmt.Errorf("snapshot: uploading %s/%s: %w", bucket, key, err)
	}
	return nil
}

// Restore reads bucket/key and Puts every record it contains into cat.
func Restore(ctx context.Context, client *minio.Client, bucket, key string, cat *catalog.Catalog) (int, error) {
	obj, err := client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return 0, fmt.Errorf("snapshot: fetching %s/%s: %w", bucket, key, err)
	}
	defer obj.Close()

	scanner := bufio.NewScanner(obj)
	scanner.Buffer(make([]byte, 64*1024), 8*1024*1024)

	count := 0
	for scanner.Scan() {
		var rec record
		if err := jsonutil.Unmarshal(scanner.Bytes(), &rec); err != nil {
			return count, fmt.Errorf("snapshot: decoding record %d: %w", count, err)
		}
		if _, err := cat.Put(&rec.Resource); err != nil {
			return count, fmt.Errorf("snapshot: restoring record %d: %w", count, err)
		}
		count++
	}
	if err := scanner.Err(); err != nil && err != io.EOF {
		return count, fmt.Errorf("snapshot: reading %s/%s: %w", bucket, key, err)
	}
	return count, nil
}
