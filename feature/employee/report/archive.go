package report

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"

	"employee-sync/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

const objectTimeLayout = "20060102T150405Z"

// Archiver uploads run reports to object storage and prunes old ones.
type Archiver struct {
	client    storage.Client
	bucket    string
	region    string
	prefix    string
	retention int
	logger    *zap.Logger
}

// NewArchiver creates an archiver. A retention of zero keeps every report.
func NewArchiver(client storage.Client, bucket, region, prefix string, retention int, logger *zap.Logger) *Archiver {
	return &Archiver{
		client:    client,
		bucket:    bucket,
		region:    region,
		prefix:    strings.Trim(prefix, "/"),
		retention: retention,
		logger:    logger,
	}
}

// ObjectName returns the key a report is stored under. Keys sort by start time.
func (a *Archiver) ObjectName(r *Report) string {
	return path.Join(a.prefix, r.StartedAt.UTC().Format(objectTimeLayout)+"_"+r.RunID+".json")
}

// Archive uploads r and removes reports beyond the retention count.
func (a *Archiver) Archive(ctx context.Context, r *Report) error {
	if err := storage.EnsureBucket(ctx, a.client, a.bucket, a.region); err != nil {
		return err
	}

	name := a.ObjectName(r)
	if err := storage.PutJSON(ctx, a.client, a.bucket, name, r); err != nil {
		return fmt.Errorf("failed to archive report: %w", err)
	}
	a.logger.Debug("Archived run report", zap.String("object", name))

	return a.prune(ctx)
}

// Latest returns the most recent archived report, nil when there is none.
func (a *Archiver) Latest(ctx context.Context) (*Report, error) {
	keys, err := a.list(ctx)
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return nil, nil
	}

	var r Report
	if err := storage.GetJSON(ctx, a.client, a.bucket, keys[0], &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (a *Archiver) prune(ctx context.Context) error {
	if a.retention <= 0 {
		return nil
	}
	keys, err := a.list(ctx)
	if err != nil {
		return err
	}
	if len(keys) <= a.retention {
		return nil
	}
	for _, key := range keys[a.retention:] {
		if err := a.client.RemoveObject(ctx, a.bucket, key, minio.RemoveObjectOptions{}); err != nil {
			return fmt.Errorf("failed to remove report %s: %w", key, err)
		}
		a.logger.Debug("Pruned run report", zap.String("object", key))
	}
	return nil
}

// list returns report keys, newest first.
func (a *Archiver) list(ctx context.Context) ([]string, error) {
	prefix := a.prefix
	if prefix != "" {
		prefix += "/"
	}
	keys, err := storage.ListKeys(ctx, a.client, a.bucket, prefix, ".json")
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	return keys, nil
}
