// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind a narrow interface. The sync service uses
// it to archive one JSON report per run and to read the most recent report
// back for the status endpoint. Both AWS S3 and self-hosted MinIO work.
//
// # Client Interface
//
// The Client interface abstracts the underlying provider so storage
// interactions can be mocked in unit tests (see core/storage/mocks).
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	exists, err := client.BucketExists(ctx, "employee-sync")
package storage
