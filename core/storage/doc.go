// Package storage provides an abstraction layer for S3-compatible object storage.
//
// It wraps the MinIO Go client behind the Client interface, which the projects
// feature uses to store attachment files. The interface keeps storage
// interactions mockable in tests (see core/storage/mocks).
//
// # Operations
//
//   - BucketExists / MakeBucket: used by EnsureBucket at startup.
//   - PutObject: uploads an attachment.
//   - GetObject: streams an attachment back to the caller.
//   - RemoveObject: deletes an attachment.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	err = storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region)
package storage
