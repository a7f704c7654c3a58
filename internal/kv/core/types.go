// Package core defines the key-value abstraction used to persist settings
// documents (meeting, branding, email configuration).
package core

import (
	"context"
	"errors"
)

// Driver identifies a concrete key-value backend implementation.
type Driver string

const (
	// DriverFilesystem stores one file per key under a root directory.
	DriverFilesystem Driver = "fs"
	// DriverS3 stores one object per key in an S3 / MinIO bucket.
	DriverS3 Driver = "s3"
	// DriverMemory keeps values in process memory (tests, ephemeral runs).
	DriverMemory Driver = "memory"
)

// Store persists opaque values by key. Put overwrites, Get of a missing key
// returns an error matching ErrNotFound.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) (bool, error)
	Keys(ctx context.Context, prefix string) ([]string, error)
	Driver() Driver
}

// ErrNotFound is returned (possibly wrapped) when a key has no value.
var ErrNotFound = errors.New("kv: key not found")
