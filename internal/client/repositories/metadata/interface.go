// Package metadata is a key/value repository over the local "metadata"
// table. It is the durable storage behind the profile store.
package metadata

import (
	"context"
)

// Repository stores opaque values under string keys.
//
// Get reports ok=false for a missing key rather than an error; Delete of a
// missing key succeeds.
type Repository interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
