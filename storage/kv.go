package storage

import (
	"context"
	"errors"
)

// Logical keys under which the tournament state is persisted. The whole list
// is serialized and overwritten on every save; there are no partial writes.
const (
	TeamsKey   = "tournament_teams"
	MatchesKey = "tournament_matches"
)

// ErrKeyNotFound is returned by Get when the key has never been written or
// has been deleted.
var ErrKeyNotFound = errors.New("storage: key not found")

// BlobStore is a key-value blob store. Implementations exist for a local
// SQLite file, Postgres and S3-compatible object storage (Cloudflare R2).
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
