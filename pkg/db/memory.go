package db

import (
	"context"
	"fmt"
	"sync/atomic"
)

var memoryDBSeq atomic.Int64

// MemoryURL returns a DSN for a fresh, private in-memory SQLite database.
func MemoryURL() string {
	return fmt.Sprintf("file:memdb%d?mode=memory&cache=shared", memoryDBSeq.Add(1))
}

// NewMemory opens a migrated in-memory SQLite database. It is used by local
// runs without a configured database and by tests.
func NewMemory(ctx context.Context) (*DB, error) {
	return New(ctx, DriverSQLite, MemoryURL())
}
