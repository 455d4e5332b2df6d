// Package sqlitetest opens throwaway migrated databases for tests.
package sqlitetest

import (
	"context"
	"path/filepath"
	"sync/atomic"
	"testing"

	"tagnotes/cmd/internal/domain/sqlite"

	"gorm.io/gorm"
)

// Open returns a migrated database living in the test's temp dir.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := sqlite.Init(sqlite.Options{Path: filepath.Join(t.TempDir(), "test.db")})
	if err != nil {
		t.Fatalf("init database: %v", err)
	}
	t.Cleanup(func() { _ = sqlite.Close(db) })

	if err := sqlite.Migrate(context.Background(), db, "up"); err != nil {
		t.Fatalf("migrate database: %v", err)
	}
	return db
}

// QueryCounter counts SELECT statements issued through gorm.
type QueryCounter struct {
	n atomic.Int64
}

func (q *QueryCounter) Load() int64 {
	return q.n.Load()
}

// CountQueries registers a counter on db's query callback chain.
func CountQueries(t testing.TB, db *gorm.DB) *QueryCounter {
	t.Helper()

	counter := &QueryCounter{}
	err := db.Callback().Query().After("gorm:query").Register("sqlitetest:count", func(*gorm.DB) {
		counter.n.Add(1)
	})
	if err != nil {
		t.Fatalf("register query counter: %v", err)
	}
	return counter
}
