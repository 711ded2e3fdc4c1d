// Package testutil provides shared fixtures for store and end-to-end tests.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"gorm.io/gorm"

	"github.com/janisto/trail-profiles/internal/platform/database"
)

// PostgresDSNEnv names the variable that points integration tests at Postgres.
const PostgresDSNEnv = "TEST_POSTGRES_DSN"

// DB returns a migrated SQLite database in a temp dir, closed on cleanup.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()
	return open(tb, database.DriverSQLite, filepath.Join(tb.TempDir(), "test.db"))
}

// PostgresDB returns a migrated Postgres database, or skips when
// TEST_POSTGRES_DSN is unset. Tables are emptied before the test runs.
func PostgresDB(tb testing.TB) *gorm.DB {
	tb.Helper()
	dsn := os.Getenv(PostgresDSNEnv)
	if dsn == "" {
		tb.Skip("set " + PostgresDSNEnv + " to run Postgres integration tests")
	}
	db := open(tb, database.DriverPostgres, dsn)
	if err := db.Exec("TRUNCATE favourite_activities, saved_trails, profiles, activities RESTART IDENTITY CASCADE").Error; err != nil {
		tb.Fatalf("truncate: %v", err)
	}
	return db
}

func open(tb testing.TB, driver, dsn string) *gorm.DB {
	tb.Helper()
	db, err := database.Open(driver, dsn)
	if err != nil {
		tb.Fatalf("open %s: %v", driver, err)
	}
	if err := database.Migrate(db); err != nil {
		tb.Fatalf("migrate %s: %v", driver, err)
	}
	tb.Cleanup(func() { _ = database.Close(db) })
	return db
}

// AuthServer is a stand-in for the external credential verifier.
type AuthServer struct {
	*httptest.Server
	calls atomic.Int64
}

// Calls reports how many credential checks the server received.
func (s *AuthServer) Calls() int64 { return s.calls.Load() }

// NewAuthServer answers every request with status and the JSON encoding of
// body. A nil body writes nothing.
func NewAuthServer(tb testing.TB, status int, body any) *AuthServer {
	tb.Helper()
	s := &AuthServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if body != nil {
			_ = json.NewEncoder(w).Encode(body)
		}
	}))
	tb.Cleanup(s.Close)
	return s
}

// VerifiedBody is the marker the verifier returns for good credentials.
func VerifiedBody() []any {
	return []any{"Verified", true}
}
