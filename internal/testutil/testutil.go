// Package testutil builds throwaway application containers for tests.
//
// The database is an in-memory SQLite database built from the embedded
// migrations in internal/database/migrations, only the Postgres column types
// are rewritten, so repository and HTTP tests run without a server against
// the schema that ships.
package testutil

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/deppfellow/bookshelf/internal/config"
	"github.com/deppfellow/bookshelf/internal/database"
	"github.com/deppfellow/bookshelf/internal/server"
)

// Each connection to ":memory:" is a separate database, the pool is capped
// at one connection below.
const dsn = "file::memory:?_foreign_keys=on"

// sqliteTypes rewrites the Postgres-only column types of the migrations.
var sqliteTypes = strings.NewReplacer(
	"BIGSERIAL PRIMARY KEY", "INTEGER PRIMARY KEY AUTOINCREMENT",
	"TIMESTAMPTZ", "DATETIME",
)

// NewDB opens a fresh, migrated in-memory database closed with the test.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	orm, err := database.OpenORM(sqlite.Open(dsn), zerolog.Nop(), nil)
	require.NoError(t, err)

	sqlDB, err := orm.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	statements, err := database.SchemaStatements()
	require.NoError(t, err)
	for _, stmt := range statements {
		require.NoError(t, orm.Exec(sqliteTypes.Replace(stmt)).Error, stmt)
	}

	return orm
}

// NewServer returns a server container over NewDB. Redis and the job
// workers are left out, new users get no welcome email.
func NewServer(t *testing.T) *server.Server {
	t.Helper()

	logger := zerolog.Nop()

	obs := config.DefaultObservabilityConfig()
	obs.Environment = "test"
	obs.HealthChecks.Checks = []string{"database"}

	return &server.Server{
		Config: &config.Config{
			Primary: config.Primary{Env: "test"},
			Server: config.ServerConfig{
				Port:               "0",
				CORSAllowedOrigins: []string{"*"},
			},
			Observability: obs,
		},
		Logger: &logger,
		DB:     database.NewWithORM(NewDB(t), &logger),
	}
}
