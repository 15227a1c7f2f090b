package migrate

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const migrationsDir = "migrations"

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return sqlDB
}

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, name).Scan(&count)
	require.NoError(t, err)
	return count == 1
}

func TestValidateDirAcceptsShippedMigrations(t *testing.T) {
	require.NoError(t, ValidateDir(migrationsDir))
}

func TestValidateDirRejectsBadFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad-name.sql"), []byte("-- +goose Up\n-- +goose Down\n"), 0o644))
	assert.Error(t, ValidateDir(dir))

	dir = t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "20250101000000_no_down.sql"), []byte("-- +goose Up\nSELECT 1;\n"), 0o644))
	err := ValidateDir(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "+goose Down")

	assert.Error(t, ValidateDir(""))
}

func TestCreateSQLMigration(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2025, 7, 1, 8, 30, 0, 0, time.UTC)

	path, err := createSQLMigration(dir, "Add Product SKU!", now)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "20250701083000_add_product_sku.sql"), path)

	_, err = createSQLMigration(dir, "Add Product SKU!", now)
	assert.Error(t, err, "second create with the same version should fail")

	_, err = createSQLMigration(dir, "!!!", now)
	assert.Error(t, err)

	require.NoError(t, ValidateDir(dir))
}

func TestRunUpCreatesSchemaOnSQLite(t *testing.T) {
	ctx := context.Background()
	db := openSQLite(t)

	require.NoError(t, Run(ctx, db, "sqlite3", migrationsDir, "up"))

	for _, table := range []string{"profiles", "products", "orders", "order_items", "admin_activity_logs"} {
		assert.True(t, tableExists(t, db, table), "expected table %s", table)
	}

	version, err := CurrentVersion(ctx, db, "sqlite3")
	require.NoError(t, err)
	assert.Equal(t, int64(20250601090300), version)
}

func TestMigrateToVersionDownAndUp(t *testing.T) {
	ctx := context.Background()
	db := openSQLite(t)
	require.NoError(t, Run(ctx, db, "sqlite3", migrationsDir, "up"))

	require.NoError(t, MigrateToVersion(ctx, db, "sqlite3", migrationsDir, "20250601090100"))
	assert.False(t, tableExists(t, db, "orders"))
	assert.False(t, tableExists(t, db, "admin_activity_logs"))
	assert.True(t, tableExists(t, db, "products"))

	require.NoError(t, MigrateToVersion(ctx, db, "sqlite3", migrationsDir, "20250601090300"))
	assert.True(t, tableExists(t, db, "admin_activity_logs"))

	err := MigrateToVersion(ctx, db, "sqlite3", migrationsDir, "latest")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "invalid version"))
}

func TestRunRequiresArguments(t *testing.T) {
	ctx := context.Background()
	assert.Error(t, Run(ctx, nil, "sqlite3", migrationsDir, "up"))
	assert.Error(t, Run(ctx, openSQLite(t), "sqlite3", "", "up"))
}
