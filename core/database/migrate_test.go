package database

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListMigrationFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"000002_b.up.sql", "000001_a.up.sql", "000001_a.down.sql", "README.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o600))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "000003_dir.up.sql"), 0o700))

	assert.Equal(t, []string{"000001_a.up.sql", "000002_b.up.sql"}, listMigrationFiles(dir))
	assert.Nil(t, listMigrationFiles(filepath.Join(dir, "missing")))
}

func TestAppliedBetween(t *testing.T) {
	files := []string{"000001_a.up.sql", "000002_b.up.sql", "000003_c.up.sql", "junk.up.sql"}
	assert.Equal(t, []string{"000002_b.up.sql", "000003_c.up.sql"}, appliedBetween(files, 1, 3))
	assert.Empty(t, appliedBetween(files, 3, 3))
	assert.Equal(t, uint64(12), parseVersion("000012_x.up.sql"))
}

func TestConfigNormalize(t *testing.T) {
	cfg := Config{Host: "db", Name: "photos", User: "u", Password: "p"}
	require.NoError(t, cfg.Normalize())
	assert.Equal(t, "postgres://u:p@db:5432/photos?sslmode=disable", cfg.URL())
	assert.Equal(t, "user=u password=p host=db port=5432 dbname=photos sslmode=disable", cfg.KeywordDSN())
	assert.Equal(t, 4, cfg.MaxConnections)

	assert.Error(t, (&Config{Name: "x"}).Normalize())
	assert.Error(t, (&Config{Host: "x"}).Normalize())
}
