package migration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMigration(t *testing.T) {
	t.Run("first migration in an empty directory is 000001", func(t *testing.T) {
		dir := t.TempDir()

		mf, err := CreateMigration(dir, "create catalog tables", "")

		require.NoError(t, err)
		assert.Equal(t, "000001", mf.Version)
		assert.Equal(t, filepath.Join(dir, "000001_create_catalog_tables.up.sql"), mf.UpPath)
		assert.Equal(t, filepath.Join(dir, "000001_create_catalog_tables.down.sql"), mf.DownPath)
		assert.FileExists(t, mf.UpPath)
		assert.FileExists(t, mf.DownPath)
	})

	t.Run("continues the existing sequence", func(t *testing.T) {
		dir := t.TempDir()
		for _, name := range []string{
			"000001_create_catalog_tables.up.sql",
			"000001_create_catalog_tables.down.sql",
			"000003_create_assets.up.sql",
			"000003_create_assets.down.sql",
		} {
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("-- sql\n"), 0o644))
		}

		mf, err := CreateMigration(dir, "add promo banners", "banner image library")

		require.NoError(t, err)
		assert.Equal(t, "000004", mf.Version)

		content, err := os.ReadFile(mf.UpPath)
		require.NoError(t, err)
		assert.Contains(t, string(content), "add promo banners")
		assert.Contains(t, string(content), "banner image library")
	})

	t.Run("creates the directory when missing", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "migrations")

		mf, err := CreateMigration(dir, "init", "")

		require.NoError(t, err)
		assert.FileExists(t, mf.UpPath)
	})
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "create_catalog_tables", sanitizeName("Create Catalog Tables"))
	assert.Equal(t, "add_v2_assets", sanitizeName("add  v2--assets"))
	assert.Equal(t, "drop_designs", sanitizeName("drop designs!"))
}

func TestListMigrations(t *testing.T) {
	t.Run("lists pairs once in order", func(t *testing.T) {
		dir := t.TempDir()
		for _, name := range []string{
			"000002_create_custom_designs.up.sql",
			"000002_create_custom_designs.down.sql",
			"000001_create_catalog_tables.up.sql",
			"000001_create_catalog_tables.down.sql",
			"notes.txt",
		} {
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("-- sql\n"), 0o644))
		}

		migrations, err := ListMigrations(dir)

		require.NoError(t, err)
		assert.Equal(t, []string{
			"000001_create_catalog_tables",
			"000002_create_custom_designs",
		}, migrations)
	})

	t.Run("missing directory is empty, not an error", func(t *testing.T) {
		migrations, err := ListMigrations(filepath.Join(t.TempDir(), "nope"))

		require.NoError(t, err)
		assert.Empty(t, migrations)
	})
}
