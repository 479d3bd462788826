package persistence

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/shoestock/internal/domain/shoe"
	"github.com/xiebiao/shoestock/internal/infrastructure/config"
)

func testConfig(backend string) *config.Config {
	return &config.Config{
		Server:  config.ServerConfig{Mode: "test"},
		Storage: config.StorageConfig{Backend: backend, FilePath: "inventory.txt"},
		Blob: config.BlobConfig{
			Bucket:    "shoes",
			Key:       "inventory.json",
			Region:    "us-east-1",
			Endpoint:  "http://localhost:9000",
			PathStyle: true,
			AccessKey: "minio",
			SecretKey: "minio123",
		},
		Database: config.DatabaseConfig{Driver: config.DriverSQLite},
	}
}

func TestNewShoeRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("file", func(t *testing.T) {
		repo, err := NewShoeRepository(ctx, testConfig(config.BackendFile), Deps{Fs: afero.NewMemMapFs()})
		require.NoError(t, err)
		assert.Equal(t, shoe.BackendFile, repo.Backend())
	})

	t.Run("blob", func(t *testing.T) {
		repo, err := NewShoeRepository(ctx, testConfig(config.BackendBlob), Deps{Fs: afero.NewMemMapFs()})
		require.NoError(t, err)
		assert.Equal(t, shoe.BackendBlob, repo.Backend())
	})

	t.Run("sql", func(t *testing.T) {
		cfg := testConfig(config.BackendSQL)
		cfg.Database.SQLitePath = filepath.Join(t.TempDir(), "shoestock.db")

		repo, err := NewShoeRepository(ctx, cfg, Deps{})
		require.NoError(t, err)
		assert.Equal(t, shoe.BackendSQL, repo.Backend())

		res, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Empty(t, res.Shoes)
	})

	t.Run("unknown", func(t *testing.T) {
		_, err := NewShoeRepository(ctx, testConfig("ftp"), Deps{})
		assert.Error(t, err)
	})
}
