package storage

import (
	"testing"

	"github.com/andresuchdata/inventory-flow/backend-go/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEndpoint(t *testing.T) {
	assert.Equal(t, "https://s3.example.com", normalizeEndpoint("s3.example.com", true))
	assert.Equal(t, "http://localhost:9000", normalizeEndpoint("//localhost:9000", false))
	assert.Equal(t, "http://minio:9000", normalizeEndpoint("http://minio:9000", true))
}

func TestNew(t *testing.T) {
	cfg := config.StorageConfig{
		Provider:  "minio",
		Endpoint:  "localhost:9000",
		AccessKey: "access",
		SecretKey: "secret",
		Bucket:    "datasets",
		UseSSL:    false,
	}

	t.Run("minio client builds without connecting", func(t *testing.T) {
		client, err := New(cfg)
		require.NoError(t, err)
		assert.IsType(t, &MinioClient{}, client)
	})

	t.Run("missing bucket", func(t *testing.T) {
		c := cfg
		c.Bucket = ""
		_, err := New(c)
		assert.ErrorContains(t, err, "bucket")
	})

	t.Run("missing credentials", func(t *testing.T) {
		c := cfg
		c.SecretKey = ""
		_, err := New(c)
		assert.ErrorContains(t, err, "credentials")
	})

	t.Run("unknown provider", func(t *testing.T) {
		c := cfg
		c.Provider = "ftp"
		_, err := New(c)
		assert.ErrorContains(t, err, "unknown storage provider")
	})
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "text/csv", contentType("reports/a.csv"))
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", contentType("a.xlsx"))
	assert.Equal(t, "application/octet-stream", contentType("a.bin"))
}
