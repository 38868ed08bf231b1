package configs

import (
	"context"
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDuration(t *testing.T) {
	t.Setenv("TOKEN_TTL", "2h")
	assert.Equal(t, 2*time.Hour, getDuration("TOKEN_TTL", time.Minute))

	t.Setenv("TOKEN_TTL", "soon")
	assert.Equal(t, time.Minute, getDuration("TOKEN_TTL", time.Minute))

	t.Setenv("TOKEN_TTL", "")
	assert.Equal(t, time.Minute, getDuration("TOKEN_TTL", time.Minute))
}

func TestLoadEnvDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("STORAGE_DRIVER", "")

	env := LoadEnv()
	assert.Equal(t, "development", env.AppEnv)
	assert.Equal(t, "mysql", env.DBDriver)
	assert.Equal(t, "firebase", env.StorageDriver)
	assert.False(t, env.IsProduction())
}

func TestOpenConnectionSQLite(t *testing.T) {
	db, err := OpenConnection(ENV{DBDriver: "sqlite", DBName: "file::memory:", AppEnv: "production"})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.NoError(t, sqlDB.Ping())
}

func TestOpenConnectionUnknownDriver(t *testing.T) {
	_, err := OpenConnection(ENV{DBDriver: "oracle"})
	assert.Error(t, err)
}

func TestOpenBlobStore(t *testing.T) {
	ctx := context.Background()

	store, local, err := OpenBlobStore(ctx, ENV{StorageDriver: "memory"})
	require.NoError(t, err)
	assert.NotNil(t, store)
	assert.Nil(t, local)

	key := base64.URLEncoding.EncodeToString([]byte("0123456789abcdef0123456789abcdef"))
	store, local, err = OpenBlobStore(ctx, ENV{StorageDriver: "local", StorageLocalDir: t.TempDir(), StorageSigningKey: key})
	require.NoError(t, err)
	assert.NotNil(t, store)
	assert.NotNil(t, local)

	_, _, err = OpenBlobStore(ctx, ENV{StorageDriver: "local", StorageLocalDir: t.TempDir(), StorageSigningKey: "%%%"})
	assert.Error(t, err)

	_, _, err = OpenBlobStore(ctx, ENV{StorageDriver: "ftp"})
	assert.Error(t, err)
}
