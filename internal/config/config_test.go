package config

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Radityatama/produk_inventory/internal/hash"
	"github.com/Radityatama/produk_inventory/internal/models"
)

func TestEnvHelpers(t *testing.T) {
	t.Setenv("SOME_KEY", "value")
	require.Equal(t, "value", EnvDefault("SOME_KEY", "def"))
	require.Equal(t, "def", EnvDefault("MISSING_KEY", "def"))

	t.Setenv("SOME_INT", "42")
	require.Equal(t, 42, EnvIntDefault("SOME_INT", 1))
	require.Equal(t, 1, EnvIntDefault("MISSING_INT", 1))
	t.Setenv("BAD_INT", "abc")
	require.Equal(t, 1, EnvIntDefault("BAD_INT", 1))

	require.Nil(t, CSV(""))
	require.Equal(t, []string{"a", "b"}, CSV("a, b,"))
}

func TestSeedAdmin(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	cfg := &Config{ADMIN_USERNAME: "bos", ADMIN_PASSWORD: "rahasia123"}

	require.NoError(t, SeedAdmin(db, cfg))

	var admin models.User
	require.NoError(t, db.Where("username = ?", "bos").First(&admin).Error)
	require.Equal(t, "admin", admin.Role)
	require.True(t, hash.CheckPassword(admin.PasswordHash, "rahasia123"))

	// Seeding again is a no-op.
	require.NoError(t, SeedAdmin(db, cfg))
	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestSeedAdminDisabled(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	require.NoError(t, SeedAdmin(db, &Config{}))

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	require.Zero(t, count)
}
