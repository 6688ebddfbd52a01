package configs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/MrTch0o/APPUAIFOOD-sub000/entity"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("KAFKA_BROKERS", "a:9092,b:9092")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 2*time.Hour, cfg.JWTTTL)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "order-events", cfg.KafkaTopic)
}

func TestConnectionDBRejectsUnknownDriver(t *testing.T) {
	_, err := ConnectionDB(&Config{DBDriver: "oracle"})
	assert.Error(t, err)
}

func TestSeedAdmin(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:seed_admin?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, SetupDatabase(db))

	cfg := &Config{AdminEmail: "Admin@Example.com", AdminPassword: "secret123"}
	require.NoError(t, SeedAdmin(db, cfg, zap.NewNop()))
	// second run is a no-op
	require.NoError(t, SeedAdmin(db, cfg, zap.NewNop()))

	var users []entity.User
	require.NoError(t, db.Find(&users).Error)
	require.Len(t, users, 1)
	assert.Equal(t, "admin@example.com", users[0].Email)
	assert.Equal(t, entity.RoleAdmin, users[0].Role)
	assert.True(t, users[0].IsActive)
}
