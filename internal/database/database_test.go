package database

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"alxtravel/internal/config"
	"alxtravel/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func sqliteConfig(name string) *config.Config {
	return &config.Config{
		Env:                      "test",
		DBDriver:                 config.DriverSQLite,
		DBName:                   name,
		DBMaxOpenConns:           10,
		DBMaxIdleConns:           5,
		DBConnMaxLifetimeMinutes: 5,
	}
}

func TestConnectWithOptions_SQLiteAppliesSchema(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	db, err := ConnectWithOptions(sqliteConfig(filepath.Join(t.TempDir(), "seed.db")), ConnectOptions{ApplySchema: true, Logger: log})
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	for _, model := range PersistentModels() {
		assert.True(t, db.Migrator().HasTable(model))
	}
	assert.Contains(t, buf.String(), "Database connected successfully")
	assert.Contains(t, buf.String(), "Database migration completed")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
}

func TestConnectWithOptions_EnforcesForeignKeys(t *testing.T) {
	db, err := ConnectWithOptions(sqliteConfig(":memory:"), ConnectOptions{ApplySchema: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	orphan := models.Review{ListingID: 404, GuestID: 404, Rating: 4, Comment: "orphan"}
	assert.Error(t, db.Create(&orphan).Error)
}

func TestConnectWithOptions_UnsupportedDriver(t *testing.T) {
	cfg := sqliteConfig("x")
	cfg.DBDriver = "oracle"
	_, err := ConnectWithOptions(cfg, ConnectOptions{})
	assert.Error(t, err)
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "file::memory:?_foreign_keys=on", SQLiteDSN(":memory:"))
	assert.Equal(t, "file:/tmp/seed.db?_foreign_keys=on", SQLiteDSN("/tmp/seed.db"))
	assert.Equal(t, "file:seed.db?mode=ro", SQLiteDSN("file:seed.db?mode=ro"))
}

func TestPersistentModels_ParentsFirst(t *testing.T) {
	got := PersistentModels()
	require.Len(t, got, 4)
	assert.IsType(t, &models.User{}, got[0])
	assert.IsType(t, &models.Listing{}, got[1])
	assert.IsType(t, &models.Booking{}, got[2])
	assert.IsType(t, &models.Review{}, got[3])
}

func TestGormLogger_Trace(t *testing.T) {
	var buf bytes.Buffer
	l := NewGormLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	fc := func() (string, int64) { return `DELETE FROM "reviews"`, 3 }

	l.Trace(context.Background(), time.Now(), fc, nil)
	assert.Empty(t, buf.String(), "fast queries are silent at warn level")

	l.Trace(context.Background(), time.Now(), fc, gorm.ErrRecordNotFound)
	assert.Empty(t, buf.String(), "record not found is ignored")

	l.Trace(context.Background(), time.Now(), fc, errors.New("constraint failed"))
	assert.Contains(t, buf.String(), "GORM query error")

	buf.Reset()
	l.Trace(context.Background(), time.Now().Add(-time.Second), fc, nil)
	assert.Contains(t, buf.String(), "GORM slow query")

	buf.Reset()
	l.LogMode(logger.Silent).Trace(context.Background(), time.Now(), fc, errors.New("hidden"))
	assert.Empty(t, buf.String())
}
