package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("APP_ENV", "test")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_NAME", filepath.Join(dir, "seed.db"))
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("REDIS_URL", "")
	t.Setenv("METRICS_TEXTFILE", "")
	return dir
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSeedCommand(t *testing.T) {
	dir := setupEnv(t)

	out, err := execute(t, "--config", dir, "--seed", "3", "--skip-bcrypt", "--migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "Seeding database...")
	assert.Contains(t, out, "Created listing: Cozy Apartment in Downtown")
	assert.Contains(t, out, "Successfully seeded database with:")
	assert.Contains(t, out, "  - 6 users\n")
	assert.Contains(t, out, "  - 5 listings\n")
	assert.Contains(t, out, "  - 10 bookings\n")

	out, err = execute(t, "--config", dir, "--skip-bcrypt", "--no-transaction")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted 6 non-admin users\n")
}

func TestSeedCommand_RejectsArguments(t *testing.T) {
	dir := setupEnv(t)
	_, err := execute(t, "--config", dir, "extra")
	assert.Error(t, err)
}

func TestSeedCommand_InvalidConfiguration(t *testing.T) {
	dir := setupEnv(t)
	t.Setenv("DB_DRIVER", "oracle")

	_, err := execute(t, "--config", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestSeedCommand_RefusesProductionByDefault(t *testing.T) {
	dir := setupEnv(t)
	t.Setenv("APP_ENV", "production")

	_, err := execute(t, "--config", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SEED_ALLOW_PRODUCTION")
}
