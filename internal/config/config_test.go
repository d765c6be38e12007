package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_ValidConfig(t *testing.T) {
	cfg := &Config{
		CompanyID:   "co-1",
		DatabaseURL: "postgres://localhost/careshift",
		Timezone:    "Europe/London",
	}

	err := Validate(cfg)
	assert.NoError(t, err)
}

func TestValidate_MinimalConfig(t *testing.T) {
	cfg := &Config{
		CompanyID: "co-1",
	}

	err := Validate(cfg)
	assert.NoError(t, err)
}

func TestValidate_MissingCompanyID(t *testing.T) {
	cfg := &Config{
		DatabaseURL: "postgres://localhost/careshift",
	}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidate_InvalidTimezone(t *testing.T) {
	cfg := &Config{
		CompanyID: "co-1",
		Timezone:  "Mars/Olympus",
	}

	err := Validate(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid timezone")
}

func TestLoadFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "careshift_config.yaml")
	content := `
companyID: co-1
timezone: Europe/London
storeTimeoutSeconds: 5
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, "co-1", cfg.CompanyID)
	assert.Equal(t, 5*time.Second, cfg.StoreTimeout())
	assert.Equal(t, "Europe/London", cfg.Location().String())
}

func TestLoadFromPath_DefaultsTimeout(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "careshift_config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("companyID: co-1\n"), 0644))

	cfg, err := LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, cfg.StoreTimeout())
}

func TestLoadFromPath_MissingFile(t *testing.T) {
	_, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadFromPath_MalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "careshift_config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("companyID: [unclosed"), 0644))

	_, err := LoadFromPath(path)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse")
}

func TestLocation_DefaultsToUTC(t *testing.T) {
	cfg := &Config{CompanyID: "co-1"}
	assert.Equal(t, time.UTC, cfg.Location())
}
