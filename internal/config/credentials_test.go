package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCredentials(t *testing.T) {
	creds := DefaultCredentials()

	assert.Equal(t, "default", creds.CurrentProfile)
	assert.NotNil(t, creds.Profiles)
	assert.Empty(t, creds.Profiles)
}

func TestLoadCredentials_NoFile(t *testing.T) {
	creds, err := LoadCredentials(filepath.Join(t.TempDir(), "credentials.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "default", creds.CurrentProfile)
	assert.Empty(t, creds.Profiles)
}

func TestLoadCredentials_WithFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "credentials.yaml")

	content := `current_profile: production
profiles:
  production:
    api_url: https://api.crestline.example.com
    access_token: test-token-123
    refresh_token: refresh-token-456
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	creds, err := LoadCredentials(path)
	require.NoError(t, err)

	assert.Equal(t, "production", creds.CurrentProfile)
	require.Contains(t, creds.Profiles, "production")
	assert.Equal(t, "https://api.crestline.example.com", creds.Profiles["production"].APIURL)
	assert.Equal(t, "test-token-123", creds.Profiles["production"].AccessToken)
	assert.Equal(t, "refresh-token-456", creds.Profiles["production"].RefreshToken)
}

func TestLoadCredentials_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "credentials.yaml")
	require.NoError(t, os.WriteFile(path, []byte("profiles: [broken"), 0600))

	_, err := LoadCredentials(path)
	assert.Error(t, err)
}

func TestSaveProfile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.yaml")

	creds, err := LoadCredentials(path)
	require.NoError(t, err)

	err = creds.SaveProfile("staging", "https://staging.example.com", "tok-1", "ref-1")
	require.NoError(t, err)

	// Credentials must not be world-readable.
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	reloaded, err := LoadCredentials(path)
	require.NoError(t, err)

	assert.Equal(t, "staging", reloaded.CurrentProfile)
	p, err := reloaded.GetProfile("staging")
	require.NoError(t, err)
	assert.Equal(t, "https://staging.example.com", p.APIURL)
	assert.Equal(t, "tok-1", p.AccessToken)
	assert.Equal(t, "ref-1", p.RefreshToken)
}

func TestGetProfile_CurrentWhenNameEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.yaml")
	creds, err := LoadCredentials(path)
	require.NoError(t, err)

	require.NoError(t, creds.SaveProfile("default", "http://localhost:8080", "tok", ""))

	p, err := creds.GetProfile("")
	require.NoError(t, err)
	assert.Equal(t, "tok", p.AccessToken)
}

func TestGetProfile_NotFound(t *testing.T) {
	creds := DefaultCredentials()

	_, err := creds.GetProfile("missing")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestRemoveProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.yaml")
	creds, err := LoadCredentials(path)
	require.NoError(t, err)

	require.NoError(t, creds.SaveProfile("default", "http://localhost:8080", "tok", ""))
	require.NoError(t, creds.RemoveProfile("default"))

	assert.Empty(t, creds.CurrentProfile)
	_, err = creds.GetProfile("default")
	assert.Error(t, err)
}

func TestRemoveProfile_NotFound(t *testing.T) {
	creds := DefaultCredentials()

	err := creds.RemoveProfile("missing")
	assert.Error(t, err)
}
