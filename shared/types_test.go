package shared

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func newConfig(t *testing.T, yml string) *viper.Viper {
	config := viper.New()
	config.SetConfigType("yaml")
	SetDefaults(config, "/tmp/rolodex")

	err := config.ReadConfig(bytes.NewBufferString(yml))
	assert.Nil(t, err)

	return config
}

func TestLoadServerConfigDefaults(t *testing.T) {
	config := newConfig(t, `
sqlite:
  passPhrase: secret
`)

	serverConfig, err := LoadServerConfig(config)
	assert.Nil(t, err)

	assert.Equal(t, DEFAULT_PORT, serverConfig.Rolodex.Listener.Port)
	assert.Equal(t, DISK_PHOTO_BACKEND, serverConfig.Rolodex.Photos.Backend)
	assert.Equal(t, filepath.Join("/tmp/rolodex", "photos"), serverConfig.Rolodex.Photos.Dir)
	assert.Equal(t, int64(DEFAULT_MAX_UPLOAD_BYTES), serverConfig.Rolodex.Photos.MaxUploadBytes)
	assert.Equal(t, DEFAULT_PHOTO_PREFIX, serverConfig.Google.Storage.PhotoPrefix)
	assert.Equal(t, DEFAULT_TIME_ZONE, serverConfig.Rolodex.Cron.TimeZone)
	assert.False(t, serverConfig.UsesGoogleStorage())
}

func TestLoadServerConfigValidation(t *testing.T) {
	testCases := []struct {
		description string
		yml         string
		expectedErr string
	}{
		{
			description: "Should fail when sqlite passPhrase is missing",
			yml: `
rolodex:
  listener:
    port: 8080
`,
			expectedErr: "PassPhrase",
		},
		{
			description: "Should fail for an unknown photo backend",
			yml: `
sqlite:
  passPhrase: secret
rolodex:
  photos:
    backend: ftp
`,
			expectedErr: "Backend",
		},
		{
			description: "Should fail when gcs backend has no bucket",
			yml: `
sqlite:
  passPhrase: secret
rolodex:
  photos:
    backend: gcs
`,
			expectedErr: "google.storage.bucket",
		},
		{
			description: "Should fail when backups are enabled without a schedule",
			yml: `
sqlite:
  passPhrase: secret
google:
  storage:
    bucket: rolodex
    enableSqliteBackupAndSync: true
`,
			expectedErr: "sqliteBackupSchedule",
		},
		{
			description: "Should fail for an invalid public url",
			yml: `
sqlite:
  passPhrase: secret
rolodex:
  publicURL: not a url
`,
			expectedErr: "PublicURL",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			_, err := LoadServerConfig(newConfig(t, tc.yml))
			if assert.NotNil(t, err) {
				assert.Contains(t, err.Error(), tc.expectedErr)
			}
		})
	}
}

func TestLoadServerConfigWithGoogleStorage(t *testing.T) {
	config := newConfig(t, `
sqlite:
  passPhrase: secret
rolodex:
  publicURL: https://contacts.example.com
  photos:
    backend: gcs
google:
  storage:
    bucket: rolodex
    prefix: rolodex-dev
    sqliteBackupSchedule: "*/30 * * * *"
    enableSqliteBackupAndSync: true
`)

	serverConfig, err := LoadServerConfig(config)
	assert.Nil(t, err)
	assert.True(t, serverConfig.UsesGoogleStorage())
	assert.Equal(t, "rolodex", serverConfig.Google.Storage.Bucket)
	assert.Equal(t, "https://contacts.example.com", serverConfig.Rolodex.PublicURL)
}
