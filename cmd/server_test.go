package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	devConfig "github.com/Daskott/rolodex/dev/config"
	"github.com/Daskott/rolodex/shared"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

func TestLoadServerConfig(t *testing.T) {
	configDir := t.TempDir()
	configFile := filepath.Join(configDir, "server.yml")
	err := os.WriteFile(configFile, []byte(`
rolodex:
  listener:
    port: 8080
sqlite:
  passPhrase: secret
`), 0600)
	assert.Nil(t, err)

	serverConfig, err := loadServerConfig(configFile, configDir, false)
	assert.Nil(t, err)
	assert.Equal(t, 8080, serverConfig.Rolodex.Listener.Port)
	assert.Equal(t, "secret", serverConfig.Sqlite.PassPhrase)
	assert.Equal(t, filepath.Join(configDir, "photos"), serverConfig.Rolodex.Photos.Dir)

	_, err = loadServerConfig(filepath.Join(configDir, "missing.yml"), configDir, false)
	assert.NotNil(t, err)
}

func TestDevConfigIsValid(t *testing.T) {
	workingDir, err := os.Getwd()
	assert.Nil(t, err)

	tempDir := t.TempDir()
	assert.Nil(t, os.Chdir(tempDir))
	defer os.Chdir(workingDir)

	serverConfig, err := loadServerConfig("", tempDir, true)
	assert.Nil(t, err)
	assert.Equal(t, shared.DISK_PHOTO_BACKEND, serverConfig.Rolodex.Photos.Backend)
	assert.Equal(t, "dev/photos", serverConfig.Rolodex.Photos.Dir)

	content, err := os.ReadFile(filepath.Join(tempDir, "dev", "config", "server.yml"))
	assert.Nil(t, err)
	assert.Equal(t, devConfig.SERVER_YML, string(content))
}

func TestServerCmd(t *testing.T) {
	var (
		serverCmd *cobra.Command
		buff      = new(bytes.Buffer)
	)

	// The server keeps its data under $HOME
	t.Setenv("HOME", t.TempDir())

	cases := []struct {
		description string
		args        []string
		expectedOut string
	}{
		{
			description: "Should fail when sconfig flag is not provided",
			args:        []string{},
			expectedOut: "\"sconfig\" not set",
		},
		{
			description: "Should fail when sconfig file does not exist",
			args:        []string{"--sconfig", filepath.Join(t.TempDir(), "nope.yml")},
			expectedOut: "error reading server config file",
		},
	}

	for _, c := range cases {
		t.Run(c.description, func(t *testing.T) {
			serverCmd = createServerCmd()

			buff.Reset()
			serverCmd.SetOut(buff)
			serverCmd.SetErr(buff)
			serverCmd.SetArgs(c.args)

			serverCmd.Execute()

			actualOut := buff.String()
			if !strings.Contains(actualOut, c.expectedOut) {
				t.Errorf("Expected: \n\"%s\" \nTo contain: \n\"%s\"", actualOut, c.expectedOut)
			}
		})
	}
}
