/*
Copyright © 2021 Edmond Cotterell

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"os"
	"path/filepath"

	devConfig "github.com/Daskott/rolodex/dev/config"
	"github.com/Daskott/rolodex/server"
	"github.com/Daskott/rolodex/shared"
	"github.com/Daskott/rolodex/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func createServerCmd() *cobra.Command {
	var serverConfigFile string

	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start a rolodex server",
		Long:  `The rolodex server stores contacts & their photos, and serves them over HTTP`,
		RunE: func(cmd *cobra.Command, args []string) error {
			configDir, err := configDirectory(isDevEnv)
			if err != nil {
				return err
			}

			serverConfig, err := loadServerConfig(serverConfigFile, configDir, isDevEnv)
			if err != nil {
				return err
			}

			server.Start(serverConfig, configDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&serverConfigFile, "sconfig", "", "config file for the server (required unless --dev)")

	return cmd
}

func loadServerConfig(configFile, configDir string, devMode bool) (*shared.ServerConfig, error) {
	if devMode {
		var err error
		configFile, err = devConfigFilePath()
		if err != nil {
			return nil, err
		}
	}

	if configFile == "" {
		return nil, formattedError("\"sconfig\" not set, the server needs a config file")
	}

	config := viper.New()
	shared.SetDefaults(config, configDir)
	config.SetConfigFile(configFile)
	config.AutomaticEnv() // read in environment variables that match

	if err := config.ReadInConfig(); err != nil {
		return nil, formattedError("error reading server config file: %v", err)
	}

	return shared.LoadServerConfig(config)
}

// devConfigFilePath returns dev/config/server.yml in the current directory,
// writing the default dev config there if it doesn't exist yet.
func devConfigFilePath() (string, error) {
	workingDir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	configDir := filepath.Join(workingDir, "dev", "config")
	configFilePath := filepath.Join(configDir, "server.yml")

	exists, err := utils.FileExist(configFilePath)
	if err != nil || exists {
		return configFilePath, err
	}

	err = utils.CreateDirIfNotExist(configDir)
	if err != nil {
		return "", err
	}

	return configFilePath, os.WriteFile(configFilePath, []byte(devConfig.SERVER_YML), 0600)
}

// configDirectory retrieves the directory to keep rolodex data in
// i.e. '~/rolodex' or './dev' in dev mode.
func configDirectory(devMode bool) (string, error) {
	configFolderName := "rolodex"
	rootDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	if devMode {
		configFolderName = "dev"
		rootDir, err = os.Getwd()
		if err != nil {
			return "", err
		}
	}

	configDir := filepath.Join(rootDir, configFolderName)

	return configDir, utils.CreateDirIfNotExist(configDir)
}
