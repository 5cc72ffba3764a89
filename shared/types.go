package shared

import (
	"path/filepath"
	"strings"

	"github.com/go-playground/validator"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	DISK_PHOTO_BACKEND = "disk"
	GCS_PHOTO_BACKEND  = "gcs"

	DEFAULT_PORT             = 3000
	DEFAULT_MAX_UPLOAD_BYTES = 10 << 20
	DEFAULT_PHOTO_PREFIX     = "photos"
	DEFAULT_TIME_ZONE        = "UTC"
)

type ServerConfig struct {
	Sqlite  SqliteConfig  `mapstructure:"sqlite" validate:"required"`
	Rolodex RolodexConfig `mapstructure:"rolodex" validate:"required"`
	Google  GoogleConfig  `mapstructure:"google"`
}

type SqliteConfig struct {
	PassPhrase string `mapstructure:"passPhrase" validate:"required"`
}

type RolodexConfig struct {
	Listener  ListenerConfig `mapstructure:"listener" validate:"required"`
	PublicURL string         `mapstructure:"publicURL" validate:"omitempty,url"`
	Photos    PhotosConfig   `mapstructure:"photos" validate:"required"`
	Cron      CronConfig     `mapstructure:"cron"`
}

type CronConfig struct {
	TimeZone string `mapstructure:"timeZone" validate:"required"`
}

type ListenerConfig struct {
	Port int `mapstructure:"port" validate:"required,min=1,max=65535"`
}

type PhotosConfig struct {
	Backend        string `mapstructure:"backend" validate:"required,oneof=disk gcs"`
	Dir            string `mapstructure:"dir"`
	MaxUploadBytes int64  `mapstructure:"maxUploadBytes" validate:"min=1"`
}

type GoogleConfig struct {
	ApplicationCredentials string        `mapstructure:"applicationCredentials"`
	Storage                StorageConfig `mapstructure:"storage"`
}

type StorageConfig struct {
	Bucket                    string `mapstructure:"bucket"`
	Prefix                    string `mapstructure:"prefix"`
	PhotoPrefix               string `mapstructure:"photoPrefix"`
	SqliteBackupSchedule      string `mapstructure:"sqliteBackupSchedule"`
	EnableSqliteBackupAndSync bool   `mapstructure:"enableSqliteBackupAndSync"`
}

// UsesGoogleStorage reports whether any component needs a GCS client
func (cfg *ServerConfig) UsesGoogleStorage() bool {
	return cfg.Rolodex.Photos.Backend == GCS_PHOTO_BACKEND || cfg.Google.Storage.EnableSqliteBackupAndSync
}

// SetDefaults registers default values on config. configDir is the root
// for files the server keeps locally, e.g. photos.
func SetDefaults(config *viper.Viper, configDir string) {
	config.SetDefault("rolodex.listener.port", DEFAULT_PORT)
	config.SetDefault("rolodex.photos.backend", DISK_PHOTO_BACKEND)
	config.SetDefault("rolodex.photos.dir", filepath.Join(configDir, "photos"))
	config.SetDefault("rolodex.photos.maxUploadBytes", DEFAULT_MAX_UPLOAD_BYTES)
	config.SetDefault("rolodex.cron.timeZone", DEFAULT_TIME_ZONE)
	config.SetDefault("google.storage.photoPrefix", DEFAULT_PHOTO_PREFIX)

	// The env var overrides whatever is in the config file
	config.BindEnv("google.applicationCredentials", "GOOGLE_APPLICATION_CREDENTIALS")
}

// LoadServerConfig decodes & validates the server config held by config
func LoadServerConfig(config *viper.Viper) (*ServerConfig, error) {
	serverConfig := ServerConfig{}

	err := config.Unmarshal(&serverConfig)
	if err != nil {
		return nil, errors.Wrap(err, "unable to decode server config")
	}

	err = validator.New().Struct(serverConfig)
	if err != nil {
		return nil, errors.Errorf("invalid server config: %v", strings.ReplaceAll(err.Error(), "\n", "; "))
	}

	photos := serverConfig.Rolodex.Photos
	if photos.Backend == DISK_PHOTO_BACKEND && photos.Dir == "" {
		return nil, errors.New("invalid server config: 'rolodex.photos.dir' is required for the disk backend")
	}

	storage := serverConfig.Google.Storage
	if serverConfig.UsesGoogleStorage() && storage.Bucket == "" {
		return nil, errors.New("invalid server config: 'google.storage.bucket' is required when using google storage")
	}

	if storage.EnableSqliteBackupAndSync && storage.SqliteBackupSchedule == "" {
		return nil, errors.New("invalid server config: 'google.storage.sqliteBackupSchedule' is required when backups are enabled")
	}

	return &serverConfig, nil
}
