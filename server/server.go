package server

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Daskott/rolodex/server/cron"
	"github.com/Daskott/rolodex/server/directory"
	"github.com/Daskott/rolodex/server/gstorage"
	"github.com/Daskott/rolodex/server/logger"
	"github.com/Daskott/rolodex/server/models"
	"github.com/Daskott/rolodex/server/photostore"
	"github.com/Daskott/rolodex/shared"
)

var logg = logger.NewLogger("server")

// Start runs the rolodex server until it receives SIGINT or SIGTERM.
// configDir holds the local sqlite db.
func Start(config *shared.ServerConfig, configDir string) {
	var gs *gstorage.GStorage
	var backup *sqliteBackup
	var err error

	storageConfig := config.Google.Storage
	if config.UsesGoogleStorage() {
		gs, err = gstorage.NewGStorage(config.Google.ApplicationCredentials, storageConfig.Bucket)
		fatalOnError(err)
	}

	if storageConfig.EnableSqliteBackupAndSync {
		_, err = models.DbDirectory(configDir)
		fatalOnError(err)

		backup = &sqliteBackup{gs: gs, prefix: storageConfig.Prefix, dbFilePath: models.DbFilePath(configDir)}
		fatalOnError(backup.restore())
	}

	fatalOnError(models.AutoMigrate(config.Sqlite.PassPhrase, configDir))

	photos := photostore.New(photoBucket(config, gs))
	contacts := directory.New(photos)

	scheduler := cron.NewCronScheduler(config.Rolodex.Cron.TimeZone)
	if backup != nil {
		fatalOnError(registerJobs(scheduler, backup, storageConfig.SqliteBackupSchedule))
	}
	scheduler.StartAsync()

	server := &http.Server{
		Addr: fmt.Sprintf(":%v", config.Rolodex.Listener.Port),
		Handler: newRouter(contacts, photos, routerOptions{
			publicURL:      config.Rolodex.PublicURL,
			maxUploadBytes: config.Rolodex.Photos.MaxUploadBytes,
		}),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go serve(server)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	cleanup(scheduler, backup, server)
}

func photoBucket(config *shared.ServerConfig, gs *gstorage.GStorage) photostore.Bucket {
	if config.Rolodex.Photos.Backend == shared.GCS_PHOTO_BACKEND {
		logg.Infof("Storing photos in gs://%v/%v", config.Google.Storage.Bucket, config.Google.Storage.PhotoPrefix)
		return gs.PhotoBucket(config.Google.Storage.PhotoPrefix)
	}

	logg.Infof("Storing photos in %v", config.Rolodex.Photos.Dir)
	return photostore.NewDiskBucket(config.Rolodex.Photos.Dir)
}
