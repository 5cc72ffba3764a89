package server

import (
	"errors"
	"os"

	"github.com/Daskott/rolodex/server/gstorage"
	"github.com/Daskott/rolodex/server/models"
	"github.com/Daskott/rolodex/utils"
	"github.com/go-co-op/gocron"
)

const BACKUP_SQLITE_DB_JOB = "backupSqliteDb"

// sqliteBackup copies the local sqlite db to & from google storage
type sqliteBackup struct {
	gs         *gstorage.GStorage
	prefix     string
	dbFilePath string
}

// run uploads a snapshot of the db
func (b *sqliteBackup) run() error {
	err := models.Checkpoint()
	if err != nil {
		return err
	}

	return b.gs.UploadFile(b.prefix, b.dbFilePath)
}

// restore pulls the last uploaded db if there's no local one yet
func (b *sqliteBackup) restore() error {
	exists, err := utils.FileExist(b.dbFilePath)
	if err != nil || exists {
		return err
	}

	logg.Infof("No local db found, restoring %v from google storage", b.dbFilePath)
	err = b.gs.DownloadFile(b.prefix, b.dbFilePath)
	if errors.Is(err, gstorage.ErrObjectNotExist) {
		logg.Info("No backup found in google storage, starting with an empty db")
		return nil
	}

	if err != nil {
		removeFile(b.dbFilePath)
	}

	return err
}

func (b *sqliteBackup) close() {
	if err := b.gs.Close(); err != nil {
		logg.Error(err)
	}
}

func registerJobs(scheduler *gocron.Scheduler, backup *sqliteBackup, schedule string) error {
	_, err := scheduler.Cron(schedule).Tag(BACKUP_SQLITE_DB_JOB).Do(func() {
		if err := backup.run(); err != nil {
			logg.Errorf("%v: %v", BACKUP_SQLITE_DB_JOB, err)
		}
	})

	return err
}

// removeFile is used to drop a partially restored db
func removeFile(filePath string) {
	if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
		logg.Error(err)
	}
}
