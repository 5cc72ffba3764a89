package models

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	sqliteEncrypt "github.com/Daskott/gorm-sqlite-cipher"
	"github.com/Daskott/rolodex/server/logger"
	"github.com/Daskott/rolodex/utils"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

const DB_NAME = "rolodex.db"

var ErrRecordNotFound = gorm.ErrRecordNotFound

var logg = logger.NewLogger("models")
var db *gorm.DB

// AutoMigrate opens the sqlite db in dbRootDir & auto-migrates the schema
func AutoMigrate(passPhrase string, dbRootDir string) error {
	err := openDB(passPhrase, dbRootDir)
	if err != nil {
		return err
	}

	logg.Infof("Migrating schema for %v", DB_NAME)
	return db.AutoMigrate(&Contact{})
}

// InitializeTestDb replaces the current db with a fresh one under dbRootDir,
// closing the previous connection. It panics if the db can't be created.
func InitializeTestDb(dbRootDir string) {
	if db != nil {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}

	err := AutoMigrate("test-pass-phrase", dbRootDir)
	if err != nil {
		log.Panic(err)
	}
}

// DbFilePath returns the path to the sqlite file within dbRootDir
func DbFilePath(dbRootDir string) string {
	return filepath.Join(dbRootDir, "db", DB_NAME)
}

// DbDirectory returns the directory holding the sqlite file, creating it if need be
func DbDirectory(dbRootDir string) (string, error) {
	dbDir := filepath.Join(dbRootDir, "db")

	err := utils.CreateDirIfNotExist(dbDir)
	if err != nil {
		return "", err
	}

	return dbDir, nil
}

// ---------------------------------------------------------------------------------//
// Helper functions
// --------------------------------------------------------------------------------//

func openDB(passPhrase string, dbRootDir string) error {
	dbDSNVal, err := dbDSN(passPhrase, dbRootDir)
	if err != nil {
		return fmt.Errorf("failed to set sqlite DSN: %v", err)
	}

	db, err = gorm.Open(sqliteEncrypt.Open(dbDSNVal), &gorm.Config{
		Logger: gormLogger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			gormLogger.Config{
				LogLevel:                  gormLogger.Silent,
				IgnoreRecordNotFoundError: true,
				Colorful:                  false,
			},
		),
	})
	if err != nil {
		return fmt.Errorf("failed to connect database: %v", err)
	}

	return nil
}

func dbDSN(passPhrase string, dbRootDir string) (string, error) {
	_, err := DbDirectory(dbRootDir)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf(
		"file:%v?_pragma_key=%s&_pragma_cipher_page_size=4096&_journal_mode=WAL",
		DbFilePath(dbRootDir),
		passPhrase,
	), nil
}

// Checkpoint flushes the write-ahead log into the main db file,
// so the file can be copied as a consistent snapshot.
func Checkpoint() error {
	return db.Exec("PRAGMA wal_checkpoint(TRUNCATE)").Error
}
