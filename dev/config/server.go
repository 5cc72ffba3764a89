package config

// SERVER_YML is written to dev/config/server.yml the first time the server runs with --dev
const SERVER_YML = `
rolodex:
  listener:
    port: 3000
  photos:
    backend: disk
    dir: dev/photos
    maxUploadBytes: 10485760
  cron:
    timeZone: "America/Toronto"

sqlite:
  passPhrase: passphrase

google:
  storage:
    bucket: "rolodex"
    prefix: "rolodex-dev"
    photoPrefix: "rolodex-dev/photos"
    sqliteBackupSchedule: "*/30 * * * *"
    enableSqliteBackupAndSync: false
  applicationCredentials:
`
