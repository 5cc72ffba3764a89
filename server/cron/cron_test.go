package cron

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewCronScheduler(t *testing.T) {
	scheduler := NewCronScheduler("America/Toronto")
	assert.Equal(t, "America/Toronto", scheduler.Location().String())

	scheduler = NewCronScheduler("Not/AZone")
	assert.Equal(t, time.UTC, scheduler.Location(), "Should fall back to UTC")
}

func TestTagsAreUnique(t *testing.T) {
	scheduler := NewCronScheduler("UTC")

	_, err := scheduler.Cron("*/30 * * * *").Tag("backupSqliteDb").Do(func() {})
	assert.Nil(t, err)

	_, err = scheduler.Cron("*/30 * * * *").Tag("backupSqliteDb").Do(func() {})
	assert.NotNil(t, err, "Should not schedule two jobs with the same tag")
}
