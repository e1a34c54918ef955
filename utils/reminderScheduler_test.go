package utils

import (
	"testing"
	"time"
	"visadesk/config"
	"visadesk/database"
	"visadesk/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupSchedulerTest(t *testing.T) *gorm.DB {
	t.Helper()

	config.AppConfig = &config.Config{
		FromEmail: "noreply@example.com",
	}

	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	return db
}

func TestProcessAppointmentReminders(t *testing.T) {
	db := setupSchedulerTest(t)

	user := models.User{Name: "Reminder User", Email: "reminder@example.com", Password: "hashed"}
	require.NoError(t, db.Create(&user).Error)

	soon := models.Appointment{
		UserID:      user.ID,
		Purpose:     "Visa consultation",
		ScheduledAt: time.Now().Add(6 * time.Hour),
		Status:      models.AppointmentConfirmed,
	}
	require.NoError(t, db.Create(&soon).Error)

	farOut := models.Appointment{
		UserID:      user.ID,
		Purpose:     "Follow-up",
		ScheduledAt: time.Now().Add(72 * time.Hour),
		Status:      models.AppointmentConfirmed,
	}
	require.NoError(t, db.Create(&farOut).Error)

	unconfirmed := models.Appointment{
		UserID:      user.ID,
		Purpose:     "Initial enquiry",
		ScheduledAt: time.Now().Add(6 * time.Hour),
		Status:      models.AppointmentPending,
	}
	require.NoError(t, db.Create(&unconfirmed).Error)

	ProcessAppointmentReminders()

	var reloaded models.Appointment
	require.NoError(t, db.First(&reloaded, soon.ID).Error)
	assert.True(t, reloaded.ReminderSent)

	reloaded = models.Appointment{}
	require.NoError(t, db.First(&reloaded, farOut.ID).Error)
	assert.False(t, reloaded.ReminderSent)

	reloaded = models.Appointment{}
	require.NoError(t, db.First(&reloaded, unconfirmed.ID).Error)
	assert.False(t, reloaded.ReminderSent)

	// Running again must not re-send for the already reminded appointment.
	ProcessAppointmentReminders()
	reloaded = models.Appointment{}
	require.NoError(t, db.First(&reloaded, soon.ID).Error)
	assert.True(t, reloaded.ReminderSent)
}

func TestProcessDeadlineWarnings(t *testing.T) {
	db := setupSchedulerTest(t)

	user := models.User{Name: "Deadline User", Email: "deadline@example.com", Password: "hashed"}
	require.NoError(t, db.Create(&user).Error)

	inThree := time.Now().Add(3 * 24 * time.Hour)
	closeItem := models.WatchlistItem{UserID: user.ID, ScholarshipName: "Chevening", Deadline: &inThree}
	require.NoError(t, db.Create(&closeItem).Error)

	inThirty := time.Now().Add(30 * 24 * time.Hour)
	distantItem := models.WatchlistItem{UserID: user.ID, ScholarshipName: "Fulbright", Deadline: &inThirty}
	require.NoError(t, db.Create(&distantItem).Error)

	noDeadline := models.WatchlistItem{UserID: user.ID, ScholarshipName: "University grant"}
	require.NoError(t, db.Create(&noDeadline).Error)

	ProcessDeadlineWarnings()

	var reloaded models.WatchlistItem
	require.NoError(t, db.First(&reloaded, closeItem.ID).Error)
	assert.True(t, reloaded.DeadlineWarned)

	reloaded = models.WatchlistItem{}
	require.NoError(t, db.First(&reloaded, distantItem.ID).Error)
	assert.False(t, reloaded.DeadlineWarned)

	reloaded = models.WatchlistItem{}
	require.NoError(t, db.First(&reloaded, noDeadline.ID).Error)
	assert.False(t, reloaded.DeadlineWarned)
}
