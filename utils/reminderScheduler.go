package utils

import (
	"log"
	"strconv"
	"time"
	"visadesk/database"
	"visadesk/models"

	"github.com/robfig/cron/v3"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[REMINDER-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// InitializeReminderScheduler sets up the daily reminder jobs
func InitializeReminderScheduler() {
	logScheduler("Initializing reminder scheduler...")

	c := cron.New()

	// Run daily at 8 AM server time
	c.AddFunc("0 8 * * *", func() {
		logScheduler("Running daily reminder check...")
		ProcessAppointmentReminders()
		ProcessDeadlineWarnings()
	})

	c.Start()
	logScheduler("Reminder scheduler started - runs daily at 8 AM")
}

// ProcessAppointmentReminders emails users whose confirmed consultations start
// within the next 24 hours. The ReminderSent flag keeps it single-shot.
func ProcessAppointmentReminders() {
	db := database.Database.Db
	now := time.Now()
	cutoff := now.Add(24 * time.Hour)

	var appointments []models.Appointment
	if err := db.Where("status = ? AND reminder_sent = false AND scheduled_at BETWEEN ? AND ?",
		models.AppointmentConfirmed, now, cutoff).Find(&appointments).Error; err != nil {
		logScheduler("Error fetching upcoming appointments: " + err.Error())
		return
	}

	for _, appt := range appointments {
		var user models.User
		if err := db.Where("id = ? AND is_deleted = false", appt.UserID).First(&user).Error; err != nil {
			continue
		}

		SendAppointmentReminderEmail(user.Email, user.Name, appt.Purpose, appt.ScheduledAt)

		appt.ReminderSent = true
		if err := db.Save(&appt).Error; err != nil {
			logScheduler("Error marking reminder sent: " + err.Error())
		}
	}

	if len(appointments) > 0 {
		logScheduler("Sent " + strconv.Itoa(len(appointments)) + " appointment reminders")
	}
}

// ProcessDeadlineWarnings emails users about watchlist scholarships whose
// deadline falls within the next 7 days.
func ProcessDeadlineWarnings() {
	db := database.Database.Db
	now := time.Now()
	cutoff := now.Add(7 * 24 * time.Hour)

	var items []models.WatchlistItem
	if err := db.Where("deadline_warned = false AND deadline IS NOT NULL AND deadline BETWEEN ? AND ?",
		now, cutoff).Find(&items).Error; err != nil {
		logScheduler("Error fetching watchlist deadlines: " + err.Error())
		return
	}

	for _, item := range items {
		var user models.User
		if err := db.Where("id = ? AND is_deleted = false", item.UserID).First(&user).Error; err != nil {
			continue
		}

		SendDeadlineWarningEmail(user.Email, user.Name, item.ScholarshipName, *item.Deadline)

		item.DeadlineWarned = true
		if err := db.Save(&item).Error; err != nil {
			logScheduler("Error marking deadline warned: " + err.Error())
		}
	}
}
