package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	AppointmentPending   = "PENDING"
	AppointmentConfirmed = "CONFIRMED"
	AppointmentCancelled = "CANCELLED"
	AppointmentCompleted = "COMPLETED"
)

type Appointment struct {
	gorm.Model
	UserID       uint      `gorm:"index;not null"`
	Purpose      string    `gorm:"not null"`
	ScheduledAt  time.Time `gorm:"not null"`
	Mode         string    `gorm:"default:'ONLINE'"` // ONLINE, IN_PERSON
	Notes        string    `gorm:"type:text"`
	Status       string    `gorm:"default:'PENDING'"`
	ReminderSent bool      `gorm:"default:false"`
}
