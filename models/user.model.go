package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	ProfileImage        string `gorm:"default:''"`
	Name                string `gorm:"default:''"`
	Email               string `gorm:"unique;not null"`
	Mobile              string `gorm:"default:''"`
	Role                string `gorm:"default:'USER'"` // USER, ADMIN
	Password            string `gorm:"not null"`
	TargetCountry       string `gorm:"default:''"`
	IntakePeriod        string `gorm:"default:''"`
	CurrentEducation    string `gorm:"default:''"`
	AnalysisCount       int    `gorm:"default:0"` // analyses consumed so far
	MaxAnalyses         int    `gorm:"default:5"` // per-user analysis quota
	LastLogin           time.Time
	FailedLoginAttempts int        `gorm:"default:0"`
	LastFailedLogin     *time.Time `json:"last_failed_login"`
	IsBlocked           bool       `gorm:"default:false"`
	BlockedUntil        *time.Time `json:"blocked_until"`
	IsDeleted           bool       `gorm:"default:false"`
}

// Blocked reports whether the account is currently barred, either by an admin
// or by the failed-login lockout window. Admin blocks carry a far-future
// BlockedUntil; lockout blocks expire on their own.
func (u *User) Blocked() bool {
	if !u.IsBlocked {
		return false
	}
	return u.BlockedUntil == nil || u.BlockedUntil.After(time.Now())
}
