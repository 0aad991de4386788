package models

import (
	"time"
)

// FollowUpRecord is one follow-up visit for a patient. Unlike screenings,
// follow-ups support full update via PUT.
type FollowUpRecord struct {
	ID         uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	IPNo       string    `gorm:"column:ip_no;not null;index" json:"IPNo"`
	Name       string    `gorm:"column:name;not null" json:"name"`
	Date       string    `gorm:"column:date;not null;index" json:"date"`
	Diagnosis  string    `gorm:"column:diagnosis" json:"diagnosis"`
	Notes      string    `gorm:"column:notes" json:"notes"`
	Actions    string    `gorm:"column:actions" json:"actions"`
	Comments   string    `gorm:"column:comments" json:"comments"`
	Attachment string    `gorm:"column:attachment" json:"attachment"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (FollowUpRecord) TableName() string {
	return "follow_up_records"
}
