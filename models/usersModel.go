package models

import (
	"time"
)

// User is a dietitian login credential. The password column holds a bcrypt
// hash, never the plain text.
type User struct {
	ID        uint      `gorm:"primaryKey;autoIncrement;column:id" json:"-"`
	UserID    string    `gorm:"column:user_id;size:100;not null;unique;index" json:"userId"`
	Name      string    `gorm:"column:name;size:100;not null" json:"name"`
	Email     string    `gorm:"column:email;size:255;not null;unique;index" json:"email"`
	Password  string    `gorm:"column:password;size:255;not null" json:"-"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"-"`
}

func (User) TableName() string {
	return "users"
}
