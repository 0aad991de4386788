package models

import (
	"time"
)

// Patient is the outpatient identity record, keyed by hospital number.
// Registration is create-only; there are no update or delete endpoints.
type Patient struct {
	ID         uint      `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	HospNo     string    `gorm:"column:hosp_no;not null;unique;index" json:"HospNo"`
	Name       string    `gorm:"column:name;not null" json:"name"`
	Date       string    `gorm:"column:date;not null" json:"date"`
	Age        int       `gorm:"column:age;not null" json:"age"`
	Gender     string    `gorm:"column:gender;not null" json:"gender"`
	BloodGroup string    `gorm:"column:blood_group" json:"blood_group"`
	Height     float64   `gorm:"column:height" json:"height"`
	Weight     float64   `gorm:"column:weight" json:"weight"`
	Department string    `gorm:"column:department" json:"department"`
	Phone      string    `gorm:"column:phone" json:"phone"`
	Address    string    `gorm:"column:address" json:"address"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Patient) TableName() string {
	return "op_patients"
}
