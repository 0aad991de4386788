package models

import (
	"time"
)

// DietFlags is the fixed set of therapeutic diet categories stored flat on an
// IP screening row. Each flag is a strict 0/1 so the columns round-trip the
// checkbox state exactly.
type DietFlags struct {
	Normal      int `gorm:"column:diet_normal;not null;default:0" json:"diet_normal"`
	Soft        int `gorm:"column:diet_soft;not null;default:0" json:"diet_soft"`
	LiquidClear int `gorm:"column:diet_liquid_clear;not null;default:0" json:"diet_liquid_clear"`
	LiquidFull  int `gorm:"column:diet_liquid_full;not null;default:0" json:"diet_liquid_full"`
	Bland       int `gorm:"column:diet_bland;not null;default:0" json:"diet_bland"`
	Diabetic    int `gorm:"column:diet_diabetic;not null;default:0" json:"diet_diabetic"`
	Renal       int `gorm:"column:diet_renal;not null;default:0" json:"diet_renal"`
	Cardiac     int `gorm:"column:diet_cardiac;not null;default:0" json:"diet_cardiac"`
	LowSalt     int `gorm:"column:diet_low_salt;not null;default:0" json:"diet_low_salt"`
	NPO         int `gorm:"column:diet_npo;not null;default:0" json:"diet_npo"`
	Enteral     int `gorm:"column:diet_enteral;not null;default:0" json:"diet_enteral"`
	TPN         int `gorm:"column:diet_tpn;not null;default:0" json:"diet_tpn"`
	Others      int `gorm:"column:diet_others;not null;default:0" json:"diet_others"`
}

// TherapeuticDiet is the nested representation returned to clients, with
// display-oriented key names instead of the storage column names.
type TherapeuticDiet struct {
	Normal      bool `json:"normal"`
	Soft        bool `json:"soft"`
	LiquidClear bool `json:"liquidClear"`
	LiquidFull  bool `json:"liquidFull"`
	Bland       bool `json:"bland"`
	Diabetic    bool `json:"diabetic"`
	Renal       bool `json:"renal"`
	Cardiac     bool `json:"cardiac"`
	LowSalt     bool `json:"lowSalt"`
	NPO         bool `json:"npo"`
	Enteral     bool `json:"enteral"`
	TPN         bool `json:"tpn"`
	Others      bool `json:"others"`
}

// TransformDietSelection coerces a decoded therapeutic-diet selection into the
// fixed flag set. Missing keys default to 0, unknown keys are ignored, and any
// truthy value (JSON true, non-zero number, non-empty string) becomes 1.
// A nil selection yields all zeroes.
func TransformDietSelection(selection map[string]interface{}) DietFlags {
	flag := func(key string) int {
		if truthy(selection[key]) {
			return 1
		}
		return 0
	}
	return DietFlags{
		Normal:      flag("diet_normal"),
		Soft:        flag("diet_soft"),
		LiquidClear: flag("diet_liquid_clear"),
		LiquidFull:  flag("diet_liquid_full"),
		Bland:       flag("diet_bland"),
		Diabetic:    flag("diet_diabetic"),
		Renal:       flag("diet_renal"),
		Cardiac:     flag("diet_cardiac"),
		LowSalt:     flag("diet_low_salt"),
		NPO:         flag("diet_npo"),
		Enteral:     flag("diet_enteral"),
		TPN:         flag("diet_tpn"),
		Others:      flag("diet_others"),
	}
}

// Nested converts the flat 0/1 columns back into the display representation.
func (f DietFlags) Nested() TherapeuticDiet {
	return TherapeuticDiet{
		Normal:      f.Normal != 0,
		Soft:        f.Soft != 0,
		LiquidClear: f.LiquidClear != 0,
		LiquidFull:  f.LiquidFull != 0,
		Bland:       f.Bland != 0,
		Diabetic:    f.Diabetic != 0,
		Renal:       f.Renal != 0,
		Cardiac:     f.Cardiac != 0,
		LowSalt:     f.LowSalt != 0,
		NPO:         f.NPO != 0,
		Enteral:     f.Enteral != 0,
		TPN:         f.TPN != 0,
		Others:      f.Others != 0,
	}
}

func truthy(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case float64:
		return val != 0
	case string:
		return val != ""
	default:
		return true
	}
}

// IPScreening is one inpatient nutritional assessment. Rows are immutable
// after creation; the latest row per IP number (highest screening id) is the
// one served on reads.
type IPScreening struct {
	ScreeningID          uint   `gorm:"primaryKey;autoIncrement;column:screening_id" json:"screening_id"`
	IPNo                 string `gorm:"column:ip_no;not null;index" json:"IPNo"`
	HospNo               string `gorm:"column:hosp_no" json:"HospNo"`
	Name                 string `gorm:"column:name;not null" json:"name"`
	Ward                 string `gorm:"column:ward" json:"ward"`
	Date                 string `gorm:"column:date" json:"date"`
	Age                  string `gorm:"column:age" json:"age"`
	Gender               string `gorm:"column:gender" json:"gender"`
	BloodGroup           string `gorm:"column:blood_group" json:"blood_group"`
	Height               string `gorm:"column:height" json:"height"`
	Weight               string `gorm:"column:weight" json:"weight"`
	BMI                  string `gorm:"column:bmi" json:"bmi"`
	Diagnosis            string `gorm:"column:diagnosis" json:"diagnosis"`
	FoodAllergies        string `gorm:"column:food_allergies" json:"food_allergies"`
	DietaryAdvice        string `gorm:"column:dietary_advice" json:"dietary_advice"`
	DietFlags
	OtherDietNote        string    `gorm:"column:other_diet_note" json:"other_diet_note"`
	FeedRate             string    `gorm:"column:feed_rate" json:"feed_rate"`
	NutrientRequirements string    `gorm:"column:nutrient_requirements" json:"nutrient_requirements"`
	AttachmentPath       string    `gorm:"column:attachment_path" json:"attachment_path"`
	DietitianName        string    `gorm:"column:dietitian_name" json:"dietitian_name"`
	CreatedAt            time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (IPScreening) TableName() string {
	return "ip_nutritional_screening"
}

// IPCustomField is a dietitian-defined extension attribute owned by one IP
// screening. Fields are batch-inserted with their screening and never updated.
type IPCustomField struct {
	ID          uint   `gorm:"primaryKey;autoIncrement;column:id" json:"-"`
	ScreeningID uint   `gorm:"column:screening_id;not null;index" json:"-"`
	FieldName   string `gorm:"column:field_name;not null" json:"field_name"`
	FieldValue  string `gorm:"column:field_value" json:"field_value"`
}

func (IPCustomField) TableName() string {
	return "ip_custom_fields"
}

// OPScreening is the outpatient variant. It carries the same fixed clinical
// fields but no therapeutic diet flags, and stores only the report filename.
type OPScreening struct {
	ScreeningID    uint      `gorm:"primaryKey;autoIncrement;column:screening_id" json:"screening_id"`
	HospNo         string    `gorm:"column:hosp_no;not null;index" json:"HospNo"`
	Name           string    `gorm:"column:name;not null" json:"name"`
	Date           string    `gorm:"column:date" json:"date"`
	Age            string    `gorm:"column:age" json:"age"`
	Gender         string    `gorm:"column:gender" json:"gender"`
	BloodGroup     string    `gorm:"column:blood_group" json:"blood_group"`
	Height         string    `gorm:"column:height" json:"height"`
	Weight         string    `gorm:"column:weight" json:"weight"`
	BMI            string    `gorm:"column:bmi" json:"bmi"`
	Diagnosis      string    `gorm:"column:diagnosis" json:"diagnosis"`
	FoodAllergies  string    `gorm:"column:food_allergies" json:"food_allergies"`
	DietaryAdvice  string    `gorm:"column:dietary_advice" json:"dietary_advice"`
	ReportFilename string    `gorm:"column:report_filename" json:"report_filename"`
	DietitianName  string    `gorm:"column:dietitian_name" json:"dietitian_name"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (OPScreening) TableName() string {
	return "op_nutritional_screening"
}

type OPCustomField struct {
	ID          uint   `gorm:"primaryKey;autoIncrement;column:id" json:"-"`
	ScreeningID uint   `gorm:"column:screening_id;not null;index" json:"-"`
	FieldName   string `gorm:"column:field_name;not null" json:"field_name"`
	FieldValue  string `gorm:"column:field_value" json:"field_value"`
}

func (OPCustomField) TableName() string {
	return "op_custom_fields"
}

// ReservedIPFieldNames are the fixed-schema column names a custom field may
// not shadow. The match is exact and case-sensitive after trimming.
var ReservedIPFieldNames = map[string]struct{}{
	"IPNo":                  {},
	"HospNo":                {},
	"name":                  {},
	"ward":                  {},
	"date":                  {},
	"age":                   {},
	"gender":                {},
	"blood_group":           {},
	"height":                {},
	"weight":                {},
	"bmi":                   {},
	"diagnosis":             {},
	"food_allergies":        {},
	"dietary_advice":        {},
	"feed_rate":             {},
	"nutrient_requirements": {},
	"attachment_path":       {},
	"dietitian_name":        {},
	"other_diet_note":       {},
	"therapeutic_diet":      {},
}
