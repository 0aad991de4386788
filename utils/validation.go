package utils

import (
	"NutriCare/models"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

var phoneRegex = regexp.MustCompile(`^\d{10,15}$`)

// ValidatePatientRegistration checks the registration payload before any
// store mutation. HospNo, name, date, age and gender are required; phone,
// when present, must be 10-15 digits.
func ValidatePatientRegistration(patient models.Patient) error {
	return validation.ValidateStruct(&patient,
		validation.Field(&patient.HospNo, validation.Required.Error("HospNo is required")),
		validation.Field(&patient.Name, validation.Required.Error("name is required")),
		validation.Field(&patient.Date, validation.Required.Error("date is required")),
		validation.Field(&patient.Age, validation.Required.Error("age is required"), validation.Min(0)),
		validation.Field(&patient.Gender, validation.Required.Error("gender is required")),
		validation.Field(&patient.Phone, validation.Match(phoneRegex).Error("phone must be 10-15 digits only")),
	)
}

// SignupRequest is the credential creation payload.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	UserID   string `json:"userId"`
	Password string `json:"password"`
}

// ValidateSignup requires every credential field and a well-formed email.
func ValidateSignup(req SignupRequest) error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Name, validation.Required),
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.UserID, validation.Required),
		validation.Field(&req.Password, validation.Required),
	)
}
