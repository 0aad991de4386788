package services

import (
	"NutriCare/models"
	"NutriCare/repositories"
	"NutriCare/utils"
	"context"
)

type PatientService struct {
	repository repositories.PatientRepository
}

func NewPatientService(repository repositories.PatientRepository) *PatientService {
	return &PatientService{repository: repository}
}

// Register validates and stores a new patient. A duplicate hospital number
// surfaces as repositories.ErrDuplicate without inserting a row.
func (s *PatientService) Register(ctx context.Context, patient *models.Patient) error {
	if err := utils.ValidatePatientRegistration(*patient); err != nil {
		return &ValidationError{Message: err.Error()}
	}
	return s.repository.Create(ctx, patient)
}

func (s *PatientService) GetByHospNo(ctx context.Context, hospNo string) (*models.Patient, error) {
	return s.repository.GetByHospNo(ctx, hospNo)
}
