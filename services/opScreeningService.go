package services

import (
	"NutriCare/models"
	"NutriCare/repositories"
	"NutriCare/storage"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"mime/multipart"
	"strings"
)

// OPScreeningInput carries one submitted outpatient assessment. OP records
// have no therapeutic diet selection and store only the report filename.
type OPScreeningInput struct {
	HospNo           string
	Name             string
	Date             string
	Age              string
	Gender           string
	BloodGroup       string
	Height           string
	Weight           string
	BMI              string
	Diagnosis        string
	FoodAllergies    string
	DietaryAdvice    string
	DietitianName    string
	CustomFieldsJSON string
	Report           *multipart.FileHeader
}

// OPScreeningResult is the read shape: the stored row, a derived report path
// and the custom fields.
type OPScreeningResult struct {
	Screening    OPScreeningView        `json:"screening"`
	CustomFields []models.OPCustomField `json:"customFields"`
}

// OPScreeningView decorates the stored row with the derived report path.
type OPScreeningView struct {
	models.OPScreening
	ReportPath string `json:"report_path"`
}

type OPScreeningService struct {
	repository repositories.OPScreeningRepository
	store      *storage.Store
}

func NewOPScreeningService(repository repositories.OPScreeningRepository, store *storage.Store) *OPScreeningService {
	return &OPScreeningService{repository: repository, store: store}
}

// Create validates and persists one outpatient screening with its custom
// fields in a single transaction, compensating the blob write on failure.
//
// Unlike the IP variant, OP custom fields are not checked against the
// reserved fixed-schema names; only the shape check applies. The
// inconsistency is intentional and tracked in DESIGN.md.
func (s *OPScreeningService) Create(ctx context.Context, input OPScreeningInput) (uint, error) {
	if strings.TrimSpace(input.HospNo) == "" || strings.TrimSpace(input.Name) == "" {
		return 0, &ValidationError{Message: "HospNo and name are required fields"}
	}

	fields, err := parseOPCustomFields(input.CustomFieldsJSON)
	if err != nil {
		log.Printf("Error parsing custom fields for HospNo %s: %v", input.HospNo, err)
		return 0, &ValidationError{Message: "Invalid format for customFields"}
	}

	screening := models.OPScreening{
		HospNo:        input.HospNo,
		Name:          input.Name,
		Date:          input.Date,
		Age:           input.Age,
		Gender:        input.Gender,
		BloodGroup:    input.BloodGroup,
		Height:        input.Height,
		Weight:        input.Weight,
		BMI:           input.BMI,
		Diagnosis:     input.Diagnosis,
		FoodAllergies: input.FoodAllergies,
		DietaryAdvice: input.DietaryAdvice,
		DietitianName: input.DietitianName,
	}

	var savedFilename string
	if input.Report != nil {
		savedFilename, err = s.store.Save(input.Report, storage.SubdirOPReports)
		if err != nil {
			return 0, fmt.Errorf("failed to store report: %w", err)
		}
		screening.ReportFilename = savedFilename
	}

	if err := s.repository.Create(ctx, &screening, fields); err != nil {
		if savedFilename != "" {
			if rmErr := s.store.Remove(storage.SubdirOPReports, savedFilename); rmErr != nil {
				log.Printf("Failed to remove orphaned report %s: %v", savedFilename, rmErr)
			}
		}
		return 0, err
	}

	return screening.ScreeningID, nil
}

// GetLatest returns the most recent outpatient screening for the hospital
// number with its custom fields.
func (s *OPScreeningService) GetLatest(ctx context.Context, hospNo string) (*OPScreeningResult, error) {
	screening, err := s.repository.LatestByHospNo(ctx, hospNo)
	if err != nil {
		return nil, err
	}

	fields, err := s.repository.CustomFields(ctx, screening.ScreeningID)
	if err != nil {
		return nil, err
	}
	if fields == nil {
		fields = []models.OPCustomField{}
	}

	view := OPScreeningView{OPScreening: *screening}
	if screening.ReportFilename != "" {
		view.ReportPath = "uploads/" + storage.SubdirOPReports + "/" + screening.ReportFilename
	}

	return &OPScreeningResult{Screening: view, CustomFields: fields}, nil
}

// parseOPCustomFields decodes the serialized list, keeping object-shaped
// entries with a non-empty fieldName. No reserved-name exclusion here.
func parseOPCustomFields(raw string) ([]models.OPCustomField, error) {
	if raw == "" {
		return nil, nil
	}

	var decoded interface{}
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, err
	}

	entries, ok := decoded.([]interface{})
	if !ok {
		return nil, nil
	}

	var fields []models.OPCustomField
	for _, entry := range entries {
		obj, ok := entry.(map[string]interface{})
		if !ok {
			continue
		}
		name, _ := obj["fieldName"].(string)
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		fields = append(fields, models.OPCustomField{
			FieldName:  name,
			FieldValue: fieldValueString(obj["fieldValue"]),
		})
	}
	return fields, nil
}
