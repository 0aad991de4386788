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
	"time"
)

// IPScreeningInput carries one submitted inpatient assessment. All values
// arrive as multipart form strings; therapeutic_diet and customFields are
// serialized JSON documents that still need parsing.
type IPScreeningInput struct {
	IPNo                 string
	HospNo               string
	Name                 string
	Ward                 string
	Date                 string
	Age                  string
	Gender               string
	BloodGroup           string
	Height               string
	Weight               string
	BMI                  string
	Diagnosis            string
	FoodAllergies        string
	DietaryAdvice        string
	FeedRate             string
	NutrientRequirements string
	OtherDietNote        string
	DietitianName        string
	TherapeuticDietJSON  string
	CustomFieldsJSON     string
	Attachment           *multipart.FileHeader
}

// IPScreeningView is the read shape for one inpatient screening: the fixed
// fields plus the reconstructed nested diet object, with the flat flag
// columns stripped.
type IPScreeningView struct {
	ScreeningID          uint                   `json:"screening_id"`
	IPNo                 string                 `json:"IPNo"`
	HospNo               string                 `json:"HospNo"`
	Name                 string                 `json:"name"`
	Ward                 string                 `json:"ward"`
	Date                 string                 `json:"date"`
	Age                  string                 `json:"age"`
	Gender               string                 `json:"gender"`
	BloodGroup           string                 `json:"blood_group"`
	Height               string                 `json:"height"`
	Weight               string                 `json:"weight"`
	BMI                  string                 `json:"bmi"`
	Diagnosis            string                 `json:"diagnosis"`
	FoodAllergies        string                 `json:"food_allergies"`
	DietaryAdvice        string                 `json:"dietary_advice"`
	OtherDietNote        string                 `json:"other_diet_note"`
	FeedRate             string                 `json:"feed_rate"`
	NutrientRequirements string                 `json:"nutrient_requirements"`
	AttachmentPath       string                 `json:"attachment_path"`
	DietitianName        string                 `json:"dietitian_name"`
	CreatedAt            time.Time              `json:"created_at"`
	TherapeuticDiet      models.TherapeuticDiet `json:"therapeuticDiet"`
}

// IPScreeningResult bundles the latest screening with its custom fields.
type IPScreeningResult struct {
	Screening    IPScreeningView        `json:"screening"`
	CustomFields []models.IPCustomField `json:"customFields"`
}

type IPScreeningService struct {
	repository repositories.IPScreeningRepository
	store      *storage.Store
}

func NewIPScreeningService(repository repositories.IPScreeningRepository, store *storage.Store) *IPScreeningService {
	return &IPScreeningService{repository: repository, store: store}
}

// Create validates and persists one inpatient screening along with its
// filtered custom fields. The screening row and the custom-field batch go
// into one transaction; if an attachment was written to disk and the
// transaction fails, the file is removed again.
func (s *IPScreeningService) Create(ctx context.Context, input IPScreeningInput) (uint, error) {
	if strings.TrimSpace(input.IPNo) == "" || strings.TrimSpace(input.Name) == "" {
		return 0, &ValidationError{Message: "IPNo and name are required fields"}
	}

	var selection map[string]interface{}
	if input.TherapeuticDietJSON != "" {
		if err := json.Unmarshal([]byte(input.TherapeuticDietJSON), &selection); err != nil {
			log.Printf("Error parsing therapeutic diet for IPNo %s: %v", input.IPNo, err)
			return 0, &ValidationError{Message: "Invalid therapeutic diet format"}
		}
	}

	fields, err := parseIPCustomFields(input.CustomFieldsJSON)
	if err != nil {
		log.Printf("Error parsing custom fields for IPNo %s: %v", input.IPNo, err)
		return 0, &ValidationError{Message: "Invalid custom fields format"}
	}

	screening := models.IPScreening{
		IPNo:                 input.IPNo,
		HospNo:               input.HospNo,
		Name:                 input.Name,
		Ward:                 input.Ward,
		Date:                 input.Date,
		Age:                  input.Age,
		Gender:               input.Gender,
		BloodGroup:           input.BloodGroup,
		Height:               input.Height,
		Weight:               input.Weight,
		BMI:                  input.BMI,
		Diagnosis:            input.Diagnosis,
		FoodAllergies:        input.FoodAllergies,
		DietaryAdvice:        input.DietaryAdvice,
		DietFlags:            models.TransformDietSelection(selection),
		OtherDietNote:        input.OtherDietNote,
		FeedRate:             input.FeedRate,
		NutrientRequirements: input.NutrientRequirements,
		DietitianName:        input.DietitianName,
	}

	// The blob write completes before the database insert is attempted.
	var savedFilename string
	if input.Attachment != nil {
		savedFilename, err = s.store.Save(input.Attachment, storage.SubdirIPReports)
		if err != nil {
			return 0, fmt.Errorf("failed to store attachment: %w", err)
		}
		screening.AttachmentPath = "uploads/" + storage.SubdirIPReports + "/" + savedFilename
	}

	if err := s.repository.Create(ctx, &screening, fields); err != nil {
		if savedFilename != "" {
			if rmErr := s.store.Remove(storage.SubdirIPReports, savedFilename); rmErr != nil {
				log.Printf("Failed to remove orphaned attachment %s: %v", savedFilename, rmErr)
			}
		}
		return 0, err
	}

	return screening.ScreeningID, nil
}

// GetLatest returns the most recent screening for the IP number (highest
// screening id) with its custom fields and the nested diet representation.
func (s *IPScreeningService) GetLatest(ctx context.Context, ipNo string) (*IPScreeningResult, error) {
	screening, err := s.repository.LatestByIPNo(ctx, ipNo)
	if err != nil {
		return nil, err
	}

	fields, err := s.repository.CustomFields(ctx, screening.ScreeningID)
	if err != nil {
		return nil, err
	}
	if fields == nil {
		fields = []models.IPCustomField{}
	}

	return &IPScreeningResult{
		Screening: IPScreeningView{
			ScreeningID:          screening.ScreeningID,
			IPNo:                 screening.IPNo,
			HospNo:               screening.HospNo,
			Name:                 screening.Name,
			Ward:                 screening.Ward,
			Date:                 screening.Date,
			Age:                  screening.Age,
			Gender:               screening.Gender,
			BloodGroup:           screening.BloodGroup,
			Height:               screening.Height,
			Weight:               screening.Weight,
			BMI:                  screening.BMI,
			Diagnosis:            screening.Diagnosis,
			FoodAllergies:        screening.FoodAllergies,
			DietaryAdvice:        screening.DietaryAdvice,
			OtherDietNote:        screening.OtherDietNote,
			FeedRate:             screening.FeedRate,
			NutrientRequirements: screening.NutrientRequirements,
			AttachmentPath:       screening.AttachmentPath,
			DietitianName:        screening.DietitianName,
			CreatedAt:            screening.CreatedAt,
			TherapeuticDiet:      screening.DietFlags.Nested(),
		},
		CustomFields: fields,
	}, nil
}

// parseIPCustomFields decodes the serialized custom-field list and keeps only
// well-formed entries: objects whose trimmed field_name is non-empty and not
// one of the reserved fixed-schema names. Malformed entries are silently
// dropped; only an undecodable document is an error.
func parseIPCustomFields(raw string) ([]models.IPCustomField, error) {
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

	var fields []models.IPCustomField
	for _, entry := range entries {
		obj, ok := entry.(map[string]interface{})
		if !ok {
			continue
		}
		name, _ := obj["field_name"].(string)
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, reserved := models.ReservedIPFieldNames[name]; reserved {
			continue
		}
		fields = append(fields, models.IPCustomField{
			FieldName:  name,
			FieldValue: fieldValueString(obj["field_value"]),
		})
	}
	return fields, nil
}

func fieldValueString(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	default:
		return fmt.Sprint(val)
	}
}
