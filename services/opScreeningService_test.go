package services

import (
	"NutriCare/models"
	"context"
	"testing"
)

type mockOPScreeningRepo struct {
	createFunc       func(ctx context.Context, screening *models.OPScreening, fields []models.OPCustomField) error
	latestFunc       func(ctx context.Context, hospNo string) (*models.OPScreening, error)
	customFieldsFunc func(ctx context.Context, screeningID uint) ([]models.OPCustomField, error)
}

func (m *mockOPScreeningRepo) Create(ctx context.Context, screening *models.OPScreening, fields []models.OPCustomField) error {
	return m.createFunc(ctx, screening, fields)
}

func (m *mockOPScreeningRepo) LatestByHospNo(ctx context.Context, hospNo string) (*models.OPScreening, error) {
	return m.latestFunc(ctx, hospNo)
}

func (m *mockOPScreeningRepo) CustomFields(ctx context.Context, screeningID uint) ([]models.OPCustomField, error) {
	return m.customFieldsFunc(ctx, screeningID)
}

func TestCreateOPScreening_RequiresHospNoAndName(t *testing.T) {
	service := NewOPScreeningService(&mockOPScreeningRepo{}, nil)

	_, err := service.Create(context.Background(), OPScreeningInput{HospNo: "H1001"})
	if !IsValidationError(err) {
		t.Fatalf("Expected validation error, got %v", err)
	}
	if err.Error() != "HospNo and name are required fields" {
		t.Errorf("Unexpected message: %q", err.Error())
	}
}

func TestCreateOPScreening_KeepsReservedFieldNames(t *testing.T) {
	var savedFields []models.OPCustomField
	repo := &mockOPScreeningRepo{
		createFunc: func(ctx context.Context, screening *models.OPScreening, fields []models.OPCustomField) error {
			savedFields = fields
			return nil
		},
	}
	service := NewOPScreeningService(repo, nil)

	// Outpatient custom fields use fieldName/fieldValue keys and do not
	// exclude names that collide with fixed columns.
	customFields := `[
		{"fieldName": "name", "fieldValue": "collides with fixed column"},
		{"fieldName": "waist_cm", "fieldValue": 82},
		{"fieldName": "", "fieldValue": "dropped"},
		42
	]`

	_, err := service.Create(context.Background(), OPScreeningInput{
		HospNo:           "H1001",
		Name:             "Jane Doe",
		CustomFieldsJSON: customFields,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if len(savedFields) != 2 {
		t.Fatalf("Expected 2 surviving fields, got %d: %+v", len(savedFields), savedFields)
	}
	if savedFields[0].FieldName != "name" {
		t.Errorf("Expected reserved-looking name to survive, got %+v", savedFields[0])
	}
	if savedFields[1].FieldName != "waist_cm" || savedFields[1].FieldValue != "82" {
		t.Errorf("Unexpected second field: %+v", savedFields[1])
	}
}

func TestCreateOPScreening_InvalidCustomFieldsJSON(t *testing.T) {
	service := NewOPScreeningService(&mockOPScreeningRepo{}, nil)

	_, err := service.Create(context.Background(), OPScreeningInput{
		HospNo:           "H1001",
		Name:             "Jane Doe",
		CustomFieldsJSON: "{{",
	})
	if !IsValidationError(err) {
		t.Fatalf("Expected validation error, got %v", err)
	}
	if err.Error() != "Invalid format for customFields" {
		t.Errorf("Unexpected message: %q", err.Error())
	}
}

func TestGetLatestOPScreening_DerivesReportPath(t *testing.T) {
	repo := &mockOPScreeningRepo{
		latestFunc: func(ctx context.Context, hospNo string) (*models.OPScreening, error) {
			return &models.OPScreening{
				ScreeningID:    5,
				HospNo:         hospNo,
				Name:           "Jane Doe",
				ReportFilename: "1700000000000-report.pdf",
			}, nil
		},
		customFieldsFunc: func(ctx context.Context, screeningID uint) ([]models.OPCustomField, error) {
			return []models.OPCustomField{{ScreeningID: screeningID, FieldName: "waist_cm", FieldValue: "82"}}, nil
		},
	}
	service := NewOPScreeningService(repo, nil)

	result, err := service.GetLatest(context.Background(), "H1001")
	if err != nil {
		t.Fatalf("GetLatest failed: %v", err)
	}

	expected := "uploads/op_reports/1700000000000-report.pdf"
	if result.Screening.ReportPath != expected {
		t.Errorf("Expected report path %q, got %q", expected, result.Screening.ReportPath)
	}
	if len(result.CustomFields) != 1 {
		t.Errorf("Expected 1 custom field, got %d", len(result.CustomFields))
	}
}

func TestGetLatestOPScreening_NoReportNoPath(t *testing.T) {
	repo := &mockOPScreeningRepo{
		latestFunc: func(ctx context.Context, hospNo string) (*models.OPScreening, error) {
			return &models.OPScreening{ScreeningID: 6, HospNo: hospNo, Name: "Jane Doe"}, nil
		},
		customFieldsFunc: func(ctx context.Context, screeningID uint) ([]models.OPCustomField, error) {
			return nil, nil
		},
	}
	service := NewOPScreeningService(repo, nil)

	result, err := service.GetLatest(context.Background(), "H1001")
	if err != nil {
		t.Fatalf("GetLatest failed: %v", err)
	}
	if result.Screening.ReportPath != "" {
		t.Errorf("Expected empty report path, got %q", result.Screening.ReportPath)
	}
}
