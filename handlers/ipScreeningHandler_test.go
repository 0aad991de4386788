package handlers

import (
	"NutriCare/models"
	"NutriCare/repositories"
	"NutriCare/services"
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

type mockIPScreeningRepo struct {
	createFunc       func(ctx context.Context, screening *models.IPScreening, fields []models.IPCustomField) error
	latestFunc       func(ctx context.Context, ipNo string) (*models.IPScreening, error)
	customFieldsFunc func(ctx context.Context, screeningID uint) ([]models.IPCustomField, error)
}

func (m *mockIPScreeningRepo) Create(ctx context.Context, screening *models.IPScreening, fields []models.IPCustomField) error {
	return m.createFunc(ctx, screening, fields)
}

func (m *mockIPScreeningRepo) LatestByIPNo(ctx context.Context, ipNo string) (*models.IPScreening, error) {
	return m.latestFunc(ctx, ipNo)
}

func (m *mockIPScreeningRepo) CustomFields(ctx context.Context, screeningID uint) ([]models.IPCustomField, error) {
	return m.customFieldsFunc(ctx, screeningID)
}

func newIPScreeningRouter(repo repositories.IPScreeningRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewIPScreeningHandler(services.NewIPScreeningService(repo, nil))
	router := gin.New()
	router.POST("/api/ipnutritional-screening/ip-nutritional-screening", handler.CreateIPScreening)
	router.GET("/api/ipnutritional-screening/:IPNo", handler.GetIPScreening)
	return router
}

func performForm(t *testing.T, router *gin.Engine, path string, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("Failed to write form field %s: %v", key, err)
		}
	}
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestCreateIPScreening_Created(t *testing.T) {
	var saved *models.IPScreening
	repo := &mockIPScreeningRepo{
		createFunc: func(ctx context.Context, screening *models.IPScreening, fields []models.IPCustomField) error {
			screening.ScreeningID = 11
			saved = screening
			return nil
		},
	}
	router := newIPScreeningRouter(repo)

	recorder := performForm(t, router, "/api/ipnutritional-screening/ip-nutritional-screening", map[string]string{
		"IPNo":             "IP1001",
		"name":             "John Doe",
		"therapeutic_diet": `{"diet_renal": true}`,
	})

	if recorder.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", recorder.Code, recorder.Body.String())
	}
	body := decodeBody(t, recorder)
	if body["message"] != "IP Nutritional Screening saved successfully" {
		t.Errorf("Unexpected message: %v", body["message"])
	}
	if body["screening_id"] != float64(11) {
		t.Errorf("Expected screening_id 11, got %v", body["screening_id"])
	}
	if saved.Renal != 1 {
		t.Errorf("Expected renal flag persisted, got %+v", saved.DietFlags)
	}
}

func TestCreateIPScreening_MissingName(t *testing.T) {
	router := newIPScreeningRouter(&mockIPScreeningRepo{})

	recorder := performForm(t, router, "/api/ipnutritional-screening/ip-nutritional-screening", map[string]string{
		"IPNo": "IP1001",
	})

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", recorder.Code)
	}
	body := decodeBody(t, recorder)
	if body["error"] != "IPNo and name are required fields" {
		t.Errorf("Unexpected error message: %v", body["error"])
	}
}

func TestGetIPScreening_NotFound(t *testing.T) {
	repo := &mockIPScreeningRepo{
		latestFunc: func(ctx context.Context, ipNo string) (*models.IPScreening, error) {
			return nil, repositories.ErrNotFound
		},
	}
	router := newIPScreeningRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/ipnutritional-screening/IP9999", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d", recorder.Code)
	}
	body := decodeBody(t, recorder)
	if body["error"] != "No screening data found for this IPNo." {
		t.Errorf("Unexpected error message: %v", body["error"])
	}
}

func TestGetIPScreening_NestsDietAndHidesFlagColumns(t *testing.T) {
	repo := &mockIPScreeningRepo{
		latestFunc: func(ctx context.Context, ipNo string) (*models.IPScreening, error) {
			return &models.IPScreening{
				ScreeningID: 3,
				IPNo:        ipNo,
				Name:        "John Doe",
				DietFlags:   models.DietFlags{Diabetic: 1, LiquidClear: 1},
			}, nil
		},
		customFieldsFunc: func(ctx context.Context, screeningID uint) ([]models.IPCustomField, error) {
			return []models.IPCustomField{{ScreeningID: screeningID, FieldName: "grip_strength", FieldValue: "strong"}}, nil
		},
	}
	router := newIPScreeningRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/ipnutritional-screening/IP1001", nil)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}

	var body struct {
		Screening    map[string]json.RawMessage `json:"screening"`
		CustomFields []map[string]string        `json:"customFields"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	// Flat flag columns stay out of the read shape; only the nested object
	// is exposed.
	if _, present := body.Screening["diet_diabetic"]; present {
		t.Error("Expected no flat diet_diabetic key in screening")
	}
	var diet map[string]bool
	if err := json.Unmarshal(body.Screening["therapeuticDiet"], &diet); err != nil {
		t.Fatalf("Failed to decode therapeuticDiet: %v", err)
	}
	if !diet["diabetic"] || !diet["liquidClear"] {
		t.Errorf("Expected diabetic and liquidClear true, got %v", diet)
	}
	if diet["renal"] {
		t.Errorf("Expected renal false, got %v", diet)
	}

	if len(body.CustomFields) != 1 || body.CustomFields[0]["field_name"] != "grip_strength" {
		t.Errorf("Unexpected custom fields: %v", body.CustomFields)
	}
}
