package handlers

import (
	"NutriCare/middlewares"
	"NutriCare/repositories"
	"NutriCare/services"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type OPScreeningHandler struct {
	service *services.OPScreeningService
}

func NewOPScreeningHandler(service *services.OPScreeningService) *OPScreeningHandler {
	return &OPScreeningHandler{service: service}
}

// CreateOPScreening handles the outpatient screening form submission.
func (h *OPScreeningHandler) CreateOPScreening(c *gin.Context) {
	input := services.OPScreeningInput{
		HospNo:           c.PostForm("HospNo"),
		Name:             c.PostForm("name"),
		Date:             c.PostForm("date"),
		Age:              c.PostForm("age"),
		Gender:           c.PostForm("gender"),
		BloodGroup:       c.PostForm("blood_group"),
		Height:           c.PostForm("height"),
		Weight:           c.PostForm("weight"),
		BMI:              c.PostForm("bmi"),
		Diagnosis:        c.PostForm("diagnosis"),
		FoodAllergies:    c.PostForm("food_allergies"),
		DietaryAdvice:    c.PostForm("dietary_advice"),
		DietitianName:    c.PostForm("dietitian_name"),
		CustomFieldsJSON: c.PostForm("customFields"),
	}
	if file, err := c.FormFile("report"); err == nil {
		input.Report = file
	}

	screeningID, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		if services.IsValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}
		middlewares.HttpError(c, "Failed to save OP Screening", http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":      true,
		"message":      "Screening and custom fields saved",
		"screening_id": screeningID,
	})
}

// GetOPScreening serves the latest screening for a hospital number together
// with its custom fields.
func (h *OPScreeningHandler) GetOPScreening(c *gin.Context) {
	hospNo := c.Param("HospNo")

	result, err := h.service.GetLatest(c.Request.Context(), hospNo)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "No screening record found"})
			return
		}
		middlewares.HttpError(c, "Failed to fetch screening data", http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"screening":    result.Screening,
		"customFields": result.CustomFields,
	})
}
