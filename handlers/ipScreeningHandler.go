package handlers

import (
	"NutriCare/middlewares"
	"NutriCare/repositories"
	"NutriCare/services"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type IPScreeningHandler struct {
	service *services.IPScreeningService
}

func NewIPScreeningHandler(service *services.IPScreeningService) *IPScreeningHandler {
	return &IPScreeningHandler{service: service}
}

// CreateIPScreening handles the inpatient screening form submission. The
// payload arrives as multipart form data; therapeutic_diet and customFields
// are serialized JSON values, attachment_path an optional file.
func (h *IPScreeningHandler) CreateIPScreening(c *gin.Context) {
	input := services.IPScreeningInput{
		IPNo:                 c.PostForm("IPNo"),
		HospNo:               c.PostForm("HospNo"),
		Name:                 c.PostForm("name"),
		Ward:                 c.PostForm("ward"),
		Date:                 c.PostForm("date"),
		Age:                  c.PostForm("age"),
		Gender:               c.PostForm("gender"),
		BloodGroup:           c.PostForm("blood_group"),
		Height:               c.PostForm("height"),
		Weight:               c.PostForm("weight"),
		BMI:                  c.PostForm("bmi"),
		Diagnosis:            c.PostForm("diagnosis"),
		FoodAllergies:        c.PostForm("food_allergies"),
		DietaryAdvice:        c.PostForm("dietary_advice"),
		FeedRate:             c.PostForm("feed_rate"),
		NutrientRequirements: c.PostForm("nutrient_requirements"),
		OtherDietNote:        c.PostForm("other_diet_note"),
		DietitianName:        c.PostForm("dietitian_name"),
		TherapeuticDietJSON:  c.PostForm("therapeutic_diet"),
		CustomFieldsJSON:     c.PostForm("customFields"),
	}
	if file, err := c.FormFile("attachment_path"); err == nil {
		input.Attachment = file
	}

	screeningID, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		if services.IsValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}
		middlewares.HttpError(c, "Failed to save IP Screening", http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":      true,
		"message":      "IP Nutritional Screening saved successfully",
		"screening_id": screeningID,
	})
}

// GetIPScreening serves the latest screening for an IP number together with
// its custom fields and the nested therapeutic diet object.
func (h *IPScreeningHandler) GetIPScreening(c *gin.Context) {
	ipNo := c.Param("IPNo")

	result, err := h.service.GetLatest(c.Request.Context(), ipNo)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "No screening data found for this IPNo."})
			return
		}
		middlewares.HttpError(c, "Failed to fetch IP screening data", http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"screening":    result.Screening,
		"customFields": result.CustomFields,
	})
}
