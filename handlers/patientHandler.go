package handlers

import (
	"NutriCare/middlewares"
	"NutriCare/models"
	"NutriCare/repositories"
	"NutriCare/services"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type PatientHandler struct {
	service *services.PatientService
}

func NewPatientHandler(service *services.PatientService) *PatientHandler {
	return &PatientHandler{service: service}
}

// RegisterPatient creates a new patient identity record.
func (h *PatientHandler) RegisterPatient(c *gin.Context) {
	var patient models.Patient
	if err := c.ShouldBindJSON(&patient); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}

	if err := h.service.Register(c.Request.Context(), &patient); err != nil {
		switch {
		case services.IsValidationError(err):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		case errors.Is(err, repositories.ErrDuplicate):
			c.JSON(http.StatusConflict, gin.H{"success": false, "error": "Hospital Number already exists."})
		default:
			middlewares.HttpError(c, "Failed to register patient", http.StatusInternalServerError, err)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":   true,
		"message":   "Patient saved successfully",
		"patientId": patient.ID,
	})
}

// GetPatientByHospNo fetches a patient by hospital number.
func (h *PatientHandler) GetPatientByHospNo(c *gin.Context) {
	hospNo := c.Param("HospNo")

	patient, err := h.service.GetByHospNo(c.Request.Context(), hospNo)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Patient not found"})
			return
		}
		middlewares.HttpError(c, "Failed to fetch patient", http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "patient": patient})
}
