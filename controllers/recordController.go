package controllers

import (
	"NutriCare/handlers"

	"github.com/gin-gonic/gin"
)

// SetupRecordRoutes registers the patient, screening and follow-up routes.
func SetupRecordRoutes(
	router *gin.Engine,
	patientHandler *handlers.PatientHandler,
	ipScreeningHandler *handlers.IPScreeningHandler,
	opScreeningHandler *handlers.OPScreeningHandler,
	followUpHandler *handlers.FollowUpHandler,
) {
	router.POST("/api/op-patients/patient-registration", patientHandler.RegisterPatient)
	router.GET("/api/op-patients/:HospNo", patientHandler.GetPatientByHospNo)

	router.POST("/api/ipnutritional-screening/ip-nutritional-screening", ipScreeningHandler.CreateIPScreening)
	router.GET("/api/ipnutritional-screening/:IPNo", ipScreeningHandler.GetIPScreening)

	router.POST("/api/op-screening/nutritional-screening", opScreeningHandler.CreateOPScreening)
	router.GET("/api/op-screening/:HospNo", opScreeningHandler.GetOPScreening)

	router.POST("/api/follow-ups", followUpHandler.CreateFollowUp)
	router.GET("/api/follow-ups", followUpHandler.GetAllFollowUps)
	router.GET("/api/follow-ups/export", followUpHandler.ExportFollowUps)
	router.GET("/api/follow-ups/patient/:IPNo", followUpHandler.GetFollowUpsByPatient)
	router.GET("/api/follow-ups/attachment/:filename", followUpHandler.DownloadAttachment)
	router.GET("/api/follow-ups/:id", followUpHandler.GetFollowUpByID)
	router.PUT("/api/follow-ups/:id", followUpHandler.UpdateFollowUp)
}
