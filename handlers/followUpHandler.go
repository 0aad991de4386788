package handlers

import (
	"NutriCare/middlewares"
	"NutriCare/repositories"
	"NutriCare/services"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type FollowUpHandler struct {
	service *services.FollowUpService
}

func NewFollowUpHandler(service *services.FollowUpService) *FollowUpHandler {
	return &FollowUpHandler{service: service}
}

func followUpInputFromForm(c *gin.Context) services.FollowUpInput {
	input := services.FollowUpInput{
		IPNo:      c.PostForm("IPNo"),
		Name:      c.PostForm("name"),
		Date:      c.PostForm("date"),
		Diagnosis: c.PostForm("diagnosis"),
		Notes:     c.PostForm("notes"),
		Actions:   c.PostForm("actions"),
		Comments:  c.PostForm("comments"),
	}
	if file, err := c.FormFile("attachment"); err == nil {
		input.Attachment = file
	}
	return input
}

// CreateFollowUp creates a new follow-up record with an optional attachment.
func (h *FollowUpHandler) CreateFollowUp(c *gin.Context) {
	record, err := h.service.Create(c.Request.Context(), followUpInputFromForm(c))
	if err != nil {
		if services.IsValidationError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}
		middlewares.HttpError(c, "Failed to create follow-up record", http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": record})
}

// GetFollowUpsByPatient lists all follow-ups for one patient, newest first.
func (h *FollowUpHandler) GetFollowUpsByPatient(c *gin.Context) {
	records, err := h.service.GetByPatient(c.Request.Context(), c.Param("IPNo"))
	if err != nil {
		middlewares.HttpError(c, "Failed to fetch follow-up records", http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": records})
}

// GetFollowUpByID fetches a single follow-up record.
func (h *FollowUpHandler) GetFollowUpByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid ID"})
		return
	}

	record, err := h.service.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Follow-up record not found"})
			return
		}
		middlewares.HttpError(c, "Failed to fetch follow-up record", http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": record})
}

// GetAllFollowUps lists every follow-up record, newest first.
func (h *FollowUpHandler) GetAllFollowUps(c *gin.Context) {
	records, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		middlewares.HttpError(c, "Failed to fetch follow-up records", http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": records})
}

// UpdateFollowUp merges the submitted fields over the stored record; empty
// fields keep their stored values.
func (h *FollowUpHandler) UpdateFollowUp(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid ID"})
		return
	}

	record, err := h.service.Update(c.Request.Context(), uint(id), followUpInputFromForm(c))
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Follow-up record not found"})
		case services.IsValidationError(err):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		default:
			middlewares.HttpError(c, "Failed to update follow-up record", http.StatusInternalServerError, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": record})
}

// DownloadAttachment serves a stored follow-up attachment by filename.
func (h *FollowUpHandler) DownloadAttachment(c *gin.Context) {
	filename := c.Param("filename")

	path, exists := h.service.AttachmentPath(filename)
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "File not found"})
		return
	}

	c.FileAttachment(path, filename)
}

// ExportFollowUps downloads the follow-up register as an xlsx workbook.
func (h *FollowUpHandler) ExportFollowUps(c *gin.Context) {
	file, err := h.service.ExportAll(c.Request.Context())
	if err != nil {
		middlewares.HttpError(c, "Failed to export follow-up records", http.StatusInternalServerError, err)
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", `attachment; filename="follow_up_records.xlsx"`)
	if err := file.Write(c.Writer); err != nil {
		middlewares.HttpError(c, "Failed to write export", http.StatusInternalServerError, err)
	}
}
