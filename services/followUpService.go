package services

import (
	"NutriCare/models"
	"NutriCare/repositories"
	"NutriCare/storage"
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/tealeg/xlsx"
)

// FollowUpInput carries a submitted follow-up visit. The same shape serves
// create and update; on update, empty fields fall back to the stored values.
type FollowUpInput struct {
	IPNo       string
	Name       string
	Date       string
	Diagnosis  string
	Notes      string
	Actions    string
	Comments   string
	Attachment *multipart.FileHeader
}

type FollowUpService struct {
	repository repositories.FollowUpRepository
	store      *storage.Store
}

func NewFollowUpService(repository repositories.FollowUpRepository, store *storage.Store) *FollowUpService {
	return &FollowUpService{repository: repository, store: store}
}

// Create validates and persists one follow-up record. A disallowed attachment
// type fails before any database write; a database failure after a successful
// file write removes the file again.
func (s *FollowUpService) Create(ctx context.Context, input FollowUpInput) (*models.FollowUpRecord, error) {
	if strings.TrimSpace(input.IPNo) == "" || strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Date) == "" {
		return nil, &ValidationError{Message: "HospNo, name, and date are required fields"}
	}

	var savedFilename string
	if input.Attachment != nil {
		var err error
		savedFilename, err = s.store.SaveFiltered(input.Attachment, storage.SubdirFollowUps, storage.AllowedFollowUpExts)
		if err != nil {
			if errors.Is(err, storage.ErrDisallowedType) {
				return nil, &ValidationError{Message: err.Error()}
			}
			return nil, fmt.Errorf("failed to store attachment: %w", err)
		}
	}

	record := models.FollowUpRecord{
		IPNo:       input.IPNo,
		Name:       input.Name,
		Date:       input.Date,
		Diagnosis:  input.Diagnosis,
		Notes:      input.Notes,
		Actions:    input.Actions,
		Comments:   input.Comments,
		Attachment: savedFilename,
	}

	if err := s.repository.Create(ctx, &record); err != nil {
		if savedFilename != "" {
			if rmErr := s.store.Remove(storage.SubdirFollowUps, savedFilename); rmErr != nil {
				log.Printf("Failed to remove orphaned attachment %s: %v", savedFilename, rmErr)
			}
		}
		return nil, err
	}

	return &record, nil
}

func (s *FollowUpService) GetByPatient(ctx context.Context, ipNo string) ([]models.FollowUpRecord, error) {
	records, err := s.repository.GetByPatient(ctx, ipNo)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []models.FollowUpRecord{}
	}
	return records, nil
}

func (s *FollowUpService) GetByID(ctx context.Context, id uint) (*models.FollowUpRecord, error) {
	return s.repository.GetByID(ctx, id)
}

func (s *FollowUpService) GetAll(ctx context.Context) ([]models.FollowUpRecord, error) {
	records, err := s.repository.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []models.FollowUpRecord{}
	}
	return records, nil
}

// Update merges the incoming fields over the stored record: an empty incoming
// value keeps the stored one. A cleared field is therefore indistinguishable
// from an omitted field; the merge is by value, not by presence. A newly
// uploaded attachment replaces the stored reference without deleting the old
// file.
func (s *FollowUpService) Update(ctx context.Context, id uint, input FollowUpInput) (*models.FollowUpRecord, error) {
	existing, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Attachment != nil {
		savedFilename, err := s.store.SaveFiltered(input.Attachment, storage.SubdirFollowUps, storage.AllowedFollowUpExts)
		if err != nil {
			if errors.Is(err, storage.ErrDisallowedType) {
				return nil, &ValidationError{Message: err.Error()}
			}
			return nil, fmt.Errorf("failed to store attachment: %w", err)
		}
		existing.Attachment = savedFilename
	}

	existing.IPNo = fallback(input.IPNo, existing.IPNo)
	existing.Name = fallback(input.Name, existing.Name)
	existing.Date = fallback(input.Date, existing.Date)
	existing.Diagnosis = fallback(input.Diagnosis, existing.Diagnosis)
	existing.Notes = fallback(input.Notes, existing.Notes)
	existing.Actions = fallback(input.Actions, existing.Actions)
	existing.Comments = fallback(input.Comments, existing.Comments)

	if err := s.repository.Update(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// ExportAll builds an xlsx workbook holding the full follow-up register.
func (s *FollowUpService) ExportAll(ctx context.Context) (*xlsx.File, error) {
	records, err := s.repository.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Follow-Ups")
	if err != nil {
		return nil, fmt.Errorf("failed to add sheet: %w", err)
	}

	header := sheet.AddRow()
	for _, title := range []string{"ID", "IPNo", "Name", "Date", "Diagnosis", "Notes", "Actions", "Comments", "Attachment"} {
		header.AddCell().SetValue(title)
	}

	for _, record := range records {
		row := sheet.AddRow()
		row.AddCell().SetValue(strconv.FormatUint(uint64(record.ID), 10))
		row.AddCell().SetValue(record.IPNo)
		row.AddCell().SetValue(record.Name)
		row.AddCell().SetValue(record.Date)
		row.AddCell().SetValue(record.Diagnosis)
		row.AddCell().SetValue(record.Notes)
		row.AddCell().SetValue(record.Actions)
		row.AddCell().SetValue(record.Comments)
		row.AddCell().SetValue(record.Attachment)
	}

	return file, nil
}

// AttachmentPath resolves a stored attachment filename to its on-disk
// location, reporting whether a backing file exists.
func (s *FollowUpService) AttachmentPath(filename string) (string, bool) {
	return s.store.Path(storage.SubdirFollowUps, filename), s.store.Exists(storage.SubdirFollowUps, filename)
}

func fallback(incoming, stored string) string {
	if incoming == "" {
		return stored
	}
	return incoming
}
