package repositories

import (
	"NutriCare/cache"
	"NutriCare/database"
	"NutriCare/models"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PatientCacheExpiry = 24 * time.Hour
)

// PatientRepository persists outpatient identity records.
type PatientRepository interface {
	Create(ctx context.Context, patient *models.Patient) error
	GetByHospNo(ctx context.Context, hospNo string) (*models.Patient, error)
}

type patientRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewPatientRepository(db *gorm.DB, cache *cache.Cache) PatientRepository {
	return &patientRepository{db: db, cache: cache}
}

func (r *patientRepository) Create(ctx context.Context, patient *models.Patient) error {
	lockKey := fmt.Sprintf("patient_lock:%s", patient.HospNo)
	lockValue := uuid.New().String()

	// Retry logic for acquiring lock
	maxRetries := 3
	retryDelay := 2 * time.Second
	var locked bool
	var err error
	for i := 0; i < maxRetries; i++ {
		locked, err = database.NewLock(ctx, lockKey, lockValue, 10*time.Second)
		if err == nil && locked {
			break
		}
		if i < maxRetries-1 {
			time.Sleep(retryDelay)
		}
	}
	if !locked {
		return fmt.Errorf("failed to acquire lock after retries: %w", err)
	}
	defer func() {
		if err := database.ReleaseLock(ctx, lockKey, lockValue); err != nil {
			log.Printf("Failed to release lock: %v", err)
		}
	}()

	if err := r.db.WithContext(ctx).Create(patient).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create patient: %w", err)
	}

	if err := r.cache.Delete(ctx, r.patientCacheKey(patient.HospNo)); err != nil {
		log.Printf("Failed to delete patient cache: %v", err)
	}
	return nil
}

func (r *patientRepository) GetByHospNo(ctx context.Context, hospNo string) (*models.Patient, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	hospNo = strings.TrimSpace(hospNo)

	cacheKey := r.patientCacheKey(hospNo)
	cached, err := r.cache.Get(ctx, cacheKey)
	if err == nil && cached != "" {
		var patient models.Patient
		if err := json.Unmarshal([]byte(cached), &patient); err == nil {
			return &patient, nil
		}
	} else if err != nil {
		log.Printf("Failed to get patient from cache: %v", err)
	}

	var patient models.Patient
	err = r.db.WithContext(ctx).Where("hosp_no = ?", hospNo).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}

	if patientJSON, err := json.Marshal(patient); err == nil {
		if err := r.cache.Set(ctx, cacheKey, patientJSON, PatientCacheExpiry); err != nil {
			log.Printf("Failed to set patient in cache: %v", err)
		}
	}

	return &patient, nil
}

func (r *patientRepository) patientCacheKey(hospNo string) string {
	return fmt.Sprintf("patient_cache:%s", hospNo)
}
