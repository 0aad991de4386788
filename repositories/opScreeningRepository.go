package repositories

import (
	"NutriCare/cache"
	"NutriCare/models"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"
)

// OPScreeningRepository is the outpatient counterpart of
// IPScreeningRepository.
type OPScreeningRepository interface {
	Create(ctx context.Context, screening *models.OPScreening, fields []models.OPCustomField) error
	LatestByHospNo(ctx context.Context, hospNo string) (*models.OPScreening, error)
	CustomFields(ctx context.Context, screeningID uint) ([]models.OPCustomField, error)
}

type opScreeningRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewOPScreeningRepository(db *gorm.DB, cache *cache.Cache) OPScreeningRepository {
	return &opScreeningRepository{db: db, cache: cache}
}

func (r *opScreeningRepository) Create(ctx context.Context, screening *models.OPScreening, fields []models.OPCustomField) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(screening).Error; err != nil {
			return fmt.Errorf("failed to create OP screening: %w", err)
		}
		if len(fields) > 0 {
			for i := range fields {
				fields[i].ScreeningID = screening.ScreeningID
			}
			if err := tx.CreateInBatches(fields, len(fields)).Error; err != nil {
				return fmt.Errorf("failed to create custom fields: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := r.cache.Delete(ctx, r.screeningCacheKey(screening.HospNo)); err != nil {
		log.Printf("Failed to delete OP screening cache: %v", err)
	}
	return nil
}

func (r *opScreeningRepository) LatestByHospNo(ctx context.Context, hospNo string) (*models.OPScreening, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.screeningCacheKey(hospNo)
	cached, err := r.cache.Get(ctx, cacheKey)
	if err == nil && cached != "" {
		var screening models.OPScreening
		if err := json.Unmarshal([]byte(cached), &screening); err == nil {
			return &screening, nil
		}
	} else if err != nil {
		log.Printf("Failed to get OP screening from cache: %v", err)
	}

	var screening models.OPScreening
	err = r.db.WithContext(ctx).
		Where("hosp_no = ?", hospNo).
		Order("screening_id DESC").
		First(&screening).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get OP screening: %w", err)
	}

	if screeningJSON, err := json.Marshal(screening); err == nil {
		if err := r.cache.Set(ctx, cacheKey, screeningJSON, ScreeningCacheExpiry); err != nil {
			log.Printf("Failed to set OP screening in cache: %v", err)
		}
	}

	return &screening, nil
}

func (r *opScreeningRepository) CustomFields(ctx context.Context, screeningID uint) ([]models.OPCustomField, error) {
	var fields []models.OPCustomField
	err := r.db.WithContext(ctx).
		Where("screening_id = ?", screeningID).
		Find(&fields).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get custom fields: %w", err)
	}
	return fields, nil
}

func (r *opScreeningRepository) screeningCacheKey(hospNo string) string {
	return fmt.Sprintf("op_screening_cache:%s", hospNo)
}
