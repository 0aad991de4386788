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

const (
	ScreeningCacheExpiry = 24 * time.Hour
)

// IPScreeningRepository persists inpatient screenings and their custom
// fields. Screenings are immutable, so only create and read operations exist.
type IPScreeningRepository interface {
	Create(ctx context.Context, screening *models.IPScreening, fields []models.IPCustomField) error
	LatestByIPNo(ctx context.Context, ipNo string) (*models.IPScreening, error)
	CustomFields(ctx context.Context, screeningID uint) ([]models.IPCustomField, error)
}

type ipScreeningRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewIPScreeningRepository(db *gorm.DB, cache *cache.Cache) IPScreeningRepository {
	return &ipScreeningRepository{db: db, cache: cache}
}

// Create inserts the screening row and batch-inserts its custom fields in a
// single transaction. A custom-field failure rolls the screening back so no
// orphaned parent row is left behind.
func (r *ipScreeningRepository) Create(ctx context.Context, screening *models.IPScreening, fields []models.IPCustomField) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(screening).Error; err != nil {
			return fmt.Errorf("failed to create IP screening: %w", err)
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

	if err := r.cache.Delete(ctx, r.screeningCacheKey(screening.IPNo)); err != nil {
		log.Printf("Failed to delete IP screening cache: %v", err)
	}
	return nil
}

func (r *ipScreeningRepository) LatestByIPNo(ctx context.Context, ipNo string) (*models.IPScreening, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.screeningCacheKey(ipNo)
	cached, err := r.cache.Get(ctx, cacheKey)
	if err == nil && cached != "" {
		var screening models.IPScreening
		if err := json.Unmarshal([]byte(cached), &screening); err == nil {
			return &screening, nil
		}
	} else if err != nil {
		log.Printf("Failed to get IP screening from cache: %v", err)
	}

	var screening models.IPScreening
	err = r.db.WithContext(ctx).
		Where("ip_no = ?", ipNo).
		Order("screening_id DESC").
		First(&screening).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get IP screening: %w", err)
	}

	if screeningJSON, err := json.Marshal(screening); err == nil {
		if err := r.cache.Set(ctx, cacheKey, screeningJSON, ScreeningCacheExpiry); err != nil {
			log.Printf("Failed to set IP screening in cache: %v", err)
		}
	}

	return &screening, nil
}

func (r *ipScreeningRepository) CustomFields(ctx context.Context, screeningID uint) ([]models.IPCustomField, error) {
	var fields []models.IPCustomField
	err := r.db.WithContext(ctx).
		Where("screening_id = ?", screeningID).
		Find(&fields).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get custom fields: %w", err)
	}
	return fields, nil
}

func (r *ipScreeningRepository) screeningCacheKey(ipNo string) string {
	return fmt.Sprintf("ip_screening_cache:%s", ipNo)
}
