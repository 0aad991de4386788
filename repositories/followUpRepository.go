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
	FollowUpCacheExpiry = 24 * time.Hour
)

// FollowUpRepository persists follow-up visit records. Follow-ups are the
// only mutable record type; Update replaces the full row.
type FollowUpRepository interface {
	Create(ctx context.Context, record *models.FollowUpRecord) error
	GetByPatient(ctx context.Context, ipNo string) ([]models.FollowUpRecord, error)
	GetByID(ctx context.Context, id uint) (*models.FollowUpRecord, error)
	GetAll(ctx context.Context) ([]models.FollowUpRecord, error)
	Update(ctx context.Context, record *models.FollowUpRecord) error
}

type followUpRepository struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewFollowUpRepository(db *gorm.DB, cache *cache.Cache) FollowUpRepository {
	return &followUpRepository{db: db, cache: cache}
}

func (r *followUpRepository) Create(ctx context.Context, record *models.FollowUpRecord) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return fmt.Errorf("failed to create follow-up record: %w", err)
	}
	r.invalidate(ctx, record.ID)
	return nil
}

func (r *followUpRepository) GetByPatient(ctx context.Context, ipNo string) ([]models.FollowUpRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var records []models.FollowUpRecord
	err := r.db.WithContext(ctx).
		Where("ip_no = ?", ipNo).
		Order("date DESC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get follow-up records: %w", err)
	}
	return records, nil
}

func (r *followUpRepository) GetByID(ctx context.Context, id uint) (*models.FollowUpRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := r.followUpCacheKey(id)
	cached, err := r.cache.Get(ctx, cacheKey)
	if err == nil && cached != "" {
		var record models.FollowUpRecord
		if err := json.Unmarshal([]byte(cached), &record); err == nil {
			return &record, nil
		}
	} else if err != nil {
		log.Printf("Failed to get follow-up record from cache: %v", err)
	}

	var record models.FollowUpRecord
	err = r.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get follow-up record: %w", err)
	}

	if recordJSON, err := json.Marshal(record); err == nil {
		if err := r.cache.Set(ctx, cacheKey, recordJSON, FollowUpCacheExpiry); err != nil {
			log.Printf("Failed to set follow-up record in cache: %v", err)
		}
	}

	return &record, nil
}

func (r *followUpRepository) GetAll(ctx context.Context) ([]models.FollowUpRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var records []models.FollowUpRecord
	err := r.db.WithContext(ctx).Order("date DESC").Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get all follow-up records: %w", err)
	}
	return records, nil
}

func (r *followUpRepository) Update(ctx context.Context, record *models.FollowUpRecord) error {
	if err := r.db.WithContext(ctx).Save(record).Error; err != nil {
		return fmt.Errorf("failed to update follow-up record: %w", err)
	}
	r.invalidate(ctx, record.ID)
	return nil
}

func (r *followUpRepository) invalidate(ctx context.Context, id uint) {
	if err := r.cache.Delete(ctx, r.followUpCacheKey(id)); err != nil {
		log.Printf("Failed to delete follow-up cache: %v", err)
	}
}

func (r *followUpRepository) followUpCacheKey(id uint) string {
	return fmt.Sprintf("followup_cache:%d", id)
}
