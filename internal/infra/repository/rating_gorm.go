package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/StoreRaterHQ/store-rating-api/internal/domain/rating"
	"github.com/StoreRaterHQ/store-rating-api/internal/models"
)

type RatingGormRepository struct {
	db *gorm.DB
}

func NewRatingGormRepository(db *gorm.DB) *RatingGormRepository {
	return &RatingGormRepository{db: db}
}

func (r *RatingGormRepository) Transaction(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&RatingGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Store
// --------------------------------------------------

func (r *RatingGormRepository) StoreExists(
	ctx context.Context,
	storeID uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Store{}).
		Where("id = ?", storeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// --------------------------------------------------
// Rating
// --------------------------------------------------

func (r *RatingGormRepository) Get(
	ctx context.Context,
	userID uint,
	storeID uint,
) (*models.Rating, error) {

	var rt models.Rating
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND store_id = ?", userID, storeID).
		First(&rt).Error; err != nil {
		return nil, err
	}
	return &rt, nil
}

// Upsert relies on the (user_id, store_id) unique index: concurrent
// resubmissions can never produce a second row for the same pair.
func (r *RatingGormRepository) Upsert(
	ctx context.Context,
	rt *models.Rating,
) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "store_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"rating":     rt.Rating,
				"updated_at": time.Now(),
			}),
		}).
		Create(rt).Error
}

func (r *RatingGormRepository) Delete(
	ctx context.Context,
	userID uint,
	storeID uint,
) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND store_id = ?", userID, storeID).
		Delete(&models.Rating{}).Error
}

func (r *RatingGormRepository) AverageForStore(
	ctx context.Context,
	storeID uint,
) (float64, error) {

	var avg float64
	if err := r.db.WithContext(ctx).
		Model(&models.Rating{}).
		Where("store_id = ?", storeID).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&avg).Error; err != nil {
		return 0, err
	}
	return avg, nil
}

// Compile-time check
var _ domain.Repository = (*RatingGormRepository)(nil)
