package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/StoreRaterHQ/store-rating-api/internal/domain/store"
	"github.com/StoreRaterHQ/store-rating-api/internal/models"
)

type StoreGormRepository struct {
	db *gorm.DB
}

func NewStoreGormRepository(db *gorm.DB) *StoreGormRepository {
	return &StoreGormRepository{db: db}
}

func (r *StoreGormRepository) Transaction(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&StoreGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Store
// --------------------------------------------------

func (r *StoreGormRepository) GetStoreByID(
	ctx context.Context,
	id uint,
) (*models.Store, error) {

	var s models.Store
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *StoreGormRepository) EmailTaken(
	ctx context.Context,
	email string,
	excludeStoreID uint,
) (bool, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Store{}).
		Where("email = ?", email)

	if excludeStoreID != 0 {
		q = q.Where("id <> ?", excludeStoreID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *StoreGormRepository) CreateStore(
	ctx context.Context,
	s *models.Store,
) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *StoreGormRepository) SaveStore(
	ctx context.Context,
	s *models.Store,
) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *StoreGormRepository) DeleteStore(
	ctx context.Context,
	id uint,
) error {
	return r.db.WithContext(ctx).Delete(&models.Store{}, id).Error
}

// --------------------------------------------------
// Owner
// --------------------------------------------------

func (r *StoreGormRepository) GetUserByID(
	ctx context.Context,
	id uint,
) (*models.User, error) {

	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *StoreGormRepository) CountStoresOwnedBy(
	ctx context.Context,
	userID uint,
) (int64, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Store{}).
		Where("owner_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *StoreGormRepository) SetUserRole(
	ctx context.Context,
	userID uint,
	role domain.Role,
) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("role", string(role)).Error
}

// Compile-time check
var _ domain.Repository = (*StoreGormRepository)(nil)
