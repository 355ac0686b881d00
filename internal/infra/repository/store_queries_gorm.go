package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/StoreRaterHQ/store-rating-api/internal/dto"
	"github.com/StoreRaterHQ/store-rating-api/internal/models"
)

// StoreQueries is the read side: every call aggregates over the current rows,
// nothing is cached or maintained incrementally.
type StoreQueries struct {
	db *gorm.DB
}

func NewStoreQueries(db *gorm.DB) *StoreQueries {
	return &StoreQueries{db: db}
}

const summaryColumns = `s.id, s.name, s.email, s.address, s.owner_id,
	COALESCE(AVG(r.rating), 0) AS average_rating,
	COUNT(r.id) AS rating_count`

// --------------------------------------------------
// Per-store summary
// --------------------------------------------------

func (q *StoreQueries) Summary(
	ctx context.Context,
	storeID uint,
	viewerID uint,
) (*dto.StoreSummary, error) {

	var row dto.StoreSummary
	res := q.db.WithContext(ctx).
		Table("stores AS s").
		Select(summaryColumns+`,
			(SELECT rating FROM ratings WHERE user_id = ? AND store_id = s.id) AS user_rating`,
			viewerID).
		Joins("LEFT JOIN ratings r ON r.store_id = s.id").
		Where("s.id = ?", storeID).
		Group("s.id").
		Scan(&row)

	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &row, nil
}

// --------------------------------------------------
// Store list
// --------------------------------------------------

func (q *StoreQueries) List(
	ctx context.Context,
	viewerID uint,
	name string,
	address string,
) ([]dto.StoreSummary, error) {

	query := q.db.WithContext(ctx).
		Table("stores AS s").
		Select(summaryColumns+`,
			(SELECT rating FROM ratings WHERE user_id = ? AND store_id = s.id) AS user_rating`,
			viewerID).
		Joins("LEFT JOIN ratings r ON r.store_id = s.id")

	if name != "" {
		query = query.Where("s.name ILIKE ?", "%"+name+"%")
	}
	if address != "" {
		query = query.Where("s.address ILIKE ?", "%"+address+"%")
	}

	rows := []dto.StoreSummary{}
	if err := query.
		Group("s.id").
		Order("s.name ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// --------------------------------------------------
// Admin dashboard
// --------------------------------------------------

func (q *StoreQueries) AdminDashboard(ctx context.Context) (*dto.AdminDashboard, error) {

	var d dto.AdminDashboard
	db := q.db.WithContext(ctx)

	if err := db.Model(&models.User{}).Count(&d.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Store{}).Count(&d.TotalStores).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Rating{}).Count(&d.TotalRatings).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&models.Rating{}).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&d.AverageRating).Error; err != nil {
		return nil, err
	}

	// Equal averages rank by rating count so the top 5 stays deterministic.
	d.TopStores = []dto.TopStore{}
	if err := db.
		Table("stores AS s").
		Select(`s.id, s.name, s.email, s.address,
			COALESCE(AVG(r.rating), 0) AS average_rating,
			COUNT(r.id) AS rating_count`).
		Joins("LEFT JOIN ratings r ON r.store_id = s.id").
		Group("s.id").
		Order("average_rating DESC, rating_count DESC").
		Limit(5).
		Scan(&d.TopStores).Error; err != nil {
		return nil, err
	}

	return &d, nil
}

// --------------------------------------------------
// Owner dashboard
// --------------------------------------------------

func (q *StoreQueries) OwnerDashboard(
	ctx context.Context,
	ownerID uint,
) (*dto.OwnerDashboard, error) {

	stores, err := q.StoresOwnedBy(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if len(stores) == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	primary := stores[0]

	raters := []dto.StoreRater{}
	if err := q.db.WithContext(ctx).
		Table("ratings AS r").
		Select(`u.id AS user_id, u.name, u.email, r.rating, r.created_at AS rating_date`).
		Joins("JOIN users u ON u.id = r.user_id").
		Where("r.store_id = ?", primary.ID).
		Order("r.created_at DESC").
		Scan(&raters).Error; err != nil {
		return nil, err
	}

	return &dto.OwnerDashboard{
		Store:  primary,
		Stores: stores,
		Raters: raters,
	}, nil
}

// StoresOwnedBy lists the owner's stores with aggregates, name ascending.
// Also backs the admin user-detail view for store_owner accounts.
func (q *StoreQueries) StoresOwnedBy(
	ctx context.Context,
	ownerID uint,
) ([]dto.StoreSummary, error) {

	rows := []dto.StoreSummary{}
	if err := q.db.WithContext(ctx).
		Table("stores AS s").
		Select(summaryColumns).
		Joins("LEFT JOIN ratings r ON r.store_id = s.id").
		Where("s.owner_id = ?", ownerID).
		Group("s.id").
		Order("s.name ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
