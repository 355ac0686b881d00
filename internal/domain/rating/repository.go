package rating

import (
	"context"

	"github.com/StoreRaterHQ/store-rating-api/internal/models"
)

type Repository interface {
	// Transaction binds fn to a single database transaction so the written
	// row and the recomputed average stay consistent with each other.
	Transaction(
		ctx context.Context,
		fn func(tx Repository) error,
	) error

	// -------- Store --------
	StoreExists(
		ctx context.Context,
		storeID uint,
	) (bool, error)

	// -------- Rating --------
	Get(
		ctx context.Context,
		userID uint,
		storeID uint,
	) (*models.Rating, error)

	// Upsert inserts the rating or, when a row for (user, store) already
	// exists, updates its value in place. The uniqueness check and the
	// insert-or-update decision are atomic.
	Upsert(
		ctx context.Context,
		r *models.Rating,
	) error

	Delete(
		ctx context.Context,
		userID uint,
		storeID uint,
	) error

	// AverageForStore recomputes the mean over all current rows for the
	// store. Returns 0 when no ratings exist.
	AverageForStore(
		ctx context.Context,
		storeID uint,
	) (float64, error)
}
