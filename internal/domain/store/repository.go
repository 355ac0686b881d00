package store

import (
	"context"

	"github.com/StoreRaterHQ/store-rating-api/internal/models"
)

type Repository interface {
	// Transaction runs fn against a repository bound to a single database
	// transaction. Store mutations and the role sync they trigger must
	// commit or roll back together.
	Transaction(
		ctx context.Context,
		fn func(tx Repository) error,
	) error

	// -------- Store --------
	GetStoreByID(
		ctx context.Context,
		id uint,
	) (*models.Store, error)

	EmailTaken(
		ctx context.Context,
		email string,
		excludeStoreID uint,
	) (bool, error)

	CreateStore(
		ctx context.Context,
		s *models.Store,
	) error

	SaveStore(
		ctx context.Context,
		s *models.Store,
	) error

	DeleteStore(
		ctx context.Context,
		id uint,
	) error

	// -------- Owner --------
	GetUserByID(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	CountStoresOwnedBy(
		ctx context.Context,
		userID uint,
	) (int64, error)

	SetUserRole(
		ctx context.Context,
		userID uint,
		role Role,
	) error
}
