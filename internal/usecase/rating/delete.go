package rating

import (
	"context"

	"github.com/StoreRaterHQ/store-rating-api/internal/audit"
	domain "github.com/StoreRaterHQ/store-rating-api/internal/domain/rating"
	"github.com/StoreRaterHQ/store-rating-api/internal/httperr"
)

type DeleteRating struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteRating(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteRating {
	return &DeleteRating{
		repo:  repo,
		audit: audit,
	}
}

// Execute removes the caller's rating for the store and returns the
// recomputed average (0 when the store has no ratings left).
func (uc *DeleteRating) Execute(
	ctx context.Context,
	userID uint,
	storeID uint,
) (float64, error) {

	var average float64

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {

		if _, err := tx.Get(ctx, userID, storeID); err != nil {
			return httperr.ErrBusiness("rating_not_found")
		}

		if err := tx.Delete(ctx, userID, storeID); err != nil {
			return err
		}

		avg, err := tx.AverageForStore(ctx, storeID)
		if err != nil {
			return err
		}

		average = avg
		return nil
	})
	if err != nil {
		return 0, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "rating_deleted",
		Entity:   "store",
		EntityID: &storeID,
	})

	return average, nil
}
