package rating

import (
	"context"

	"github.com/StoreRaterHQ/store-rating-api/internal/audit"
	domain "github.com/StoreRaterHQ/store-rating-api/internal/domain/rating"
	"github.com/StoreRaterHQ/store-rating-api/internal/httperr"
	"github.com/StoreRaterHQ/store-rating-api/internal/models"
)

// ======================================================
// INPUT / RESULT
// ======================================================

type SubmitRatingInput struct {
	UserID  uint
	StoreID uint
	Value   int
}

type SubmitRatingResult struct {
	Rating        *models.Rating
	AverageRating float64
}

// ======================================================
// USE CASE
// ======================================================

type SubmitRating struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewSubmitRating(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *SubmitRating {
	return &SubmitRating{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *SubmitRating) Execute(
	ctx context.Context,
	in SubmitRatingInput,
) (*SubmitRatingResult, error) {

	if err := domain.ValidateValue(in.Value); err != nil {
		return nil, err
	}

	var result SubmitRatingResult

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {

		exists, err := tx.StoreExists(ctx, in.StoreID)
		if err != nil {
			return err
		}
		if !exists {
			return httperr.ErrBusiness("store_not_found")
		}

		r := &models.Rating{
			UserID:  in.UserID,
			StoreID: in.StoreID,
			Rating:  in.Value,
		}

		if err := tx.Upsert(ctx, r); err != nil {
			return err
		}

		avg, err := tx.AverageForStore(ctx, in.StoreID)
		if err != nil {
			return err
		}

		result = SubmitRatingResult{Rating: r, AverageRating: avg}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.UserID,
		Action:   "rating_submitted",
		Entity:   "store",
		EntityID: &in.StoreID,
		Metadata: map[string]any{"rating": in.Value},
	})

	return &result, nil
}
