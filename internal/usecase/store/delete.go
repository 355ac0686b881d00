package store

import (
	"context"

	"github.com/StoreRaterHQ/store-rating-api/internal/audit"
	domain "github.com/StoreRaterHQ/store-rating-api/internal/domain/store"
	"github.com/StoreRaterHQ/store-rating-api/internal/httperr"
)

type DeleteStore struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteStore(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteStore {
	return &DeleteStore{
		repo:  repo,
		audit: audit,
	}
}

func (uc *DeleteStore) Execute(
	ctx context.Context,
	storeID uint,
	actorID uint,
) error {

	var ownerID uint
	var transition *roleTransition

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {

		s, err := tx.GetStoreByID(ctx, storeID)
		if err != nil {
			return httperr.ErrBusiness("store_not_found")
		}

		ownerID = s.OwnerID

		if err := tx.DeleteStore(ctx, storeID); err != nil {
			return err
		}

		transition, err = syncOwnerRole(ctx, tx, ownerID)
		return err
	})
	if err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &actorID,
		Action:   "store_deleted",
		Entity:   "store",
		EntityID: &storeID,
	})
	dispatchRoleEvent(uc.audit, ownerID, transition)

	return nil
}
