package store

import (
	"context"

	"github.com/StoreRaterHQ/store-rating-api/internal/audit"
	domain "github.com/StoreRaterHQ/store-rating-api/internal/domain/store"
	"github.com/StoreRaterHQ/store-rating-api/internal/httperr"
	"github.com/StoreRaterHQ/store-rating-api/internal/models"
)

type UpdateStoreInput struct {
	Name    string
	Email   string
	Address string
	OwnerID uint

	ActorID uint
}

type UpdateStore struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateStore(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateStore {
	return &UpdateStore{
		repo:  repo,
		audit: audit,
	}
}

func (uc *UpdateStore) Execute(
	ctx context.Context,
	storeID uint,
	in UpdateStoreInput,
) (*models.Store, error) {

	var updated *models.Store
	var newOwnerTr, oldOwnerTr *roleTransition
	var oldOwnerID uint

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {

		s, err := tx.GetStoreByID(ctx, storeID)
		if err != nil {
			return httperr.ErrBusiness("store_not_found")
		}

		taken, err := tx.EmailTaken(ctx, in.Email, storeID)
		if err != nil {
			return err
		}
		if taken {
			return httperr.ErrBusiness("store_email_in_use")
		}

		if _, err := tx.GetUserByID(ctx, in.OwnerID); err != nil {
			return httperr.ErrBusiness("owner_not_found")
		}

		oldOwnerID = s.OwnerID

		s.Name = in.Name
		s.Email = in.Email
		s.Address = in.Address
		s.OwnerID = in.OwnerID

		if err := tx.SaveStore(ctx, s); err != nil {
			if httperr.IsDuplicateKey(err) {
				return httperr.ErrBusiness("store_email_in_use")
			}
			return err
		}

		// Roles are re-derived after the row is persisted so the counts
		// already reflect the reassignment. The old owner keeps
		// store_owner while any other store is still theirs.
		newOwnerTr, err = syncOwnerRole(ctx, tx, in.OwnerID)
		if err != nil {
			return err
		}

		if oldOwnerID != in.OwnerID {
			oldOwnerTr, err = syncOwnerRole(ctx, tx, oldOwnerID)
			if err != nil {
				return err
			}
		}

		updated = s
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ActorID,
		Action:   "store_updated",
		Entity:   "store",
		EntityID: &updated.ID,
	})
	dispatchRoleEvent(uc.audit, in.OwnerID, newOwnerTr)
	dispatchRoleEvent(uc.audit, oldOwnerID, oldOwnerTr)

	return updated, nil
}
