package store

import (
	"context"

	"github.com/StoreRaterHQ/store-rating-api/internal/audit"
	domain "github.com/StoreRaterHQ/store-rating-api/internal/domain/store"
	"github.com/StoreRaterHQ/store-rating-api/internal/httperr"
	"github.com/StoreRaterHQ/store-rating-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateStoreInput struct {
	Name    string
	Email   string
	Address string
	OwnerID uint

	ActorID uint
}

// ======================================================
// USE CASE
// ======================================================

type CreateStore struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateStore(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateStore {
	return &CreateStore{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateStore) Execute(
	ctx context.Context,
	in CreateStoreInput,
) (*models.Store, error) {

	var created *models.Store
	var transition *roleTransition

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {

		taken, err := tx.EmailTaken(ctx, in.Email, 0)
		if err != nil {
			return err
		}
		if taken {
			return httperr.ErrBusiness("store_email_in_use")
		}

		if _, err := tx.GetUserByID(ctx, in.OwnerID); err != nil {
			return httperr.ErrBusiness("owner_not_found")
		}

		s := &models.Store{
			Name:    in.Name,
			Email:   in.Email,
			Address: in.Address,
			OwnerID: in.OwnerID,
		}

		if err := tx.CreateStore(ctx, s); err != nil {
			// The pre-check can lose a race; the unique index settles it.
			if httperr.IsDuplicateKey(err) {
				return httperr.ErrBusiness("store_email_in_use")
			}
			return err
		}

		transition, err = syncOwnerRole(ctx, tx, in.OwnerID)
		if err != nil {
			return err
		}

		created = s
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.ActorID,
		Action:   "store_created",
		Entity:   "store",
		EntityID: &created.ID,
	})
	dispatchRoleEvent(uc.audit, in.OwnerID, transition)

	return created, nil
}
