package store

import (
	"context"

	"github.com/StoreRaterHQ/store-rating-api/internal/audit"
	domain "github.com/StoreRaterHQ/store-rating-api/internal/domain/store"
)

type roleTransition struct {
	From domain.Role
	To   domain.Role
}

// syncOwnerRole re-derives the user's role from their current owned-store
// count and persists it when it changed. Every store mutation ends with this
// check so the role column can never drift from ownership reality.
func syncOwnerRole(
	ctx context.Context,
	repo domain.Repository,
	userID uint,
) (*roleTransition, error) {

	user, err := repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	owned, err := repo.CountStoresOwnedBy(ctx, userID)
	if err != nil {
		return nil, err
	}

	current := domain.Role(user.Role)
	next := domain.DeriveRole(current, owned)
	if next == current {
		return nil, nil
	}

	if err := repo.SetUserRole(ctx, userID, next); err != nil {
		return nil, err
	}

	return &roleTransition{From: current, To: next}, nil
}

func dispatchRoleEvent(d *audit.Dispatcher, userID uint, tr *roleTransition) {
	if tr == nil {
		return
	}

	action := "owner_demoted"
	if tr.To == domain.RoleStoreOwner {
		action = "owner_promoted"
	}

	d.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   action,
		Entity:   "user",
		EntityID: &userID,
		Metadata: map[string]any{
			"from": string(tr.From),
			"to":   string(tr.To),
		},
	})
}
