package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/StoreRaterHQ/store-rating-api/internal/audit"
	domain "github.com/StoreRaterHQ/store-rating-api/internal/domain/store"
	"github.com/StoreRaterHQ/store-rating-api/internal/httperr"
	"github.com/StoreRaterHQ/store-rating-api/internal/models"
)

// ------------------------------------------------------
// Fakes
// ------------------------------------------------------

type fakeStoreRepo struct {
	users  map[uint]*models.User
	stores map[uint]*models.Store
	nextID uint
}

func newFakeStoreRepo(users ...*models.User) *fakeStoreRepo {
	f := &fakeStoreRepo{
		users:  make(map[uint]*models.User),
		stores: make(map[uint]*models.Store),
	}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeStoreRepo) Transaction(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return fn(f)
}

func (f *fakeStoreRepo) GetStoreByID(_ context.Context, id uint) (*models.Store, error) {
	s, ok := f.stores[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *s
	return &out, nil
}

func (f *fakeStoreRepo) EmailTaken(_ context.Context, email string, excludeStoreID uint) (bool, error) {
	for _, s := range f.stores {
		if s.Email == email && s.ID != excludeStoreID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStoreRepo) CreateStore(_ context.Context, s *models.Store) error {
	f.nextID++
	s.ID = f.nextID
	stored := *s
	f.stores[s.ID] = &stored
	return nil
}

func (f *fakeStoreRepo) SaveStore(_ context.Context, s *models.Store) error {
	stored := *s
	f.stores[s.ID] = &stored
	return nil
}

func (f *fakeStoreRepo) DeleteStore(_ context.Context, id uint) error {
	delete(f.stores, id)
	return nil
}

func (f *fakeStoreRepo) GetUserByID(_ context.Context, id uint) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *u
	return &out, nil
}

func (f *fakeStoreRepo) CountStoresOwnedBy(_ context.Context, userID uint) (int64, error) {
	var count int64
	for _, s := range f.stores {
		if s.OwnerID == userID {
			count++
		}
	}
	return count, nil
}

func (f *fakeStoreRepo) SetUserRole(_ context.Context, userID uint, role domain.Role) error {
	f.users[userID].Role = string(role)
	return nil
}

var _ domain.Repository = (*fakeStoreRepo)(nil)

type noopRecorder struct{}

func (noopRecorder) Record(audit.Event) error { return nil }

func newTestDispatcher() *audit.Dispatcher {
	return audit.NewDispatcher(noopRecorder{})
}

// assertRolesDerived checks the role invariant: store_owner iff the user owns
// at least one store, admins untouched.
func assertRolesDerived(t *testing.T, repo *fakeStoreRepo) {
	t.Helper()
	for id, u := range repo.users {
		owned, _ := repo.CountStoresOwnedBy(context.Background(), id)
		if u.Role == string(domain.RoleSystemAdmin) {
			continue
		}
		if owned > 0 {
			assert.Equal(t, string(domain.RoleStoreOwner), u.Role, "user %d owns %d stores", id, owned)
		} else {
			assert.Equal(t, string(domain.RoleNormalUser), u.Role, "user %d owns no stores", id)
		}
	}
}

func normalUser(id uint, email string) *models.User {
	return &models.User{ID: id, Name: "User", Email: email, Role: string(domain.RoleNormalUser)}
}

// ------------------------------------------------------
// Create
// ------------------------------------------------------

func TestCreateStorePromotesOwner(t *testing.T) {
	repo := newFakeStoreRepo(normalUser(1, "u1@example.com"))
	uc := NewCreateStore(repo, newTestDispatcher())

	created, err := uc.Execute(context.Background(), CreateStoreInput{
		Name:    "Fresh Produce Market Downtown",
		Email:   "store@example.com",
		Address: "1 Main St",
		OwnerID: 1,
		ActorID: 100,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, string(domain.RoleStoreOwner), repo.users[1].Role)
	assertRolesDerived(t, repo)
}

func TestCreateStoreAdminOwnerKeepsAdminRole(t *testing.T) {
	admin := &models.User{ID: 9, Email: "admin@example.com", Role: string(domain.RoleSystemAdmin)}
	repo := newFakeStoreRepo(admin)
	uc := NewCreateStore(repo, newTestDispatcher())

	_, err := uc.Execute(context.Background(), CreateStoreInput{
		Name: "Store", Email: "s@example.com", OwnerID: 9,
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.RoleSystemAdmin), repo.users[9].Role)
}

func TestCreateStoreDuplicateEmail(t *testing.T) {
	repo := newFakeStoreRepo(normalUser(1, "u1@example.com"))
	uc := NewCreateStore(repo, newTestDispatcher())

	_, err := uc.Execute(context.Background(), CreateStoreInput{
		Name: "First", Email: "dup@example.com", OwnerID: 1,
	})
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), CreateStoreInput{
		Name: "Second", Email: "dup@example.com", OwnerID: 1,
	})
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "store_email_in_use"))
	assert.Len(t, repo.stores, 1)
}

func TestCreateStoreOwnerNotFound(t *testing.T) {
	repo := newFakeStoreRepo()
	uc := NewCreateStore(repo, newTestDispatcher())

	_, err := uc.Execute(context.Background(), CreateStoreInput{
		Name: "Store", Email: "s@example.com", OwnerID: 42,
	})
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "owner_not_found"))
	assert.Empty(t, repo.stores)
}

// ------------------------------------------------------
// Update
// ------------------------------------------------------

func TestUpdateStoreNotFound(t *testing.T) {
	repo := newFakeStoreRepo(normalUser(1, "u1@example.com"))
	uc := NewUpdateStore(repo, newTestDispatcher())

	_, err := uc.Execute(context.Background(), 99, UpdateStoreInput{
		Name: "Store", Email: "s@example.com", OwnerID: 1,
	})
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "store_not_found"))
}

func TestUpdateStoreKeepingOwnEmailIsNotACollision(t *testing.T) {
	repo := newFakeStoreRepo(normalUser(1, "u1@example.com"))
	create := NewCreateStore(repo, newTestDispatcher())
	update := NewUpdateStore(repo, newTestDispatcher())

	created, err := create.Execute(context.Background(), CreateStoreInput{
		Name: "Store", Email: "s@example.com", OwnerID: 1,
	})
	require.NoError(t, err)

	updated, err := update.Execute(context.Background(), created.ID, UpdateStoreInput{
		Name: "Renamed", Email: "s@example.com", OwnerID: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
}

func TestUpdateStoreEmailCollidesWithOtherStore(t *testing.T) {
	repo := newFakeStoreRepo(normalUser(1, "u1@example.com"))
	create := NewCreateStore(repo, newTestDispatcher())
	update := NewUpdateStore(repo, newTestDispatcher())

	_, err := create.Execute(context.Background(), CreateStoreInput{
		Name: "A", Email: "a@example.com", OwnerID: 1,
	})
	require.NoError(t, err)

	b, err := create.Execute(context.Background(), CreateStoreInput{
		Name: "B", Email: "b@example.com", OwnerID: 1,
	})
	require.NoError(t, err)

	_, err = update.Execute(context.Background(), b.ID, UpdateStoreInput{
		Name: "B", Email: "a@example.com", OwnerID: 1,
	})
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "store_email_in_use"))
}

// ------------------------------------------------------
// Ownership scenario
// ------------------------------------------------------

// Admin creates store A for U1, then store B for U1, reassigns A to U2, and
// finally deletes B. U1 must stay store_owner while any store is theirs and
// revert to normal_user only at zero.
func TestOwnershipReassignmentScenario(t *testing.T) {
	u1 := normalUser(1, "u1@example.com")
	u2 := normalUser(2, "u2@example.com")
	repo := newFakeStoreRepo(u1, u2)

	create := NewCreateStore(repo, newTestDispatcher())
	update := NewUpdateStore(repo, newTestDispatcher())
	del := NewDeleteStore(repo, newTestDispatcher())

	ctx := context.Background()

	storeA, err := create.Execute(ctx, CreateStoreInput{
		Name: "Store A", Email: "a@example.com", OwnerID: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.RoleStoreOwner), repo.users[1].Role)
	assertRolesDerived(t, repo)

	storeB, err := create.Execute(ctx, CreateStoreInput{
		Name: "Store B", Email: "b@example.com", OwnerID: 1,
	})
	require.NoError(t, err)
	assertRolesDerived(t, repo)

	// Reassign A to U2: U1 keeps store_owner through B.
	_, err = update.Execute(ctx, storeA.ID, UpdateStoreInput{
		Name: "Store A", Email: "a@example.com", OwnerID: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.RoleStoreOwner), repo.users[1].Role)
	assert.Equal(t, string(domain.RoleStoreOwner), repo.users[2].Role)
	assertRolesDerived(t, repo)

	// Deleting B leaves U1 with zero stores.
	err = del.Execute(ctx, storeB.ID, 100)
	require.NoError(t, err)
	assert.Equal(t, string(domain.RoleNormalUser), repo.users[1].Role)
	assert.Equal(t, string(domain.RoleStoreOwner), repo.users[2].Role)
	assertRolesDerived(t, repo)
}

func TestDeleteStoreNotFound(t *testing.T) {
	repo := newFakeStoreRepo()
	uc := NewDeleteStore(repo, newTestDispatcher())

	err := uc.Execute(context.Background(), 5, 100)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "store_not_found"))
}

func TestDeleteLastStoreDemotesOwner(t *testing.T) {
	repo := newFakeStoreRepo(normalUser(1, "u1@example.com"))
	create := NewCreateStore(repo, newTestDispatcher())
	del := NewDeleteStore(repo, newTestDispatcher())

	created, err := create.Execute(context.Background(), CreateStoreInput{
		Name: "Store", Email: "s@example.com", OwnerID: 1,
	})
	require.NoError(t, err)
	require.Equal(t, string(domain.RoleStoreOwner), repo.users[1].Role)

	require.NoError(t, del.Execute(context.Background(), created.ID, 100))
	assert.Equal(t, string(domain.RoleNormalUser), repo.users[1].Role)
	assert.Empty(t, repo.stores)
}
