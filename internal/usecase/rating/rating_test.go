package rating

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/StoreRaterHQ/store-rating-api/internal/audit"
	domain "github.com/StoreRaterHQ/store-rating-api/internal/domain/rating"
	"github.com/StoreRaterHQ/store-rating-api/internal/httperr"
	"github.com/StoreRaterHQ/store-rating-api/internal/models"
)

// ------------------------------------------------------
// Fakes
// ------------------------------------------------------

type pairKey struct {
	userID  uint
	storeID uint
}

type fakeRatingRepo struct {
	stores  map[uint]bool
	ratings map[pairKey]*models.Rating
	nextID  uint
}

func newFakeRatingRepo(storeIDs ...uint) *fakeRatingRepo {
	stores := make(map[uint]bool)
	for _, id := range storeIDs {
		stores[id] = true
	}
	return &fakeRatingRepo{
		stores:  stores,
		ratings: make(map[pairKey]*models.Rating),
	}
}

func (f *fakeRatingRepo) Transaction(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return fn(f)
}

func (f *fakeRatingRepo) StoreExists(_ context.Context, storeID uint) (bool, error) {
	return f.stores[storeID], nil
}

func (f *fakeRatingRepo) Get(_ context.Context, userID, storeID uint) (*models.Rating, error) {
	r, ok := f.ratings[pairKey{userID, storeID}]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	out := *r
	return &out, nil
}

func (f *fakeRatingRepo) Upsert(_ context.Context, r *models.Rating) error {
	key := pairKey{r.UserID, r.StoreID}
	if existing, ok := f.ratings[key]; ok {
		existing.Rating = r.Rating
		existing.UpdatedAt = time.Now()
		*r = *existing
		return nil
	}

	f.nextID++
	r.ID = f.nextID
	r.CreatedAt = time.Now()
	r.UpdatedAt = r.CreatedAt

	stored := *r
	f.ratings[key] = &stored
	return nil
}

func (f *fakeRatingRepo) Delete(_ context.Context, userID, storeID uint) error {
	delete(f.ratings, pairKey{userID, storeID})
	return nil
}

func (f *fakeRatingRepo) AverageForStore(_ context.Context, storeID uint) (float64, error) {
	var sum, count float64
	for _, r := range f.ratings {
		if r.StoreID == storeID {
			sum += float64(r.Rating)
			count++
		}
	}
	if count == 0 {
		return 0, nil
	}
	return sum / count, nil
}

var _ domain.Repository = (*fakeRatingRepo)(nil)

type noopRecorder struct{}

func (noopRecorder) Record(audit.Event) error { return nil }

func newTestDispatcher() *audit.Dispatcher {
	return audit.NewDispatcher(noopRecorder{})
}

// ------------------------------------------------------
// Submit
// ------------------------------------------------------

func TestSubmitRatingRejectsOutOfRangeValues(t *testing.T) {
	repo := newFakeRatingRepo(1)
	uc := NewSubmitRating(repo, newTestDispatcher())

	for _, v := range []int{0, -1, 6, 42} {
		_, err := uc.Execute(context.Background(), SubmitRatingInput{
			UserID: 1, StoreID: 1, Value: v,
		})
		require.Error(t, err, "value %d", v)
		assert.True(t, httperr.IsBusiness(err, "invalid_rating_value"))
	}

	assert.Empty(t, repo.ratings)
}

func TestSubmitRatingUnknownStore(t *testing.T) {
	repo := newFakeRatingRepo(1)
	uc := NewSubmitRating(repo, newTestDispatcher())

	_, err := uc.Execute(context.Background(), SubmitRatingInput{
		UserID: 1, StoreID: 99, Value: 4,
	})
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "store_not_found"))
}

func TestSubmitRatingCreatesThenUpdatesSingleRow(t *testing.T) {
	repo := newFakeRatingRepo(1)
	uc := NewSubmitRating(repo, newTestDispatcher())

	first, err := uc.Execute(context.Background(), SubmitRatingInput{
		UserID: 7, StoreID: 1, Value: 3,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, first.Rating.Rating)
	assert.Equal(t, 3.0, first.AverageRating)
	assert.Len(t, repo.ratings, 1)

	// Resubmission updates the same row, never adds a second one.
	second, err := uc.Execute(context.Background(), SubmitRatingInput{
		UserID: 7, StoreID: 1, Value: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, second.Rating.Rating)
	assert.Equal(t, 5.0, second.AverageRating)
	assert.Len(t, repo.ratings, 1)
	assert.Equal(t, first.Rating.ID, second.Rating.ID)
}

func TestSubmitRatingAveragesAcrossUsers(t *testing.T) {
	repo := newFakeRatingRepo(1)
	uc := NewSubmitRating(repo, newTestDispatcher())

	_, err := uc.Execute(context.Background(), SubmitRatingInput{UserID: 1, StoreID: 1, Value: 4})
	require.NoError(t, err)

	result, err := uc.Execute(context.Background(), SubmitRatingInput{UserID: 2, StoreID: 1, Value: 2})
	require.NoError(t, err)

	assert.Equal(t, 3.0, result.AverageRating)
	assert.Len(t, repo.ratings, 2)
}

// ------------------------------------------------------
// Delete
// ------------------------------------------------------

func TestDeleteRatingUnknownPair(t *testing.T) {
	repo := newFakeRatingRepo(1)
	uc := NewDeleteRating(repo, newTestDispatcher())

	_, err := uc.Execute(context.Background(), 1, 1)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, "rating_not_found"))
}

func TestDeleteRatingResetsAverageToSentinel(t *testing.T) {
	repo := newFakeRatingRepo(1)
	submit := NewSubmitRating(repo, newTestDispatcher())
	del := NewDeleteRating(repo, newTestDispatcher())

	_, err := submit.Execute(context.Background(), SubmitRatingInput{UserID: 7, StoreID: 1, Value: 5})
	require.NoError(t, err)

	avg, err := del.Execute(context.Background(), 7, 1)
	require.NoError(t, err)
	assert.Equal(t, 0.0, avg)
	assert.Empty(t, repo.ratings)
}

func TestDeleteThenResubmitBehavesLikeFirstSubmission(t *testing.T) {
	repo := newFakeRatingRepo(1)
	submit := NewSubmitRating(repo, newTestDispatcher())
	del := NewDeleteRating(repo, newTestDispatcher())

	_, err := submit.Execute(context.Background(), SubmitRatingInput{UserID: 7, StoreID: 1, Value: 2})
	require.NoError(t, err)

	_, err = del.Execute(context.Background(), 7, 1)
	require.NoError(t, err)

	result, err := submit.Execute(context.Background(), SubmitRatingInput{UserID: 7, StoreID: 1, Value: 4})
	require.NoError(t, err)
	assert.Equal(t, 4, result.Rating.Rating)
	assert.Equal(t, 4.0, result.AverageRating)
	assert.Len(t, repo.ratings, 1)
}
