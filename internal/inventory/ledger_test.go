package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walner-prog/mitienda-backend/pkg/apperr"
	"github.com/walner-prog/mitienda-backend/pkg/database"
	"gorm.io/gorm"
)

type fakeStore struct {
	products map[uuid.UUID]*database.Product
}

func (f *fakeStore) ProductForUpdate(id uuid.UUID) (*database.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (f *fakeStore) SaveProduct(p *database.Product) error {
	f.products[p.ID] = p
	return nil
}

// transact mirrors the commit-or-discard behavior adjustments rely on: fn
// runs against a copy, and only a clean return publishes the copy.
func (f *fakeStore) transact(fn func(s *fakeStore) error) error {
	tx := &fakeStore{products: map[uuid.UUID]*database.Product{}}
	for id, p := range f.products {
		cp := *p
		tx.products[id] = &cp
	}
	if err := fn(tx); err != nil {
		return err
	}
	*f = *tx
	return nil
}

func newFakeStore(stock int) (*fakeStore, uuid.UUID) {
	id := uuid.New()
	return &fakeStore{products: map[uuid.UUID]*database.Product{
		id: {ID: id, Name: "Camisa", Stock: stock},
	}}, id
}

func TestReserve(t *testing.T) {
	store, id := newFakeStore(5)

	product, err := Reserve(store, id, 5)
	require.NoError(t, err)
	assert.Equal(t, "Camisa", product.Name)
	// Reserve checks, it does not mutate.
	assert.Equal(t, 5, store.products[id].Stock)
}

func TestReserveNotFound(t *testing.T) {
	store, _ := newFakeStore(5)

	_, err := Reserve(store, uuid.New(), 1)
	require.Error(t, err)
	assert.Equal(t, apperr.CodeProductNotFound, apperr.From(err).Code)
	assert.Equal(t, apperr.NotFound, apperr.From(err).Kind)
}

func TestReserveInsufficientStock(t *testing.T) {
	store, id := newFakeStore(2)

	_, err := Reserve(store, id, 3)
	require.Error(t, err)
	appErr := apperr.From(err)
	assert.Equal(t, apperr.CodeInsufficientStock, appErr.Code)
	assert.Contains(t, appErr.Message, "Camisa")
	assert.Equal(t, 2, store.products[id].Stock)
}

func TestCommitDecrement(t *testing.T) {
	store, id := newFakeStore(10)

	require.NoError(t, CommitDecrement(store, id, 4))
	assert.Equal(t, 6, store.products[id].Stock)

	// Never drives stock negative.
	err := CommitDecrement(store, id, 7)
	require.Error(t, err)
	assert.Equal(t, apperr.CodeInsufficientStock, apperr.From(err).Code)
	assert.Equal(t, 6, store.products[id].Stock)
}

func TestAdjust(t *testing.T) {
	store, id := newFakeStore(5)

	require.NoError(t, store.transact(func(s *fakeStore) error {
		return Adjust(s, id, 3)
	}))
	assert.Equal(t, 8, store.products[id].Stock)

	require.NoError(t, store.transact(func(s *fakeStore) error {
		return Adjust(s, id, -6)
	}))
	assert.Equal(t, 2, store.products[id].Stock)
}

func TestAdjustBelowZeroLeavesStockUntouched(t *testing.T) {
	store, id := newFakeStore(2)

	err := store.transact(func(s *fakeStore) error {
		return Adjust(s, id, -3)
	})
	require.Error(t, err)
	assert.Equal(t, apperr.CodeInsufficientStock, apperr.From(err).Code)
	assert.Equal(t, 2, store.products[id].Stock)
}

func TestAdjustUnknownProduct(t *testing.T) {
	store, _ := newFakeStore(2)

	err := store.transact(func(s *fakeStore) error {
		return Adjust(s, uuid.New(), 4)
	})
	require.Error(t, err)
	assert.Equal(t, apperr.CodeProductNotFound, apperr.From(err).Code)
}

func TestCommitIncrement(t *testing.T) {
	store, id := newFakeStore(3)

	require.NoError(t, CommitIncrement(store, id, 2))
	assert.Equal(t, 5, store.products[id].Stock)

	err := CommitIncrement(store, uuid.New(), 2)
	require.Error(t, err)
	assert.Equal(t, apperr.CodeProductNotFound, apperr.From(err).Code)
}
