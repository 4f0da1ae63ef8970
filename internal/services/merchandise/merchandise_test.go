package merchandise

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/foundation-backend/internal/lib/sl"
	"github.com/magabrotheeeer/foundation-backend/internal/models"
)

type RepoMock struct {
	mock.Mock
}

func (m *RepoMock) CreateMerchandiseItem(ctx context.Context, in models.MerchandiseItemCreate) (*models.MerchandiseItem, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MerchandiseItem), args.Error(1)
}

func (m *RepoMock) GetMerchandiseItem(ctx context.Context, id int64) (*models.MerchandiseItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MerchandiseItem), args.Error(1)
}

func (m *RepoMock) ListMerchandise(ctx context.Context, filter models.MerchandiseFilter) ([]*models.MerchandiseItem, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.MerchandiseItem), args.Error(1)
}

func (m *RepoMock) UpdateMerchandiseItem(ctx context.Context, id int64, in models.MerchandiseItemUpdate) (*models.MerchandiseItem, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MerchandiseItem), args.Error(1)
}

func (m *RepoMock) DeleteMerchandiseItem(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func TestService_ListByCategory(t *testing.T) {
	repo := new(RepoMock)
	svc := New(sl.Discard(), repo)
	ctx := context.Background()

	filter := models.MerchandiseFilter{IsAvailable: true, Category: "apparel", Page: models.Page{Limit: 10}}
	repo.On("ListMerchandise", ctx, filter).Return([]*models.MerchandiseItem{{ID: 1, Name: "Tee"}}, nil).Once()

	items, err := svc.List(ctx, filter)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Tee", items[0].Name)
}

func TestService_UpdateAndDelete(t *testing.T) {
	repo := new(RepoMock)
	svc := New(sl.Discard(), repo)
	ctx := context.Background()

	price := 30.0
	upd := models.MerchandiseItemUpdate{Price: &price}
	repo.On("UpdateMerchandiseItem", ctx, int64(2), upd).Return(&models.MerchandiseItem{ID: 2, Price: price}, nil).Once()

	item, err := svc.Update(ctx, 2, upd)
	require.NoError(t, err)
	assert.InDelta(t, 30.0, item.Price, 1e-9)

	repo.On("DeleteMerchandiseItem", ctx, int64(5)).Return(models.ErrNotFound).Once()
	err = svc.Delete(ctx, 5)
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.Contains(t, err.Error(), "merchandise.Delete")
	repo.AssertExpectations(t)
}
