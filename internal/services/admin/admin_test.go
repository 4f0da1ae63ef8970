package admin

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/foundation-backend/internal/models"
)

type RepoMock struct {
	mock.Mock
}

func (m *RepoMock) GetSiteStats(ctx context.Context) (*models.SiteStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SiteStats), args.Error(1)
}

func (m *RepoMock) ListUsers(ctx context.Context, page models.Page) ([]*models.User, error) {
	args := m.Called(ctx, page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *RepoMock) ToggleUserAdmin(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *RepoMock) SetUserActive(ctx context.Context, id int64, isActive bool) (*models.User, error) {
	args := m.Called(ctx, id, isActive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *RepoMock) ListDonations(ctx context.Context, filter models.DonationFilter) ([]*models.Donation, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Donation), args.Error(1)
}

func newService() (*Service, *RepoMock) {
	repo := new(RepoMock)
	return New(slog.New(slog.NewTextHandler(io.Discard, nil)), repo), repo
}

func TestService_ToggleAdmin(t *testing.T) {
	actor := &models.User{ID: 1, IsAdmin: true}

	tests := []struct {
		name    string
		target  int64
		setup   func(r *RepoMock)
		wantErr error
	}{
		{
			name:   "promotes other user",
			target: 2,
			setup: func(r *RepoMock) {
				r.On("ToggleUserAdmin", mock.Anything, int64(2)).Return(&models.User{ID: 2, IsAdmin: true}, nil).Once()
			},
		},
		{
			name:    "self toggle rejected",
			target:  1,
			setup:   func(_ *RepoMock) {},
			wantErr: ErrSelfModification,
		},
		{
			name:   "missing user",
			target: 3,
			setup: func(r *RepoMock) {
				r.On("ToggleUserAdmin", mock.Anything, int64(3)).Return(nil, models.ErrNotFound).Once()
			},
			wantErr: models.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newService()
			tt.setup(repo)

			got, err := svc.ToggleAdmin(context.Background(), actor, tt.target)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.IsAdmin)
			repo.AssertExpectations(t)
		})
	}
}

func TestService_SetActive(t *testing.T) {
	actor := &models.User{ID: 1, IsAdmin: true}
	svc, repo := newService()

	_, err := svc.SetActive(context.Background(), actor, 1, false)
	require.ErrorIs(t, err, ErrSelfModification)

	repo.On("SetUserActive", mock.Anything, int64(1), true).Return(&models.User{ID: 1, IsActive: true}, nil).Once()
	_, err = svc.SetActive(context.Background(), actor, 1, true)
	require.NoError(t, err)

	repo.On("SetUserActive", mock.Anything, int64(5), false).Return(&models.User{ID: 5}, nil).Once()
	got, err := svc.SetActive(context.Background(), actor, 5, false)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
	repo.AssertExpectations(t)
}

func TestService_PendingDonations(t *testing.T) {
	svc, repo := newService()
	page := models.Page{Limit: 10}

	repo.On("ListDonations", mock.Anything, models.DonationFilter{Status: models.DonationPending, Page: page}).
		Return([]*models.Donation{{ID: 1, Status: models.DonationPending}}, nil).Once()

	got, err := svc.PendingDonations(context.Background(), page)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestService_Stats(t *testing.T) {
	svc, repo := newService()
	repo.On("GetSiteStats", mock.Anything).Return(&models.SiteStats{TotalUsers: 2}, nil).Once()

	st, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), st.TotalUsers)
}
