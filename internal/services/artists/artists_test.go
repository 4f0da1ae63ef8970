package artists

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

func (m *RepoMock) CreateArtist(ctx context.Context, in models.ArtistCreate) (*models.Artist, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Artist), args.Error(1)
}

func (m *RepoMock) GetArtist(ctx context.Context, id int64) (*models.Artist, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Artist), args.Error(1)
}

func (m *RepoMock) ListArtists(ctx context.Context, filter models.ArtistFilter) ([]*models.Artist, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Artist), args.Error(1)
}

func (m *RepoMock) UpdateArtist(ctx context.Context, id int64, in models.ArtistUpdate) (*models.Artist, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Artist), args.Error(1)
}

func (m *RepoMock) DeleteArtist(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func strPtr(s string) *string { return &s }

func TestService_Create_SocialLinks(t *testing.T) {
	tests := []struct {
		name    string
		links   *string
		wantErr bool
	}{
		{name: "no links", links: nil},
		{name: "valid json", links: strPtr(`{"instagram":"https://instagram.com/eminem"}`)},
		{name: "invalid json", links: strPtr(`{instagram:`), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			svc := New(slog.New(slog.NewTextHandler(io.Discard, nil)), repo)
			in := models.ArtistCreate{Name: "Eminem", SocialLinks: tt.links}

			if !tt.wantErr {
				repo.On("CreateArtist", mock.Anything, in).Return(&models.Artist{ID: 1, Name: "Eminem"}, nil).Once()
			}

			got, err := svc.Create(context.Background(), in)
			if tt.wantErr {
				require.ErrorIs(t, err, models.ErrValidation)
				repo.AssertNotCalled(t, "CreateArtist", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Eminem", got.Name)
		})
	}
}

func TestService_Delete_NotFound(t *testing.T) {
	repo := new(RepoMock)
	svc := New(slog.New(slog.NewTextHandler(io.Discard, nil)), repo)
	repo.On("DeleteArtist", mock.Anything, int64(7)).Return(models.ErrNotFound).Once()

	require.ErrorIs(t, svc.Delete(context.Background(), 7), models.ErrNotFound)
}
