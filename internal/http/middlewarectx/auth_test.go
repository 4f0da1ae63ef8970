package middlewarectx_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/foundation-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/foundation-backend/internal/models"
	"github.com/magabrotheeeer/foundation-backend/internal/services/auth"
)

type AuthMock struct {
	mock.Mock
}

func (m *AuthMock) VerifyToken(ctx context.Context, token string) (*models.User, error) {
	args := m.Called(ctx, token)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func (m *AuthMock) RequireAdmin(ctx context.Context, token string) (*models.User, error) {
	args := m.Called(ctx, token)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func wrapped(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

func TestAuthenticate(t *testing.T) {
	alice := &models.User{ID: 1, Email: "alice@example.com", IsActive: true}

	tests := []struct {
		name       string
		authHeader string
		token      string
		mockUser   *models.User
		mockErr    error
		wantStatus int
		wantCalled bool
	}{
		{
			name:       "missing header",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong scheme",
			authHeader: "Basic abc",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "empty bearer",
			authHeader: "Bearer ",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "invalid token",
			authHeader: "Bearer bad",
			token:      "bad",
			mockErr:    wrapped("auth.VerifyToken", auth.ErrUnauthenticated),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "storage failure",
			authHeader: "Bearer tok",
			token:      "tok",
			mockErr:    errors.New("db down"),
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "valid token",
			authHeader: "Bearer tok",
			token:      "tok",
			mockUser:   alice,
			wantStatus: http.StatusOK,
			wantCalled: true,
		},
		{
			name:       "scheme is case insensitive",
			authHeader: "bearer tok",
			token:      "tok",
			mockUser:   alice,
			wantStatus: http.StatusOK,
			wantCalled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authMock := new(AuthMock)
			if tt.token != "" {
				authMock.On("VerifyToken", mock.Anything, tt.token).Return(tt.mockUser, tt.mockErr).Once()
			}

			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				assert.Equal(t, alice, middlewarectx.UserFromContext(r.Context()))
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			middlewarectx.Authenticate(newNoopLogger(), authMock)(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCalled, called)
			if tt.wantStatus == http.StatusUnauthorized {
				assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
			}
			authMock.AssertExpectations(t)
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	admin := &models.User{ID: 2, Email: "root@example.com", IsActive: true, IsAdmin: true}

	tests := []struct {
		name       string
		header     string
		mockUser   *models.User
		mockErr    error
		wantStatus int
	}{
		{name: "no token", wantStatus: http.StatusUnauthorized},
		{name: "expired token", header: "Bearer t", mockErr: wrapped("auth.VerifyToken", auth.ErrUnauthenticated), wantStatus: http.StatusUnauthorized},
		{name: "not admin", header: "Bearer t", mockErr: wrapped("auth.RequireAdmin", auth.ErrForbidden), wantStatus: http.StatusForbidden},
		{name: "admin", header: "Bearer t", mockUser: admin, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			authMock := new(AuthMock)
			if tt.header != "" {
				authMock.On("RequireAdmin", mock.Anything, "t").Return(tt.mockUser, tt.mockErr).Once()
			}
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.True(t, middlewarectx.UserFromContext(r.Context()).IsAdmin)
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			middlewarectx.RequireAdmin(newNoopLogger(), authMock)(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusForbidden {
				assert.Contains(t, rec.Body.String(), "Not enough permissions")
				assert.Empty(t, rec.Header().Get("WWW-Authenticate"))
			}
			authMock.AssertExpectations(t)
		})
	}
}

func TestOptionalAuth(t *testing.T) {
	bob := &models.User{ID: 3, Email: "bob@example.com", IsActive: true}
	authMock := new(AuthMock)
	authMock.On("VerifyToken", mock.Anything, "good").Return(bob, nil)
	authMock.On("VerifyToken", mock.Anything, "bad").Return(nil, auth.ErrUnauthenticated)

	var got *models.User
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = middlewarectx.UserFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	h := middlewarectx.OptionalAuth(newNoopLogger(), authMock)(next)

	for _, tc := range []struct {
		header string
		want   *models.User
	}{
		{header: "", want: nil},
		{header: "Bearer bad", want: nil},
		{header: "Bearer good", want: bob},
	} {
		got = nil
		req := httptest.NewRequest(http.MethodPost, "/api/donations", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, tc.want, got)
	}
}
