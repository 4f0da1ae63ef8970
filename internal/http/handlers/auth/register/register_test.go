package register_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/foundation-backend/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/foundation-backend/internal/models"
	"github.com/magabrotheeeer/foundation-backend/internal/services/auth"
)

type AuthMock struct {
	mock.Mock
}

func (m *AuthMock) Register(ctx context.Context, email, password, fullName string) (*models.User, error) {
	args := m.Called(ctx, email, password, fullName)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setup      func(m *AuthMock)
		wantStatus int
		wantBody   string
	}{
		{
			name: "success",
			body: `{"email":"alice@example.com","password":"pw","full_name":"Alice"}`,
			setup: func(m *AuthMock) {
				m.On("Register", mock.Anything, "alice@example.com", "pw", "Alice").
					Return(&models.User{ID: 1, Email: "alice@example.com", FullName: "Alice", IsActive: true}, nil).Once()
			},
			wantStatus: http.StatusCreated,
			wantBody:   `"email":"alice@example.com"`,
		},
		{
			name: "duplicate email",
			body: `{"email":"alice@example.com","password":"pw"}`,
			setup: func(m *AuthMock) {
				m.On("Register", mock.Anything, "alice@example.com", "pw", "").
					Return(nil, fmt.Errorf("auth.Register: %w", auth.ErrDuplicateEmail)).Once()
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   "Email already registered",
		},
		{
			name:       "invalid email",
			body:       `{"email":"not-an-email","password":"pw"}`,
			setup:      func(_ *AuthMock) {},
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   "field email must be a valid email address",
		},
		{
			name:       "missing password",
			body:       `{"email":"alice@example.com"}`,
			setup:      func(_ *AuthMock) {},
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   "field password is a required field",
		},
		{
			name:       "password over byte limit",
			body:       `{"email":"alice@example.com","password":"` + strings.Repeat("я", 2049) + `"}`,
			setup:      func(_ *AuthMock) {},
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   "field password must be at most 4096 bytes",
		},
		{
			name: "password at byte limit",
			body: `{"email":"alice@example.com","password":"` + strings.Repeat("я", 2048) + `"}`,
			setup: func(m *AuthMock) {
				m.On("Register", mock.Anything, "alice@example.com", strings.Repeat("я", 2048), "").
					Return(&models.User{ID: 2, Email: "alice@example.com", IsActive: true}, nil).Once()
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "malformed body",
			body:       `not json`,
			setup:      func(_ *AuthMock) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "storage failure",
			body: `{"email":"alice@example.com","password":"pw"}`,
			setup: func(m *AuthMock) {
				m.On("Register", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
					Return(nil, errors.New("connection refused")).Once()
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := new(AuthMock)
			tt.setup(m)
			h := register.New(slog.New(slog.NewTextHandler(io.Discard, nil)), m)

			req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
			assert.NotContains(t, rec.Body.String(), "password_hash")
			m.AssertExpectations(t)
		})
	}
}
