package client_test

import (
	"context"
	"io"
	"log/slog"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/test/bufconn"

	"github.com/magabrotheeeer/foundation-backend/internal/grpc/authrpc"
	"github.com/magabrotheeeer/foundation-backend/internal/grpc/client"
	"github.com/magabrotheeeer/foundation-backend/internal/grpc/server"
	"github.com/magabrotheeeer/foundation-backend/internal/lib/jwt"
	"github.com/magabrotheeeer/foundation-backend/internal/lib/password"
	"github.com/magabrotheeeer/foundation-backend/internal/models"
	"github.com/magabrotheeeer/foundation-backend/internal/services/auth"
)

type memUsers struct {
	mu    sync.Mutex
	users map[string]*models.User
	next  int64
}

func (m *memUsers) CreateUser(_ context.Context, u models.User) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[u.Email]; ok {
		return nil, models.ErrAlreadyExists
	}
	m.next++
	u.ID = m.next
	u.CreatedAt = time.Now().UTC()
	m.users[u.Email] = &u
	cp := u
	return &cp, nil
}

func (m *memUsers) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[email]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memUsers) promote(email string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[email].IsAdmin = true
}

func startServer(t *testing.T) (*client.AuthClient, *memUsers) {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	users := &memUsers{users: map[string]*models.User{}}
	svc, err := auth.New(log, users, password.NewHasher(4),
		jwt.NewJWTMaker("0123456789abcdef0123456789abcdef", time.Minute), nil)
	require.NoError(t, err)

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	authrpc.RegisterAuthServiceServer(srv, server.NewAuthServer(svc, log))
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	c, err := client.NewAuthClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c, users
}

func TestAuthClient_RoundTrip(t *testing.T) {
	c, users := startServer(t)
	ctx := context.Background()

	user, err := c.Register(ctx, "Alice@Example.com", "pw", "Alice")
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Equal(t, "Alice", user.FullName)
	assert.False(t, user.IsAdmin)

	_, err = c.Register(ctx, "alice@example.com", "other", "")
	require.ErrorIs(t, err, auth.ErrDuplicateEmail)

	_, err = c.Login(ctx, "alice@example.com", "wrong")
	require.ErrorIs(t, err, auth.ErrInvalidCredentials)

	token, err := c.Login(ctx, "alice@example.com", "pw")
	require.NoError(t, err)

	verified, err := c.VerifyToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, verified.ID)

	_, err = c.RequireAdmin(ctx, token)
	require.ErrorIs(t, err, auth.ErrForbidden)

	users.promote("alice@example.com")
	admin, err := c.RequireAdmin(ctx, token)
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin)

	_, err = c.VerifyToken(ctx, "garbage")
	require.ErrorIs(t, err, auth.ErrUnauthenticated)
}

func TestAuthClient_InvalidArgument(t *testing.T) {
	c, _ := startServer(t)

	_, err := c.Register(context.Background(), "", "", "")
	require.ErrorIs(t, err, models.ErrValidation)
}
