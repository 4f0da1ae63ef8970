// Package client содержит gRPC-клиент сервиса аутентификации.
// AuthClient реализует тот же контракт, что и auth.Service, поэтому
// HTTP-слой не различает локальную и удалённую проверку токенов.
package client

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/magabrotheeeer/foundation-backend/internal/grpc/authrpc"
	"github.com/magabrotheeeer/foundation-backend/internal/models"
	"github.com/magabrotheeeer/foundation-backend/internal/services/auth"
)

// AuthClient клиент foundation.auth.v1.AuthService.
type AuthClient struct {
	conn *grpc.ClientConn
	cc   grpc.ClientConnInterface
}

// NewAuthClient создаёт клиент для addr. Соединение устанавливается лениво.
func NewAuthClient(addr string, opts ...grpc.DialOption) (*AuthClient, error) {
	const op = "client.NewAuthClient"

	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)
	conn, err := grpc.NewClient(addr, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &AuthClient{conn: conn, cc: conn}, nil
}

// Close закрывает соединение.
func (a *AuthClient) Close() error {
	return a.conn.Close()
}

// Register регистрирует пользователя.
func (a *AuthClient) Register(ctx context.Context, email, password, fullName string) (*models.User, error) {
	const op = "client.Register"

	req, err := structpb.NewStruct(map[string]any{
		"email":     email,
		"password":  password,
		"full_name": fullName,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	out := new(structpb.Struct)
	if err := a.cc.Invoke(ctx, authrpc.RegisterMethod, req, out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, fromStatus(err, auth.ErrUnauthenticated))
	}
	return authrpc.UserFromStruct(out)
}

// Login возвращает токен доступа.
func (a *AuthClient) Login(ctx context.Context, email, password string) (string, error) {
	const op = "client.Login"

	req, err := structpb.NewStruct(map[string]any{"email": email, "password": password})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	out := new(wrapperspb.StringValue)
	if err := a.cc.Invoke(ctx, authrpc.LoginMethod, req, out); err != nil {
		return "", fmt.Errorf("%s: %w", op, fromStatus(err, auth.ErrInvalidCredentials))
	}
	return out.GetValue(), nil
}

// VerifyToken возвращает владельца действительного токена.
func (a *AuthClient) VerifyToken(ctx context.Context, token string) (*models.User, error) {
	return a.userCall(ctx, "client.VerifyToken", authrpc.ValidateTokenMethod, token)
}

// RequireAdmin возвращает владельца токена, если он администратор.
func (a *AuthClient) RequireAdmin(ctx context.Context, token string) (*models.User, error) {
	return a.userCall(ctx, "client.RequireAdmin", authrpc.RequireAdminMethod, token)
}

func (a *AuthClient) userCall(ctx context.Context, op, method, token string) (*models.User, error) {
	out := new(structpb.Struct)
	if err := a.cc.Invoke(ctx, method, wrapperspb.String(token), out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, fromStatus(err, auth.ErrUnauthenticated))
	}
	user, err := authrpc.UserFromStruct(out)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

// fromStatus переводит код gRPC в доменную ошибку.
// unauthenticated задаёт ошибку для codes.Unauthenticated, она различается у Login и проверки токена.
func fromStatus(err error, unauthenticated error) error {
	st, ok := status.FromError(err)
	if !ok {
		return err
	}
	switch st.Code() {
	case codes.AlreadyExists:
		return auth.ErrDuplicateEmail
	case codes.Unauthenticated:
		return unauthenticated
	case codes.PermissionDenied:
		return auth.ErrForbidden
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", models.ErrValidation, st.Message())
	default:
		return err
	}
}
