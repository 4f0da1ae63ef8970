// Package server реализует gRPC-сервер аутентификации.
//
// AuthServer принимает запросы регистрации, входа, проверки токена и прав
// администратора и делегирует их auth.Service. Доменные ошибки переводятся
// в коды gRPC.
package server

import (
	"context"
	"errors"
	"log/slog"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/magabrotheeeer/foundation-backend/internal/grpc/authrpc"
	"github.com/magabrotheeeer/foundation-backend/internal/lib/sl"
	"github.com/magabrotheeeer/foundation-backend/internal/models"
	"github.com/magabrotheeeer/foundation-backend/internal/services/auth"
)

// AuthService бизнес-логика аутентификации.
type AuthService interface {
	Register(ctx context.Context, email, password, fullName string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	VerifyToken(ctx context.Context, token string) (*models.User, error)
	RequireAdmin(ctx context.Context, token string) (*models.User, error)
}

// AuthServer реализует authrpc.AuthServiceServer.
type AuthServer struct {
	authService AuthService
	log         *slog.Logger
}

var _ authrpc.AuthServiceServer = (*AuthServer)(nil)

// NewAuthServer создает AuthServer.
func NewAuthServer(authService AuthService, logger *slog.Logger) *AuthServer {
	return &AuthServer{
		authService: authService,
		log:         logger,
	}
}

// Register создает нового пользователя.
func (s *AuthServer) Register(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	f := req.GetFields()
	email := f["email"].GetStringValue()
	password := f["password"].GetStringValue()
	if email == "" || password == "" {
		return nil, status.Error(codes.InvalidArgument, "email and password are required")
	}

	user, err := s.authService.Register(ctx, email, password, f["full_name"].GetStringValue())
	if err != nil {
		return nil, s.toStatus("Register", err)
	}
	return s.userResponse(user)
}

// Login проверяет учётные данные и выдаёт JWT.
func (s *AuthServer) Login(ctx context.Context, req *structpb.Struct) (*wrapperspb.StringValue, error) {
	f := req.GetFields()
	token, err := s.authService.Login(ctx, f["email"].GetStringValue(), f["password"].GetStringValue())
	if err != nil {
		return nil, s.toStatus("Login", err)
	}
	return wrapperspb.String(token), nil
}

// ValidateToken возвращает владельца действительного токена.
func (s *AuthServer) ValidateToken(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	user, err := s.authService.VerifyToken(ctx, req.GetValue())
	if err != nil {
		return nil, s.toStatus("ValidateToken", err)
	}
	return s.userResponse(user)
}

// RequireAdmin возвращает владельца токена, если он администратор.
func (s *AuthServer) RequireAdmin(ctx context.Context, req *wrapperspb.StringValue) (*structpb.Struct, error) {
	user, err := s.authService.RequireAdmin(ctx, req.GetValue())
	if err != nil {
		return nil, s.toStatus("RequireAdmin", err)
	}
	return s.userResponse(user)
}

func (s *AuthServer) userResponse(u *models.User) (*structpb.Struct, error) {
	res, err := authrpc.UserToStruct(u)
	if err != nil {
		s.log.Error("failed to encode user", sl.Err(err))
		return nil, status.Error(codes.Internal, "internal error")
	}
	return res, nil
}

func (s *AuthServer) toStatus(method string, err error) error {
	switch {
	case errors.Is(err, auth.ErrDuplicateEmail):
		return status.Error(codes.AlreadyExists, auth.ErrDuplicateEmail.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		return status.Error(codes.Unauthenticated, auth.ErrInvalidCredentials.Error())
	case errors.Is(err, auth.ErrUnauthenticated):
		return status.Error(codes.Unauthenticated, auth.ErrUnauthenticated.Error())
	case errors.Is(err, auth.ErrForbidden):
		return status.Error(codes.PermissionDenied, auth.ErrForbidden.Error())
	case errors.Is(err, models.ErrValidation):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		s.log.Error(method+" failed", sl.Err(err))
		return status.Error(codes.Internal, "internal error")
	}
}
