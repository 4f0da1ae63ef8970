// Package authrpc описывает gRPC-сервис аутентификации foundation.auth.v1.AuthService.
//
// Сообщения передаются готовыми типами protobuf (structpb.Struct и
// wrapperspb.StringValue), поэтому сервис не требует генерации кода.
package authrpc

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/magabrotheeeer/foundation-backend/internal/models"
)

// ServiceName полное имя сервиса.
const ServiceName = "foundation.auth.v1.AuthService"

// Полные имена методов.
const (
	RegisterMethod      = "/" + ServiceName + "/Register"
	LoginMethod         = "/" + ServiceName + "/Login"
	ValidateTokenMethod = "/" + ServiceName + "/ValidateToken"
	RequireAdminMethod  = "/" + ServiceName + "/RequireAdmin"
)

// AuthServiceServer серверная часть сервиса.
//
// Register принимает {email, password, full_name}, Login {email, password}.
// Ответы с пользователем кодируются UserToStruct.
type AuthServiceServer interface {
	Register(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	Login(ctx context.Context, req *structpb.Struct) (*wrapperspb.StringValue, error)
	ValidateToken(ctx context.Context, token *wrapperspb.StringValue) (*structpb.Struct, error)
	RequireAdmin(ctx context.Context, token *wrapperspb.StringValue) (*structpb.Struct, error)
}

// RegisterAuthServiceServer регистрирует srv на s.
func RegisterAuthServiceServer(s grpc.ServiceRegistrar, srv AuthServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// ServiceDesc описание сервиса для grpc.Server.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AuthServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Register", Handler: registerHandler},
		{MethodName: "Login", Handler: loginHandler},
		{MethodName: "ValidateToken", Handler: validateTokenHandler},
		{MethodName: "RequireAdmin", Handler: requireAdminHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "foundation/auth/v1/auth.proto",
}

func registerHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AuthServiceServer).Register(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: RegisterMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AuthServiceServer).Register(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func loginHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AuthServiceServer).Login(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: LoginMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AuthServiceServer).Login(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func validateTokenHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AuthServiceServer).ValidateToken(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ValidateTokenMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AuthServiceServer).ValidateToken(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

func requireAdminHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AuthServiceServer).RequireAdmin(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: RequireAdminMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AuthServiceServer).RequireAdmin(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

// UserToStruct кодирует пользователя без хэша пароля.
func UserToStruct(u *models.User) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]any{
		"id":         float64(u.ID),
		"email":      u.Email,
		"full_name":  u.FullName,
		"is_active":  u.IsActive,
		"is_admin":   u.IsAdmin,
		"created_at": u.CreatedAt.UTC().Format(time.RFC3339Nano),
	})
}

// UserFromStruct обратное преобразование к UserToStruct.
func UserFromStruct(s *structpb.Struct) (*models.User, error) {
	const op = "authrpc.UserFromStruct"
	f := s.GetFields()

	u := &models.User{
		ID:       int64(f["id"].GetNumberValue()),
		Email:    f["email"].GetStringValue(),
		FullName: f["full_name"].GetStringValue(),
		IsActive: f["is_active"].GetBoolValue(),
		IsAdmin:  f["is_admin"].GetBoolValue(),
	}
	if u.ID == 0 || u.Email == "" {
		return nil, fmt.Errorf("%s: user id and email are required", op)
	}
	if raw := f["created_at"].GetStringValue(); raw != "" {
		t, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		u.CreatedAt = t
	}
	return u, nil
}
