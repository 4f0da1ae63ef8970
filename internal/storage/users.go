package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/foundation-backend/internal/models"
)

const userColumns = `id, email, password_hash, full_name, is_active, is_admin, created_at`

func scanUser(row rowScanner) (*models.User, error) {
	var u models.User
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FullName,
		&u.IsActive, &u.IsAdmin, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser сохраняет нового пользователя. Дубликат email возвращает models.ErrAlreadyExists.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	const op = "storage.CreateUser"

	query := `INSERT INTO users (email, password_hash, full_name, is_active, is_admin)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING ` + userColumns
	u, err := scanUser(s.q.QueryRowContext(ctx, query,
		user.Email, user.PasswordHash, user.FullName, user.IsActive, user.IsAdmin))
	if err != nil {
		return nil, mapError(op, err)
	}
	return u, nil
}

// CreateUserIfAbsent сохраняет пользователя, если email свободен.
// Конфликт не прерывает транзакцию: второй результат false, запись не создана.
func (s *Storage) CreateUserIfAbsent(ctx context.Context, user models.User) (*models.User, bool, error) {
	const op = "storage.CreateUserIfAbsent"

	query := `INSERT INTO users (email, password_hash, full_name, is_active, is_admin)
			  VALUES ($1, $2, $3, $4, $5)
			  ON CONFLICT (email) DO NOTHING
			  RETURNING ` + userColumns
	u, err := scanUser(s.q.QueryRowContext(ctx, query,
		user.Email, user.PasswordHash, user.FullName, user.IsActive, user.IsAdmin))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, mapError(op, err)
	}
	return u, true, nil
}

// GetUserByEmail возвращает пользователя по email.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"

	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	u, err := scanUser(s.q.QueryRowContext(ctx, query, email))
	if err != nil {
		return nil, mapError(op, err)
	}
	return u, nil
}

// ListUsers возвращает пользователей в порядке регистрации.
func (s *Storage) ListUsers(ctx context.Context, page models.Page) ([]*models.User, error) {
	const op = "storage.ListUsers"
	page = page.Normalize()

	query := `SELECT ` + userColumns + ` FROM users ORDER BY id LIMIT $1 OFFSET $2`
	rows, err := s.q.QueryContext(ctx, query, page.Limit, page.Skip)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ToggleUserAdmin инвертирует признак администратора и возвращает обновлённую запись.
func (s *Storage) ToggleUserAdmin(ctx context.Context, id int64) (*models.User, error) {
	const op = "storage.ToggleUserAdmin"

	query := `UPDATE users SET is_admin = NOT is_admin WHERE id = $1 RETURNING ` + userColumns
	u, err := scanUser(s.q.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError(op, err)
	}
	return u, nil
}

// SetUserActive активирует или деактивирует учётную запись.
func (s *Storage) SetUserActive(ctx context.Context, id int64, isActive bool) (*models.User, error) {
	const op = "storage.SetUserActive"

	query := `UPDATE users SET is_active = $2 WHERE id = $1 RETURNING ` + userColumns
	u, err := scanUser(s.q.QueryRowContext(ctx, query, id, isActive))
	if err != nil {
		return nil, mapError(op, err)
	}
	return u, nil
}
