package storage

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/foundation-backend/internal/models"
)

const contactColumns = `id, sender_id, name, email, subject, message, phone, is_read, created_at`

func scanContactMessage(row rowScanner) (*models.ContactMessage, error) {
	var m models.ContactMessage
	if err := row.Scan(&m.ID, &m.SenderID, &m.Name, &m.Email, &m.Subject, &m.Message,
		&m.Phone, &m.IsRead, &m.CreatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

// CreateContactMessage сохраняет сообщение обратной связи.
func (s *Storage) CreateContactMessage(ctx context.Context, in models.ContactMessageCreate) (*models.ContactMessage, error) {
	const op = "storage.CreateContactMessage"

	query := `INSERT INTO contact_messages (sender_id, name, email, subject, message, phone)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING ` + contactColumns
	m, err := scanContactMessage(s.q.QueryRowContext(ctx, query,
		in.SenderID, in.Name, in.Email, in.Subject, in.Message, in.Phone))
	if err != nil {
		return nil, mapError(op, err)
	}
	return m, nil
}

// GetContactMessage возвращает сообщение по ID.
func (s *Storage) GetContactMessage(ctx context.Context, id int64) (*models.ContactMessage, error) {
	const op = "storage.GetContactMessage"

	m, err := scanContactMessage(s.q.QueryRowContext(ctx,
		`SELECT `+contactColumns+` FROM contact_messages WHERE id = $1`, id))
	if err != nil {
		return nil, mapError(op, err)
	}
	return m, nil
}

// ListContactMessages возвращает сообщения, новые первыми.
func (s *Storage) ListContactMessages(ctx context.Context, filter models.ContactMessageFilter) ([]*models.ContactMessage, error) {
	const op = "storage.ListContactMessages"
	page := filter.Page.Normalize()

	query := `SELECT ` + contactColumns + ` FROM contact_messages
			  WHERE ($1::boolean IS NULL OR is_read = $1)
			  ORDER BY created_at DESC, id DESC
			  LIMIT $2 OFFSET $3`
	rows, err := s.q.QueryContext(ctx, query, filter.IsRead, page.Limit, page.Skip)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.ContactMessage, 0)
	for rows.Next() {
		m, err := scanContactMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateContactMessage отмечает сообщение прочитанным или непрочитанным.
func (s *Storage) UpdateContactMessage(ctx context.Context, id int64, in models.ContactMessageUpdate) (*models.ContactMessage, error) {
	const op = "storage.UpdateContactMessage"

	query := `UPDATE contact_messages SET is_read = COALESCE($2, is_read)
			  WHERE id = $1
			  RETURNING ` + contactColumns
	m, err := scanContactMessage(s.q.QueryRowContext(ctx, query, id, in.IsRead))
	if err != nil {
		return nil, mapError(op, err)
	}
	return m, nil
}

// DeleteContactMessage удаляет сообщение.
func (s *Storage) DeleteContactMessage(ctx context.Context, id int64) error {
	const op = "storage.DeleteContactMessage"

	res, err := s.q.ExecContext(ctx, `DELETE FROM contact_messages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return checkAffected(op, res)
}
