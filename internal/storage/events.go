package storage

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/foundation-backend/internal/models"
)

const eventColumns = `id, title, description, date, location, image_url, registration_required,
	max_attendees, attendees_count, is_active, created_at, updated_at`

func scanEvent(row rowScanner) (*models.Event, error) {
	var e models.Event
	if err := row.Scan(&e.ID, &e.Title, &e.Description, &e.Date, &e.Location, &e.ImageURL,
		&e.RegistrationRequired, &e.MaxAttendees, &e.AttendeesCount, &e.IsActive,
		&e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	return &e, nil
}

// CreateEvent вставляет мероприятие и возвращает сохранённую запись.
func (s *Storage) CreateEvent(ctx context.Context, in models.EventCreate) (*models.Event, error) {
	const op = "storage.CreateEvent"

	query := `INSERT INTO events (title, description, date, location, image_url,
				  registration_required, max_attendees)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING ` + eventColumns
	e, err := scanEvent(s.q.QueryRowContext(ctx, query, in.Title, in.Description, in.Date,
		in.Location, in.ImageURL, in.RegistrationRequired, in.MaxAttendees))
	if err != nil {
		return nil, mapError(op, err)
	}
	return e, nil
}

// GetEvent возвращает мероприятие по ID независимо от признака активности.
func (s *Storage) GetEvent(ctx context.Context, id int64) (*models.Event, error) {
	const op = "storage.GetEvent"

	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	e, err := scanEvent(s.q.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError(op, err)
	}
	return e, nil
}

// ListEvents возвращает мероприятия с заданным признаком активности, ближайшие первыми.
func (s *Storage) ListEvents(ctx context.Context, filter models.EventFilter) ([]*models.Event, error) {
	const op = "storage.ListEvents"
	page := filter.Page.Normalize()

	query := `SELECT ` + eventColumns + ` FROM events
			  WHERE is_active = $1
			  ORDER BY date, id
			  LIMIT $2 OFFSET $3`
	rows, err := s.q.QueryContext(ctx, query, filter.IsActive, page.Limit, page.Skip)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateEvent применяет частичное обновление: nil-поля не меняются.
func (s *Storage) UpdateEvent(ctx context.Context, id int64, in models.EventUpdate) (*models.Event, error) {
	const op = "storage.UpdateEvent"

	query := `UPDATE events SET
				  title = COALESCE($2, title),
				  description = COALESCE($3, description),
				  date = COALESCE($4, date),
				  location = COALESCE($5, location),
				  image_url = COALESCE($6, image_url),
				  registration_required = COALESCE($7, registration_required),
				  max_attendees = COALESCE($8, max_attendees),
				  is_active = COALESCE($9, is_active),
				  updated_at = NOW()
			  WHERE id = $1
			  RETURNING ` + eventColumns
	e, err := scanEvent(s.q.QueryRowContext(ctx, query, id, in.Title, in.Description, in.Date,
		in.Location, in.ImageURL, in.RegistrationRequired, in.MaxAttendees, in.IsActive))
	if err != nil {
		return nil, mapError(op, err)
	}
	return e, nil
}

// DeactivateEvent выполняет мягкое удаление мероприятия.
func (s *Storage) DeactivateEvent(ctx context.Context, id int64) error {
	const op = "storage.DeactivateEvent"

	res, err := s.q.ExecContext(ctx,
		`UPDATE events SET is_active = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return checkAffected(op, res)
}

// CountEvents возвращает общее число мероприятий.
func (s *Storage) CountEvents(ctx context.Context) (int64, error) {
	const op = "storage.CountEvents"

	var n int64
	if err := s.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM events`).Scan(&n); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}
