package storage

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/foundation-backend/internal/models"
)

const artistColumns = `id, name, bio, genre, image_url, social_links, is_featured, created_at, updated_at`

func scanArtist(row rowScanner) (*models.Artist, error) {
	var a models.Artist
	if err := row.Scan(&a.ID, &a.Name, &a.Bio, &a.Genre, &a.ImageURL, &a.SocialLinks,
		&a.IsFeatured, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

// CreateArtist вставляет артиста.
func (s *Storage) CreateArtist(ctx context.Context, in models.ArtistCreate) (*models.Artist, error) {
	const op = "storage.CreateArtist"

	query := `INSERT INTO artists (name, bio, genre, image_url, social_links, is_featured)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING ` + artistColumns
	a, err := scanArtist(s.q.QueryRowContext(ctx, query,
		in.Name, in.Bio, in.Genre, in.ImageURL, in.SocialLinks, in.IsFeatured))
	if err != nil {
		return nil, mapError(op, err)
	}
	return a, nil
}

// GetArtist возвращает артиста по ID.
func (s *Storage) GetArtist(ctx context.Context, id int64) (*models.Artist, error) {
	const op = "storage.GetArtist"

	a, err := scanArtist(s.q.QueryRowContext(ctx,
		`SELECT `+artistColumns+` FROM artists WHERE id = $1`, id))
	if err != nil {
		return nil, mapError(op, err)
	}
	return a, nil
}

// ListArtists возвращает артистов; фильтр по is_featured применяется, если задан.
func (s *Storage) ListArtists(ctx context.Context, filter models.ArtistFilter) ([]*models.Artist, error) {
	const op = "storage.ListArtists"
	page := filter.Page.Normalize()

	query := `SELECT ` + artistColumns + ` FROM artists
			  WHERE ($1::boolean IS NULL OR is_featured = $1)
			  ORDER BY id
			  LIMIT $2 OFFSET $3`
	rows, err := s.q.QueryContext(ctx, query, filter.IsFeatured, page.Limit, page.Skip)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.Artist, 0)
	for rows.Next() {
		a, err := scanArtist(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateArtist частичное обновление артиста.
func (s *Storage) UpdateArtist(ctx context.Context, id int64, in models.ArtistUpdate) (*models.Artist, error) {
	const op = "storage.UpdateArtist"

	query := `UPDATE artists SET
				  name = COALESCE($2, name),
				  bio = COALESCE($3, bio),
				  genre = COALESCE($4, genre),
				  image_url = COALESCE($5, image_url),
				  social_links = COALESCE($6, social_links),
				  is_featured = COALESCE($7, is_featured),
				  updated_at = NOW()
			  WHERE id = $1
			  RETURNING ` + artistColumns
	a, err := scanArtist(s.q.QueryRowContext(ctx, query, id,
		in.Name, in.Bio, in.Genre, in.ImageURL, in.SocialLinks, in.IsFeatured))
	if err != nil {
		return nil, mapError(op, err)
	}
	return a, nil
}

// DeleteArtist удаляет артиста.
func (s *Storage) DeleteArtist(ctx context.Context, id int64) error {
	const op = "storage.DeleteArtist"

	res, err := s.q.ExecContext(ctx, `DELETE FROM artists WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return checkAffected(op, res)
}

// CountArtists возвращает число артистов.
func (s *Storage) CountArtists(ctx context.Context) (int64, error) {
	const op = "storage.CountArtists"

	var n int64
	if err := s.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM artists`).Scan(&n); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}
