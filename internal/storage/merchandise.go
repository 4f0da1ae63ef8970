package storage

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/foundation-backend/internal/models"
)

const merchandiseColumns = `id, name, description, price, image_url, stock_quantity, category,
	is_available, created_at, updated_at`

func scanMerchandise(row rowScanner) (*models.MerchandiseItem, error) {
	var m models.MerchandiseItem
	if err := row.Scan(&m.ID, &m.Name, &m.Description, &m.Price, &m.ImageURL,
		&m.StockQuantity, &m.Category, &m.IsAvailable, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

// CreateMerchandiseItem вставляет товар. Если IsAvailable не задан, товар доступен.
func (s *Storage) CreateMerchandiseItem(ctx context.Context, in models.MerchandiseItemCreate) (*models.MerchandiseItem, error) {
	const op = "storage.CreateMerchandiseItem"

	query := `INSERT INTO merchandise (name, description, price, image_url, stock_quantity,
				  category, is_available)
			  VALUES ($1, $2, $3, $4, $5, $6, COALESCE($7, TRUE))
			  RETURNING ` + merchandiseColumns
	m, err := scanMerchandise(s.q.QueryRowContext(ctx, query, in.Name, in.Description, in.Price,
		in.ImageURL, in.StockQuantity, in.Category, in.IsAvailable))
	if err != nil {
		return nil, mapError(op, err)
	}
	return m, nil
}

// GetMerchandiseItem возвращает товар по ID.
func (s *Storage) GetMerchandiseItem(ctx context.Context, id int64) (*models.MerchandiseItem, error) {
	const op = "storage.GetMerchandiseItem"

	m, err := scanMerchandise(s.q.QueryRowContext(ctx,
		`SELECT `+merchandiseColumns+` FROM merchandise WHERE id = $1`, id))
	if err != nil {
		return nil, mapError(op, err)
	}
	return m, nil
}

// ListMerchandise возвращает каталог по признаку доступности и категории.
func (s *Storage) ListMerchandise(ctx context.Context, filter models.MerchandiseFilter) ([]*models.MerchandiseItem, error) {
	const op = "storage.ListMerchandise"
	page := filter.Page.Normalize()

	query := `SELECT ` + merchandiseColumns + ` FROM merchandise
			  WHERE is_available = $1 AND ($2 = '' OR category = $2)
			  ORDER BY id
			  LIMIT $3 OFFSET $4`
	rows, err := s.q.QueryContext(ctx, query, filter.IsAvailable, filter.Category, page.Limit, page.Skip)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.MerchandiseItem, 0)
	for rows.Next() {
		m, err := scanMerchandise(rows)
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

// UpdateMerchandiseItem частичное обновление товара.
func (s *Storage) UpdateMerchandiseItem(ctx context.Context, id int64, in models.MerchandiseItemUpdate) (*models.MerchandiseItem, error) {
	const op = "storage.UpdateMerchandiseItem"

	query := `UPDATE merchandise SET
				  name = COALESCE($2, name),
				  description = COALESCE($3, description),
				  price = COALESCE($4, price),
				  image_url = COALESCE($5, image_url),
				  stock_quantity = COALESCE($6, stock_quantity),
				  category = COALESCE($7, category),
				  is_available = COALESCE($8, is_available),
				  updated_at = NOW()
			  WHERE id = $1
			  RETURNING ` + merchandiseColumns
	m, err := scanMerchandise(s.q.QueryRowContext(ctx, query, id, in.Name, in.Description,
		in.Price, in.ImageURL, in.StockQuantity, in.Category, in.IsAvailable))
	if err != nil {
		return nil, mapError(op, err)
	}
	return m, nil
}

// DeleteMerchandiseItem удаляет товар.
func (s *Storage) DeleteMerchandiseItem(ctx context.Context, id int64) error {
	const op = "storage.DeleteMerchandiseItem"

	res, err := s.q.ExecContext(ctx, `DELETE FROM merchandise WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return checkAffected(op, res)
}
