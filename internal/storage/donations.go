package storage

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/foundation-backend/internal/models"
)

const donationColumns = `id, donor_id, amount, currency, transaction_id, payment_method,
	donor_name, donor_email, message, status, created_at`

func scanDonation(row rowScanner) (*models.Donation, error) {
	var d models.Donation
	if err := row.Scan(&d.ID, &d.DonorID, &d.Amount, &d.Currency, &d.TransactionID,
		&d.PaymentMethod, &d.DonorName, &d.DonorEmail, &d.Message, &d.Status,
		&d.CreatedAt); err != nil {
		return nil, err
	}
	return &d, nil
}

// CreateDonation сохраняет пожертвование в статусе pending.
func (s *Storage) CreateDonation(ctx context.Context, in models.DonationCreate) (*models.Donation, error) {
	const op = "storage.CreateDonation"

	query := `INSERT INTO donations (donor_id, amount, currency, transaction_id, payment_method,
				  donor_name, donor_email, message, status)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  RETURNING ` + donationColumns
	d, err := scanDonation(s.q.QueryRowContext(ctx, query, in.DonorID, in.Amount, in.Currency,
		in.TransactionID, in.PaymentMethod, in.DonorName, in.DonorEmail, in.Message,
		models.DonationPending))
	if err != nil {
		return nil, mapError(op, err)
	}
	return d, nil
}

// GetDonation возвращает пожертвование по ID.
func (s *Storage) GetDonation(ctx context.Context, id int64) (*models.Donation, error) {
	const op = "storage.GetDonation"

	d, err := scanDonation(s.q.QueryRowContext(ctx,
		`SELECT `+donationColumns+` FROM donations WHERE id = $1`, id))
	if err != nil {
		return nil, mapError(op, err)
	}
	return d, nil
}

// ListDonations возвращает пожертвования, новые первыми. Пустой статус не фильтрует.
func (s *Storage) ListDonations(ctx context.Context, filter models.DonationFilter) ([]*models.Donation, error) {
	const op = "storage.ListDonations"
	page := filter.Page.Normalize()

	query := `SELECT ` + donationColumns + ` FROM donations
			  WHERE ($1 = '' OR status = $1)
			  ORDER BY created_at DESC, id DESC
			  LIMIT $2 OFFSET $3`
	rows, err := s.q.QueryContext(ctx, query, filter.Status, page.Limit, page.Skip)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	result := make([]*models.Donation, 0)
	for rows.Next() {
		d, err := scanDonation(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, d)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateDonation меняет статус пожертвования.
func (s *Storage) UpdateDonation(ctx context.Context, id int64, in models.DonationUpdate) (*models.Donation, error) {
	const op = "storage.UpdateDonation"

	query := `UPDATE donations SET status = COALESCE($2, status)
			  WHERE id = $1
			  RETURNING ` + donationColumns
	d, err := scanDonation(s.q.QueryRowContext(ctx, query, id, in.Status))
	if err != nil {
		return nil, mapError(op, err)
	}
	return d, nil
}

// DeleteDonation удаляет пожертвование.
func (s *Storage) DeleteDonation(ctx context.Context, id int64) error {
	const op = "storage.DeleteDonation"

	res, err := s.q.ExecContext(ctx, `DELETE FROM donations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return checkAffected(op, res)
}
