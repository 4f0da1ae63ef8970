package storage

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/foundation-backend/internal/models"
)

// GetSiteStats собирает сводку для панели администратора одним запросом.
func (s *Storage) GetSiteStats(ctx context.Context) (*models.SiteStats, error) {
	const op = "storage.GetSiteStats"

	query := `SELECT
				  (SELECT COUNT(*) FROM users),
				  (SELECT COUNT(*) FROM events),
				  (SELECT COUNT(*) FROM artists),
				  (SELECT COUNT(*) FROM donations),
				  (SELECT COALESCE(SUM(amount), 0) FROM donations WHERE status = $1),
				  (SELECT COUNT(*) FROM contact_messages),
				  (SELECT COUNT(*) FROM contact_messages WHERE is_read = FALSE)`
	var st models.SiteStats
	if err := s.q.QueryRowContext(ctx, query, models.DonationCompleted).Scan(
		&st.TotalUsers, &st.TotalEvents, &st.TotalArtists, &st.TotalDonations,
		&st.TotalDonated, &st.TotalMessages, &st.UnreadMessages,
	); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &st, nil
}
