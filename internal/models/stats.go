package models

// SiteStats сводка для панели администратора.
type SiteStats struct {
	TotalUsers     int64   `json:"total_users"`
	TotalEvents    int64   `json:"total_events"`
	TotalArtists   int64   `json:"total_artists"`
	TotalDonations int64   `json:"total_donations"`
	TotalDonated   float64 `json:"total_donated"`
	TotalMessages  int64   `json:"total_messages"`
	UnreadMessages int64   `json:"unread_messages"`
}
