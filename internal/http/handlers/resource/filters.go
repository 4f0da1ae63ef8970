package resource

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/magabrotheeeer/foundation-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/foundation-backend/internal/http/request"
	"github.com/magabrotheeeer/foundation-backend/internal/models"
)

// EventFilter is_active (по умолчанию true).
func EventFilter(q url.Values, page models.Page) (models.EventFilter, error) {
	active, err := request.BoolDefault(q, "is_active", true)
	return models.EventFilter{IsActive: active, Page: page}, err
}

// ArtistFilter is_featured (без фильтра, если не задан).
func ArtistFilter(q url.Values, page models.Page) (models.ArtistFilter, error) {
	featured, err := request.Bool(q, "is_featured")
	return models.ArtistFilter{IsFeatured: featured, Page: page}, err
}

// MerchandiseFilter is_available (по умолчанию true) и category.
func MerchandiseFilter(q url.Values, page models.Page) (models.MerchandiseFilter, error) {
	available, err := request.BoolDefault(q, "is_available", true)
	return models.MerchandiseFilter{
		IsAvailable: available,
		Category:    strings.TrimSpace(q.Get("category")),
		Page:        page,
	}, err
}

// DonationFilter status_filter.
func DonationFilter(q url.Values, page models.Page) (models.DonationFilter, error) {
	return models.DonationFilter{Status: strings.TrimSpace(q.Get("status_filter")), Page: page}, nil
}

// ContactFilter is_read.
func ContactFilter(q url.Values, page models.Page) (models.ContactMessageFilter, error) {
	read, err := request.Bool(q, "is_read")
	return models.ContactMessageFilter{IsRead: read, Page: page}, err
}

// SetDonor проставляет donor_id авторизованного пользователя.
func SetDonor(r *http.Request, in *models.DonationCreate) {
	in.DonorID = nil
	if u := middlewarectx.UserFromContext(r.Context()); u != nil {
		id := u.ID
		in.DonorID = &id
	}
}

// SetSender проставляет sender_id авторизованного пользователя.
func SetSender(r *http.Request, in *models.ContactMessageCreate) {
	in.SenderID = nil
	if u := middlewarectx.UserFromContext(r.Context()); u != nil {
		id := u.ID
		in.SenderID = &id
	}
}
