package models

import "time"

// Artist артист, поддерживаемый фондом.
type Artist struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Bio         *string   `json:"bio"`
	Genre       *string   `json:"genre"`
	ImageURL    *string   `json:"image_url"`
	SocialLinks *string   `json:"social_links"` // JSON-строка со ссылками на соцсети
	IsFeatured  bool      `json:"is_featured"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ArtistCreate входные данные для создания артиста.
type ArtistCreate struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Bio         *string `json:"bio"`
	Genre       *string `json:"genre" validate:"omitempty,max=100"`
	ImageURL    *string `json:"image_url" validate:"omitempty,url,max=500"`
	SocialLinks *string `json:"social_links" validate:"omitempty,max=2000"`
	IsFeatured  bool    `json:"is_featured"`
}

// ArtistUpdate частичное обновление артиста.
type ArtistUpdate struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=255"`
	Bio         *string `json:"bio"`
	Genre       *string `json:"genre" validate:"omitempty,max=100"`
	ImageURL    *string `json:"image_url" validate:"omitempty,url,max=500"`
	SocialLinks *string `json:"social_links" validate:"omitempty,max=2000"`
	IsFeatured  *bool   `json:"is_featured"`
}

// ArtistFilter фильтр списка артистов. IsFeatured == nil означает без фильтра.
type ArtistFilter struct {
	IsFeatured *bool
	Page
}
