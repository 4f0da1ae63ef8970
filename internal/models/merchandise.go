package models

import "time"

// MerchandiseItem товар магазина фонда.
type MerchandiseItem struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Description   *string   `json:"description"`
	Price         float64   `json:"price"`
	ImageURL      *string   `json:"image_url"`
	StockQuantity int       `json:"stock_quantity"`
	Category      *string   `json:"category"`
	IsAvailable   bool      `json:"is_available"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// MerchandiseItemCreate входные данные для создания товара.
type MerchandiseItemCreate struct {
	Name          string   `json:"name" validate:"required,max=255"`
	Description   *string  `json:"description"`
	Price         *float64 `json:"price" validate:"required,gte=0"`
	ImageURL      *string  `json:"image_url" validate:"omitempty,url,max=500"`
	StockQuantity int      `json:"stock_quantity" validate:"gte=0"`
	Category      *string  `json:"category" validate:"omitempty,max=100"`
	IsAvailable   *bool    `json:"is_available"`
}

// MerchandiseItemUpdate частичное обновление товара.
type MerchandiseItemUpdate struct {
	Name          *string  `json:"name" validate:"omitempty,min=1,max=255"`
	Description   *string  `json:"description"`
	Price         *float64 `json:"price" validate:"omitempty,gte=0"`
	ImageURL      *string  `json:"image_url" validate:"omitempty,url,max=500"`
	StockQuantity *int     `json:"stock_quantity" validate:"omitempty,gte=0"`
	Category      *string  `json:"category" validate:"omitempty,max=100"`
	IsAvailable   *bool    `json:"is_available"`
}

// MerchandiseFilter фильтр каталога. Пустой Category означает без фильтра.
type MerchandiseFilter struct {
	IsAvailable bool
	Category    string
	Page
}
