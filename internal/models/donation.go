package models

import "time"

// Статусы пожертвования.
const (
	DonationPending   = "pending"
	DonationCompleted = "completed"
	DonationFailed    = "failed"
)

// Donation пожертвование. DonorID ссылается на users.id, если донор был авторизован.
type Donation struct {
	ID            int64     `json:"id"`
	DonorID       *int64    `json:"donor_id"`
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency"`
	TransactionID *string   `json:"transaction_id"`
	PaymentMethod *string   `json:"payment_method"`
	DonorName     string    `json:"donor_name"`
	DonorEmail    string    `json:"donor_email"`
	Message       *string   `json:"message"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// DonationCreate входные данные для создания пожертвования.
type DonationCreate struct {
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	Currency      string  `json:"currency" validate:"omitempty,len=3,alpha"`
	DonorName     string  `json:"donor_name" validate:"required,max=255"`
	DonorEmail    string  `json:"donor_email" validate:"required,email,max=255"`
	Message       *string `json:"message"`
	PaymentMethod *string `json:"payment_method" validate:"omitempty,max=50"`
	TransactionID *string `json:"transaction_id" validate:"omitempty,max=255"`
	DonorID       *int64  `json:"-"`
}

// DonationUpdate обновление статуса пожертвования.
type DonationUpdate struct {
	Status *string `json:"status" validate:"omitempty,oneof=pending completed failed"`
}

// DonationFilter фильтр списка пожертвований. Пустой Status означает без фильтра.
type DonationFilter struct {
	Status string
	Page
}
