package models

import "time"

// ContactMessage сообщение из формы обратной связи.
type ContactMessage struct {
	ID        int64     `json:"id"`
	SenderID  *int64    `json:"sender_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   *string   `json:"subject"`
	Message   string    `json:"message"`
	Phone     *string   `json:"phone"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

// ContactMessageCreate входные данные формы обратной связи.
type ContactMessageCreate struct {
	Name     string  `json:"name" validate:"required,max=255"`
	Email    string  `json:"email" validate:"required,email,max=255"`
	Subject  *string `json:"subject" validate:"omitempty,max=255"`
	Message  string  `json:"message" validate:"required"`
	Phone    *string `json:"phone" validate:"omitempty,max=20"`
	SenderID *int64  `json:"-"`
}

// ContactMessageUpdate отметка о прочтении.
type ContactMessageUpdate struct {
	IsRead *bool `json:"is_read"`
}

// ContactMessageFilter фильтр списка сообщений. IsRead == nil означает без фильтра.
type ContactMessageFilter struct {
	IsRead *bool
	Page
}
