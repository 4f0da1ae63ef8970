package models

import "time"

// Event мероприятие фонда. Удаление мягкое: IsActive=false.
type Event struct {
	ID                   int64     `json:"id"`
	Title                string    `json:"title"`
	Description          *string   `json:"description"`
	Date                 time.Time `json:"date"`
	Location             *string   `json:"location"`
	ImageURL             *string   `json:"image_url"`
	RegistrationRequired bool      `json:"registration_required"`
	MaxAttendees         *int      `json:"max_attendees"`
	AttendeesCount       int       `json:"attendees_count"`
	IsActive             bool      `json:"is_active"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// EventCreate входные данные для создания мероприятия.
type EventCreate struct {
	Title                string    `json:"title" validate:"required,max=255"`
	Description          *string   `json:"description"`
	Date                 time.Time `json:"date" validate:"required"`
	Location             *string   `json:"location" validate:"omitempty,max=255"`
	ImageURL             *string   `json:"image_url" validate:"omitempty,url,max=500"`
	RegistrationRequired bool      `json:"registration_required"`
	MaxAttendees         *int      `json:"max_attendees" validate:"omitempty,gte=0"`
}

// EventUpdate частичное обновление: nil означает "не менять".
type EventUpdate struct {
	Title                *string    `json:"title" validate:"omitempty,min=1,max=255"`
	Description          *string    `json:"description"`
	Date                 *time.Time `json:"date"`
	Location             *string    `json:"location" validate:"omitempty,max=255"`
	ImageURL             *string    `json:"image_url" validate:"omitempty,url,max=500"`
	RegistrationRequired *bool      `json:"registration_required"`
	MaxAttendees         *int       `json:"max_attendees" validate:"omitempty,gte=0"`
	IsActive             *bool      `json:"is_active"`
}

// EventFilter фильтр списка мероприятий.
type EventFilter struct {
	IsActive bool
	Page
}
