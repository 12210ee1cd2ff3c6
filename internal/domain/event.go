package domain

import (
	"context"
	"time"
)

type Event struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Location    string    `json:"location"`
	ImageURL    *string   `json:"image_url"`
	CreatedBy   *int64    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

type CreateEventRequest struct {
	Title       string  `json:"title" binding:"required,min=1,max=255"`
	Description string  `json:"description" binding:"required,min=1,max=5000"`
	Date        string  `json:"date" binding:"required,datetime=2006-01-02T15:04:05Z07:00"`
	Location    string  `json:"location" binding:"required,min=1,max=255"`
	ImageURL    *string `json:"image_url" binding:"omitempty,http_url"`
}

type EventFilter struct {
	Upcoming bool `form:"upcoming"`
}

type EventRepository interface {
	// List returns events ordered by date; with after set only those on or after it.
	List(ctx context.Context, after *time.Time) ([]Event, error)
	Create(ctx context.Context, e *Event) error
	Delete(ctx context.Context, id int64) (bool, error)
}

type EventUsecase interface {
	List(ctx context.Context, f EventFilter) ([]Event, error)
	Create(ctx context.Context, req CreateEventRequest) (*Event, error)
	Delete(ctx context.Context, id int64) error
}
