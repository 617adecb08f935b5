package service

import (
	"context"

	"bookline/api/internal/models"
)

// Datastore access is injected through these interfaces so tests can
// swap the pgx-backed repositories for in-memory ones.

type UserStore interface {
	Create(ctx context.Context, user models.User) error
	FindByEmail(ctx context.Context, email string) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	Count(ctx context.Context) (int, error)
	Delete(ctx context.Context, id string) error
}

type SessionStore interface {
	Create(ctx context.Context, session models.Session) error
	GetValid(ctx context.Context, sid string) (models.Session, error)
	Delete(ctx context.Context, sid string) error
}

type BookingStore interface {
	Create(ctx context.Context, booking models.Booking) error
	ListByUser(ctx context.Context, userID string) ([]models.Booking, error)
	DeleteOwned(ctx context.Context, id string, userID string) error
	DeleteByUser(ctx context.Context, userID string) error
}
