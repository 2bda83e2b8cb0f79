package user

import (
	"context"

	"storefront/internal/domain"
)

type CreateInput struct {
	Email        string
	PasswordHash string
	Name         string
}

type Repository interface {
	Create(ctx context.Context, in CreateInput) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id string) (*domain.User, error)
}
