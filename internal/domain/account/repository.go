// Package account covers restaurant owner sign-up and sign-in.
package account

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/menu-sites/internal/models"
)

var (
	ErrUserNotFound = errors.New("user_not_found")
	ErrEmailTaken   = errors.New("email_taken")
)

type Repository interface {
	// CreateOwner stores the user and their first restaurant atomically. A
	// taken subdomain surfaces as menu.ErrConflict.
	CreateOwner(ctx context.Context, user *models.User, restaurant *models.Restaurant) error
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByID(ctx context.Context, id string) (*models.User, error)
}
