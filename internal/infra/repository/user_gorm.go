package repository

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/menu-sites/internal/domain/account"
	"github.com/BruksfildServices01/menu-sites/internal/domain/menu"
	"github.com/BruksfildServices01/menu-sites/internal/models"
)

type UserGormRepository struct {
	db *gorm.DB
}

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

func (r *UserGormRepository) CreateOwner(
	ctx context.Context,
	user *models.User,
	restaurant *models.Restaurant,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			if err := translate(err); errors.Is(err, menu.ErrConflict) && strings.Contains(err.Error(), "email") {
				return account.ErrEmailTaken
			}
			return err
		}

		restaurant.UserID = user.ID
		return NewRestaurantGormRepository(tx).CreateRestaurant(ctx, restaurant)
	})
	if errors.Is(err, account.ErrEmailTaken) {
		return err
	}
	return translate(err)
}

func (r *UserGormRepository) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).Take(&u).Error
	return r.found(&u, err)
}

func (r *UserGormRepository) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&u).Error
	return r.found(&u, err)
}

func (r *UserGormRepository) found(u *models.User, err error) (*models.User, error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, account.ErrUserNotFound
	}
	if err != nil {
		return nil, translate(err)
	}
	return u, nil
}

var _ account.Repository = (*UserGormRepository)(nil)
