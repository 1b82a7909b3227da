package menu

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/menu-sites/internal/domain/tenant"
	"github.com/BruksfildServices01/menu-sites/internal/models"
)

var (
	// ErrRecordNotFound is returned by repositories when no row matches,
	// soft-deleted rows included unless IncludeDeleted was requested.
	ErrRecordNotFound = errors.New("record_not_found")

	// ErrConflict reports a uniqueness violation (subdomain, custom domain,
	// menu slug) among non-deleted rows.
	ErrConflict = errors.New("conflict")
)

// Reader is the read side of the persistence collaborator.
type Reader interface {
	// FindRestaurantGraph returns the non-deleted restaurant matching key by
	// subdomain or custom domain, with non-deleted menus, sections, items and
	// images preloaded and sorted by position then creation order.
	FindRestaurantGraph(
		ctx context.Context,
		key tenant.Key,
	) (*models.Restaurant, error)

	// ListTenantKeys lists the keys of every non-deleted restaurant.
	ListTenantKeys(
		ctx context.Context,
	) ([]tenant.Key, error)
}

// ===============================
// Owner side
// ===============================

type ReadOptions struct {
	IncludeDeleted bool
}

type ReadOption func(*ReadOptions)

// IncludeDeleted makes a read return soft-deleted rows as well.
func IncludeDeleted() ReadOption {
	return func(o *ReadOptions) { o.IncludeDeleted = true }
}

func ApplyReadOptions(opts []ReadOption) ReadOptions {
	var o ReadOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Store is the owner-facing CRUD contract. Reads exclude soft-deleted rows
// unless IncludeDeleted is passed. Deletes only ever set deleted_at.
type Store interface {
	Reader

	FindRestaurantByOwner(ctx context.Context, userID string, opts ...ReadOption) (*models.Restaurant, error)
	CreateRestaurant(ctx context.Context, r *models.Restaurant) error
	UpdateRestaurant(ctx context.Context, r *models.Restaurant) error
	SoftDeleteRestaurant(ctx context.Context, id string) error

	ListMenus(ctx context.Context, restaurantID string, opts ...ReadOption) ([]models.Menu, error)
	FindMenu(ctx context.Context, restaurantID, id string, opts ...ReadOption) (*models.Menu, error)
	CreateMenu(ctx context.Context, m *models.Menu) error
	UpdateMenu(ctx context.Context, m *models.Menu) error
	SoftDeleteMenu(ctx context.Context, restaurantID, id string) error

	FindSection(ctx context.Context, restaurantID, id string, opts ...ReadOption) (*models.Section, error)
	CreateSection(ctx context.Context, s *models.Section) error
	UpdateSection(ctx context.Context, s *models.Section) error
	SoftDeleteSection(ctx context.Context, restaurantID, id string) error

	FindItem(ctx context.Context, restaurantID, id string, opts ...ReadOption) (*models.MenuItem, error)
	CreateItem(ctx context.Context, it *models.MenuItem) error
	UpdateItem(ctx context.Context, it *models.MenuItem) error
	SoftDeleteItem(ctx context.Context, restaurantID, id string) error

	CreateImage(ctx context.Context, img *models.Image) error
}
