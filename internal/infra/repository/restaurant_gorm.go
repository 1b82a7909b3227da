package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/menu-sites/internal/domain/menu"
	"github.com/BruksfildServices01/menu-sites/internal/domain/tenant"
	"github.com/BruksfildServices01/menu-sites/internal/models"
)

type RestaurantGormRepository struct {
	db *gorm.DB
}

func NewRestaurantGormRepository(db *gorm.DB) *RestaurantGormRepository {
	return &RestaurantGormRepository{db: db}
}

// live filters soft-deleted rows and applies the display order used at every
// level of the menu graph.
func live(db *gorm.DB) *gorm.DB {
	return db.
		Where("deleted_at IS NULL").
		Order("position ASC").
		Order("created_at ASC").
		Order("id ASC")
}

func scoped(opts []menu.ReadOption) func(*gorm.DB) *gorm.DB {
	o := menu.ApplyReadOptions(opts)
	return func(db *gorm.DB) *gorm.DB {
		if o.IncludeDeleted {
			return db
		}
		return db.Where("deleted_at IS NULL")
	}
}

// --------------------------------------------------
// Public site
// --------------------------------------------------

func (r *RestaurantGormRepository) FindRestaurantGraph(
	ctx context.Context,
	key tenant.Key,
) (*models.Restaurant, error) {

	// The column the resolver named is tried first, then the other one.
	columns := [2]string{"subdomain", "custom_domain"}
	if key.Kind == tenant.KindCustomDomain {
		columns = [2]string{"custom_domain", "subdomain"}
	}

	var rest models.Restaurant

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		for _, col := range columns {
			err = tx.
				Preload("CoverImage").
				Preload("Menus", live).
				Preload("Menus.Sections", live).
				Preload("Menus.Sections.Items", live).
				Preload("Menus.Sections.Items.Image").
				Where("deleted_at IS NULL").
				Where(col+" = ?", key.Value).
				Take(&rest).Error
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}
		return err
	}, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})

	if err != nil {
		return nil, translate(err)
	}
	return &rest, nil
}

func (r *RestaurantGormRepository) ListTenantKeys(
	ctx context.Context,
) ([]tenant.Key, error) {

	var rows []models.Restaurant
	if err := r.db.WithContext(ctx).
		Select("id", "subdomain", "custom_domain").
		Where("deleted_at IS NULL").
		Where("subdomain IS NOT NULL OR custom_domain IS NOT NULL").
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, translate(err)
	}

	keys := make([]tenant.Key, 0, len(rows))
	for _, row := range rows {
		if row.Subdomain != nil {
			keys = append(keys, tenant.Key{Value: *row.Subdomain, Kind: tenant.KindSubdomain})
			continue
		}
		keys = append(keys, tenant.Key{Value: *row.CustomDomain, Kind: tenant.KindCustomDomain})
	}
	return keys, nil
}

// --------------------------------------------------
// Restaurant
// --------------------------------------------------

func (r *RestaurantGormRepository) FindRestaurantByOwner(
	ctx context.Context,
	userID string,
	opts ...menu.ReadOption,
) (*models.Restaurant, error) {

	var rest models.Restaurant
	if err := r.db.WithContext(ctx).
		Scopes(scoped(opts)).
		Preload("CoverImage").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		First(&rest).Error; err != nil {
		return nil, translate(err)
	}
	return &rest, nil
}

func (r *RestaurantGormRepository) CreateRestaurant(
	ctx context.Context,
	rest *models.Restaurant,
) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(rest).Error)
}

func (r *RestaurantGormRepository) UpdateRestaurant(
	ctx context.Context,
	rest *models.Restaurant,
) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Save(rest).Error)
}

func (r *RestaurantGormRepository) SoftDeleteRestaurant(
	ctx context.Context,
	id string,
) error {
	return r.softDelete(ctx, &models.Restaurant{}, "id = ?", id)
}

// --------------------------------------------------
// Menu
// --------------------------------------------------

func (r *RestaurantGormRepository) ListMenus(
	ctx context.Context,
	restaurantID string,
	opts ...menu.ReadOption,
) ([]models.Menu, error) {

	var menus []models.Menu
	if err := r.db.WithContext(ctx).
		Scopes(scoped(opts)).
		Where("restaurant_id = ?", restaurantID).
		Order("position ASC").
		Order("created_at ASC").
		Order("id ASC").
		Find(&menus).Error; err != nil {
		return nil, translate(err)
	}
	return menus, nil
}

func (r *RestaurantGormRepository) FindMenu(
	ctx context.Context,
	restaurantID string,
	id string,
	opts ...menu.ReadOption,
) (*models.Menu, error) {

	var m models.Menu
	if err := r.db.WithContext(ctx).
		Scopes(scoped(opts)).
		Where("id = ? AND restaurant_id = ?", id, restaurantID).
		Take(&m).Error; err != nil {
		return nil, translate(err)
	}
	return &m, nil
}

func (r *RestaurantGormRepository) CreateMenu(ctx context.Context, m *models.Menu) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(m).Error)
}

func (r *RestaurantGormRepository) UpdateMenu(ctx context.Context, m *models.Menu) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Save(m).Error)
}

func (r *RestaurantGormRepository) SoftDeleteMenu(ctx context.Context, restaurantID, id string) error {
	return r.softDelete(ctx, &models.Menu{}, "id = ? AND restaurant_id = ?", id, restaurantID)
}

// --------------------------------------------------
// Section
// --------------------------------------------------

func (r *RestaurantGormRepository) FindSection(
	ctx context.Context,
	restaurantID string,
	id string,
	opts ...menu.ReadOption,
) (*models.Section, error) {

	var s models.Section
	if err := r.db.WithContext(ctx).
		Scopes(scoped(opts)).
		Where("id = ? AND restaurant_id = ?", id, restaurantID).
		Take(&s).Error; err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

func (r *RestaurantGormRepository) CreateSection(ctx context.Context, s *models.Section) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(s).Error)
}

func (r *RestaurantGormRepository) UpdateSection(ctx context.Context, s *models.Section) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Save(s).Error)
}

func (r *RestaurantGormRepository) SoftDeleteSection(ctx context.Context, restaurantID, id string) error {
	return r.softDelete(ctx, &models.Section{}, "id = ? AND restaurant_id = ?", id, restaurantID)
}

// --------------------------------------------------
// Item
// --------------------------------------------------

func (r *RestaurantGormRepository) FindItem(
	ctx context.Context,
	restaurantID string,
	id string,
	opts ...menu.ReadOption,
) (*models.MenuItem, error) {

	var it models.MenuItem
	if err := r.db.WithContext(ctx).
		Scopes(scoped(opts)).
		Preload("Image").
		Where("id = ? AND restaurant_id = ?", id, restaurantID).
		Take(&it).Error; err != nil {
		return nil, translate(err)
	}
	return &it, nil
}

func (r *RestaurantGormRepository) CreateItem(ctx context.Context, it *models.MenuItem) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(it).Error)
}

func (r *RestaurantGormRepository) UpdateItem(ctx context.Context, it *models.MenuItem) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Save(it).Error)
}

func (r *RestaurantGormRepository) SoftDeleteItem(ctx context.Context, restaurantID, id string) error {
	return r.softDelete(ctx, &models.MenuItem{}, "id = ? AND restaurant_id = ?", id, restaurantID)
}

// --------------------------------------------------
// Image
// --------------------------------------------------

func (r *RestaurantGormRepository) CreateImage(ctx context.Context, img *models.Image) error {
	return translate(r.db.WithContext(ctx).Create(img).Error)
}

// softDelete stamps deleted_at on one live row. Deleting an already deleted
// or foreign row reports menu.ErrRecordNotFound.
func (r *RestaurantGormRepository) softDelete(
	ctx context.Context,
	model any,
	query string,
	args ...any,
) error {

	res := r.db.WithContext(ctx).
		Model(model).
		Where(query, args...).
		Where("deleted_at IS NULL").
		Update("deleted_at", time.Now().UTC())
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return menu.ErrRecordNotFound
	}
	return nil
}

// Compile-time check
var _ menu.Store = (*RestaurantGormRepository)(nil)
