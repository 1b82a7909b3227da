package menutest

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/menu-sites/internal/domain/menu"
	"github.com/BruksfildServices01/menu-sites/internal/domain/tenant"
	"github.com/BruksfildServices01/menu-sites/internal/models"
)

// Store is an in-memory menu.Store with the same soft-delete and
// uniqueness rules as the gorm repository.
type Store struct {
	mu          sync.Mutex
	restaurants map[string]*models.Restaurant
	menus       map[string]*models.Menu
	sections    map[string]*models.Section
	items       map[string]*models.MenuItem
	images      map[string]*models.Image
	Err         error
}

func NewStore() *Store {
	return &Store{
		restaurants: map[string]*models.Restaurant{},
		menus:       map[string]*models.Menu{},
		sections:    map[string]*models.Section{},
		items:       map[string]*models.MenuItem{},
		images:      map[string]*models.Image{},
	}
}

// Seed stores a whole graph as returned by Restaurant().
func (s *Store) Seed(rec *models.Restaurant) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := *rec
	r.Menus = nil
	s.restaurants[r.ID] = &r
	if rec.CoverImage != nil {
		img := *rec.CoverImage
		s.images[img.ID] = &img
		r.CoverImageID = &img.ID
	}
	for _, m := range rec.Menus {
		mm := m
		mm.Sections = nil
		s.menus[mm.ID] = &mm
		for _, sec := range m.Sections {
			ss := sec
			ss.Items = nil
			s.sections[ss.ID] = &ss
			for _, it := range sec.Items {
				ii := it
				s.items[ii.ID] = &ii
			}
		}
	}
}

func visible(deletedAt *time.Time, opts []menu.ReadOption) bool {
	return deletedAt == nil || menu.ApplyReadOptions(opts).IncludeDeleted
}

func byPosition[T any](rows []T, pos func(T) int, created func(T) time.Time, id func(T) string) {
	slices.SortStableFunc(rows, func(a, b T) int {
		return cmp.Or(
			cmp.Compare(pos(a), pos(b)),
			created(a).Compare(created(b)),
			cmp.Compare(id(a), id(b)),
		)
	})
}

func (s *Store) FindRestaurantGraph(_ context.Context, key tenant.Key) (*models.Restaurant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	var found *models.Restaurant
	for _, r := range s.restaurants {
		if r.DeletedAt != nil {
			continue
		}
		if (r.Subdomain != nil && *r.Subdomain == key.Value) || (r.CustomDomain != nil && *r.CustomDomain == key.Value) {
			found = r
			break
		}
	}
	if found == nil {
		return nil, menu.ErrRecordNotFound
	}

	out := *found
	if found.CoverImageID != nil {
		out.CoverImage = s.images[*found.CoverImageID]
	}
	out.Menus = nil
	for _, m := range s.menus {
		if m.RestaurantID != found.ID || m.DeletedAt != nil {
			continue
		}
		mm := *m
		mm.Sections = nil
		for _, sec := range s.sections {
			if sec.MenuID != m.ID || sec.DeletedAt != nil {
				continue
			}
			ss := *sec
			ss.Items = nil
			for _, it := range s.items {
				if it.SectionID != sec.ID || it.DeletedAt != nil {
					continue
				}
				ii := *it
				if it.ImageID != nil {
					ii.Image = s.images[*it.ImageID]
				}
				ss.Items = append(ss.Items, ii)
			}
			byPosition(ss.Items,
				func(x models.MenuItem) int { return x.Position },
				func(x models.MenuItem) time.Time { return x.CreatedAt },
				func(x models.MenuItem) string { return x.ID })
			mm.Sections = append(mm.Sections, ss)
		}
		byPosition(mm.Sections,
			func(x models.Section) int { return x.Position },
			func(x models.Section) time.Time { return x.CreatedAt },
			func(x models.Section) string { return x.ID })
		out.Menus = append(out.Menus, mm)
	}
	byPosition(out.Menus,
		func(x models.Menu) int { return x.Position },
		func(x models.Menu) time.Time { return x.CreatedAt },
		func(x models.Menu) string { return x.ID })

	return &out, nil
}

func (s *Store) ListTenantKeys(context.Context) ([]tenant.Key, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var keys []tenant.Key
	for _, r := range s.restaurants {
		switch {
		case r.DeletedAt != nil:
		case r.Subdomain != nil:
			keys = append(keys, tenant.Key{Value: *r.Subdomain, Kind: tenant.KindSubdomain})
		case r.CustomDomain != nil:
			keys = append(keys, tenant.Key{Value: *r.CustomDomain, Kind: tenant.KindCustomDomain})
		}
	}
	slices.SortFunc(keys, func(a, b tenant.Key) int { return cmp.Compare(a.String(), b.String()) })
	return keys, nil
}

func (s *Store) FindRestaurantByOwner(_ context.Context, userID string, opts ...menu.ReadOption) (*models.Restaurant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.restaurants {
		if r.UserID == userID && visible(r.DeletedAt, opts) {
			out := *r
			if r.CoverImageID != nil {
				out.CoverImage = s.images[*r.CoverImageID]
			}
			return &out, nil
		}
	}
	return nil, menu.ErrRecordNotFound
}

func (s *Store) restaurantConflict(r *models.Restaurant) bool {
	for _, other := range s.restaurants {
		if other.ID == r.ID || other.DeletedAt != nil {
			continue
		}
		if r.Subdomain != nil && other.Subdomain != nil && *r.Subdomain == *other.Subdomain {
			return true
		}
		if r.CustomDomain != nil && other.CustomDomain != nil && *r.CustomDomain == *other.CustomDomain {
			return true
		}
	}
	return false
}

func (s *Store) CreateRestaurant(_ context.Context, r *models.Restaurant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if s.restaurantConflict(r) {
		return menu.ErrConflict
	}
	r.CreatedAt = time.Now()
	cp := *r
	cp.Menus, cp.CoverImage = nil, nil
	s.restaurants[r.ID] = &cp
	return nil
}

func (s *Store) UpdateRestaurant(_ context.Context, r *models.Restaurant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.restaurants[r.ID]; !ok {
		return menu.ErrRecordNotFound
	}
	if s.restaurantConflict(r) {
		return menu.ErrConflict
	}
	cp := *r
	cp.Menus, cp.CoverImage = nil, nil
	s.restaurants[r.ID] = &cp
	return nil
}

func (s *Store) SoftDeleteRestaurant(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.restaurants[id]
	if !ok || r.DeletedAt != nil {
		return menu.ErrRecordNotFound
	}
	now := time.Now()
	r.DeletedAt = &now
	return nil
}

func (s *Store) ListMenus(_ context.Context, restaurantID string, opts ...menu.ReadOption) ([]models.Menu, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Menu
	for _, m := range s.menus {
		if m.RestaurantID == restaurantID && visible(m.DeletedAt, opts) {
			out = append(out, *m)
		}
	}
	byPosition(out,
		func(x models.Menu) int { return x.Position },
		func(x models.Menu) time.Time { return x.CreatedAt },
		func(x models.Menu) string { return x.ID })
	return out, nil
}

func (s *Store) FindMenu(_ context.Context, restaurantID, id string, opts ...menu.ReadOption) (*models.Menu, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.menus[id]
	if !ok || m.RestaurantID != restaurantID || !visible(m.DeletedAt, opts) {
		return nil, menu.ErrRecordNotFound
	}
	out := *m
	return &out, nil
}

func (s *Store) slugConflict(m *models.Menu) bool {
	if m.Slug == nil {
		return false
	}
	for _, other := range s.menus {
		if other.ID != m.ID && other.RestaurantID == m.RestaurantID && other.DeletedAt == nil &&
			other.Slug != nil && *other.Slug == *m.Slug {
			return true
		}
	}
	return false
}

func (s *Store) CreateMenu(_ context.Context, m *models.Menu) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if s.slugConflict(m) {
		return menu.ErrConflict
	}
	m.CreatedAt = time.Now()
	cp := *m
	s.menus[m.ID] = &cp
	return nil
}

func (s *Store) UpdateMenu(_ context.Context, m *models.Menu) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.menus[m.ID]; !ok {
		return menu.ErrRecordNotFound
	}
	if s.slugConflict(m) {
		return menu.ErrConflict
	}
	cp := *m
	s.menus[m.ID] = &cp
	return nil
}

func (s *Store) SoftDeleteMenu(_ context.Context, restaurantID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.menus[id]
	if !ok || m.RestaurantID != restaurantID || m.DeletedAt != nil {
		return menu.ErrRecordNotFound
	}
	now := time.Now()
	m.DeletedAt = &now
	return nil
}

func (s *Store) FindSection(_ context.Context, restaurantID, id string, opts ...menu.ReadOption) (*models.Section, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sec, ok := s.sections[id]
	if !ok || sec.RestaurantID != restaurantID || !visible(sec.DeletedAt, opts) {
		return nil, menu.ErrRecordNotFound
	}
	out := *sec
	return &out, nil
}

func (s *Store) CreateSection(_ context.Context, sec *models.Section) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sec.ID == "" {
		sec.ID = uuid.NewString()
	}
	sec.CreatedAt = time.Now()
	cp := *sec
	s.sections[sec.ID] = &cp
	return nil
}

func (s *Store) UpdateSection(_ context.Context, sec *models.Section) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sections[sec.ID]; !ok {
		return menu.ErrRecordNotFound
	}
	cp := *sec
	s.sections[sec.ID] = &cp
	return nil
}

func (s *Store) SoftDeleteSection(_ context.Context, restaurantID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sec, ok := s.sections[id]
	if !ok || sec.RestaurantID != restaurantID || sec.DeletedAt != nil {
		return menu.ErrRecordNotFound
	}
	now := time.Now()
	sec.DeletedAt = &now
	return nil
}

func (s *Store) FindItem(_ context.Context, restaurantID, id string, opts ...menu.ReadOption) (*models.MenuItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.items[id]
	if !ok || it.RestaurantID != restaurantID || !visible(it.DeletedAt, opts) {
		return nil, menu.ErrRecordNotFound
	}
	out := *it
	if it.ImageID != nil {
		out.Image = s.images[*it.ImageID]
	}
	return &out, nil
}

func (s *Store) CreateItem(_ context.Context, it *models.MenuItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if it.ID == "" {
		it.ID = uuid.NewString()
	}
	it.CreatedAt = time.Now()
	cp := *it
	cp.Image = nil
	s.items[it.ID] = &cp
	return nil
}

func (s *Store) UpdateItem(_ context.Context, it *models.MenuItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[it.ID]; !ok {
		return menu.ErrRecordNotFound
	}
	cp := *it
	cp.Image = nil
	s.items[it.ID] = &cp
	return nil
}

func (s *Store) SoftDeleteItem(_ context.Context, restaurantID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.items[id]
	if !ok || it.RestaurantID != restaurantID || it.DeletedAt != nil {
		return menu.ErrRecordNotFound
	}
	now := time.Now()
	it.DeletedAt = &now
	return nil
}

func (s *Store) CreateImage(_ context.Context, img *models.Image) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if img.ID == "" {
		img.ID = uuid.NewString()
	}
	cp := *img
	s.images[img.ID] = &cp
	return nil
}

var _ menu.Store = (*Store)(nil)
