package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/menu-sites/internal/audit"
	"github.com/BruksfildServices01/menu-sites/internal/config"
	"github.com/BruksfildServices01/menu-sites/internal/domain/menu"
	"github.com/BruksfildServices01/menu-sites/internal/domain/tenant"
	"github.com/BruksfildServices01/menu-sites/internal/httperr"
	"github.com/BruksfildServices01/menu-sites/internal/models"
	"github.com/BruksfildServices01/menu-sites/internal/validators"
	"github.com/BruksfildServices01/menu-sites/internal/view"
)

type RestaurantHandler struct {
	owner
	tenancy config.Tenancy
	site    view.SiteConfig
}

func NewRestaurantHandler(
	store menu.Store,
	cache CacheInvalidator,
	sink AuditSink,
	tenancy config.Tenancy,
	site view.SiteConfig,
	log *slog.Logger,
) *RestaurantHandler {
	return &RestaurantHandler{
		owner:   newOwner(store, cache, sink, log),
		tenancy: tenancy,
		site:    site,
	}
}

// --------- Requests ---------

// UpdateRestaurantRequest is a partial update. An empty subdomain or
// custom_domain clears it.
type UpdateRestaurantRequest struct {
	Name         *string                   `json:"name,omitempty" binding:"omitempty,max=255"`
	Address      *menu.Address             `json:"address,omitempty"`
	Phones       *[]string                 `json:"phones,omitempty"`
	Emails       *[]string                 `json:"emails,omitempty"`
	Hours        *map[string]menu.DayHours `json:"hours,omitempty"`
	Subdomain    *string                   `json:"subdomain,omitempty"`
	CustomDomain *string                   `json:"custom_domain,omitempty"`
}

// --------- Handlers ---------

func (h *RestaurantHandler) Get(c *gin.Context) {
	r, ok := h.restaurant(c)
	if !ok {
		return
	}

	urls := []string{}
	for _, key := range tenantKeys(r) {
		urls = append(urls, view.SiteRoot(key, h.site)+"/")
	}

	c.JSON(http.StatusOK, gin.H{
		"restaurant": r,
		"site_urls":  urls,
	})
}

func (h *RestaurantHandler) Update(c *gin.Context) {
	r, ok := h.restaurant(c)
	if !ok {
		return
	}
	before := tenantKeys(r)

	var req UpdateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	changed, err := h.apply(r, &req)
	if err != nil {
		httperr.WriteBusiness(c, err, "The restaurant could not be updated.")
		return
	}

	if r.Subdomain == nil && r.CustomDomain == nil {
		httperr.UnprocessableEntity(c, "domain_required", "A subdomain or a custom domain is required.")
		return
	}

	candidate := *r
	candidate.Menus = nil
	if _, err := menu.Build(&candidate, tenant.Key{}); err != nil {
		var ie *menu.IntegrityError
		if errors.As(err, &ie) {
			err = httperr.ErrInvalidField("invalid_restaurant", strings.TrimPrefix(ie.Field, "restaurant."), ie.Reason)
		}
		h.fail(c, err, "failed_to_update_restaurant")
		return
	}

	if err := h.store.UpdateRestaurant(c.Request.Context(), r); err != nil {
		if errors.Is(err, menu.ErrConflict) {
			httperr.Conflict(c, "domain_taken", "That subdomain or custom domain is already in use.")
			return
		}
		h.fail(c, err, "failed_to_update_restaurant")
		return
	}

	h.invalidate(c.Request.Context(), before...)
	h.changed(c, r, audit.ActionUpdate, "restaurant", r.ID, gin.H{"fields": changed})

	c.JSON(http.StatusOK, r)
}

func (h *RestaurantHandler) Delete(c *gin.Context) {
	r, ok := h.restaurant(c)
	if !ok {
		return
	}

	if err := h.store.SoftDeleteRestaurant(c.Request.Context(), r.ID); err != nil {
		h.fail(c, err, "failed_to_delete_restaurant")
		return
	}

	h.changed(c, r, audit.ActionDelete, "restaurant", r.ID, nil)
	c.Status(http.StatusNoContent)
}

// apply copies the request onto r and returns the names of the fields it
// touched. The first bad field comes back as a business error.
func (h *RestaurantHandler) apply(r *models.Restaurant, req *UpdateRestaurantRequest) ([]string, error) {
	var changed []string

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		r.Name = &name
		changed = append(changed, "name")
	}

	if req.Address != nil {
		raw, err := json.Marshal(req.Address)
		if err != nil {
			return nil, httperr.ErrBusiness("invalid_address")
		}
		r.Address = models.JSONB(raw)
		changed = append(changed, "address")
	}

	if req.Phones != nil {
		phones := make([]string, 0, len(*req.Phones))
		for _, p := range *req.Phones {
			if p = strings.TrimSpace(p); p != "" {
				phones = append(phones, p)
			}
		}
		raw, _ := json.Marshal(phones)
		r.Phones = models.JSONB(raw)
		changed = append(changed, "phones")
	}

	if req.Emails != nil {
		emails := make([]string, 0, len(*req.Emails))
		for _, e := range *req.Emails {
			e = strings.ToLower(strings.TrimSpace(e))
			if !validators.IsEmail(e) {
				return nil, httperr.ErrBusiness("invalid_email")
			}
			emails = append(emails, e)
		}
		raw, _ := json.Marshal(emails)
		r.Emails = models.JSONB(raw)
		changed = append(changed, "emails")
	}

	if req.Hours != nil {
		raw, err := json.Marshal(*req.Hours)
		if err != nil {
			return nil, httperr.ErrBusiness("invalid_hours")
		}
		r.Hours = models.JSONB(raw)
		changed = append(changed, "hours")
	}

	if req.Subdomain != nil {
		sub := strings.ToLower(strings.TrimSpace(*req.Subdomain))
		switch {
		case sub == "":
			r.Subdomain = nil
		case validators.IsSubdomainLabel(sub, h.tenancy.ReservedSubdomains):
			r.Subdomain = &sub
		default:
			return nil, httperr.ErrBusiness("invalid_subdomain")
		}
		changed = append(changed, "subdomain")
	}

	if req.CustomDomain != nil {
		domain := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(*req.CustomDomain)), ".")
		switch {
		case domain == "":
			r.CustomDomain = nil
		case validators.IsCustomDomain(domain, h.tenancy.RootDomain):
			r.CustomDomain = &domain
		default:
			return nil, httperr.ErrBusiness("invalid_custom_domain")
		}
		changed = append(changed, "custom_domain")
	}

	return changed, nil
}
