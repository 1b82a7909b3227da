package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/menu-sites/internal/audit"
	"github.com/BruksfildServices01/menu-sites/internal/domain/menu"
	"github.com/BruksfildServices01/menu-sites/internal/httperr"
	"github.com/BruksfildServices01/menu-sites/internal/httpresp"
	"github.com/BruksfildServices01/menu-sites/internal/models"
	"github.com/BruksfildServices01/menu-sites/internal/validators"
)

type MenuHandler struct {
	owner
}

func NewMenuHandler(store menu.Store, cache CacheInvalidator, sink AuditSink, log *slog.Logger) *MenuHandler {
	return &MenuHandler{owner: newOwner(store, cache, sink, log)}
}

// --------- Requests ---------

// CreateMenuRequest derives the slug from the title when it is omitted.
type CreateMenuRequest struct {
	Title       string  `json:"title" binding:"required,max=255"`
	Slug        *string `json:"slug"`
	Position    int     `json:"position" binding:"min=0"`
	Description *string `json:"description"`
}

type UpdateMenuRequest struct {
	Title       *string `json:"title,omitempty" binding:"omitempty,max=255"`
	Slug        *string `json:"slug,omitempty"`
	Position    *int    `json:"position,omitempty" binding:"omitempty,min=0"`
	Description *string `json:"description,omitempty"`
}

// --------- Handlers ---------

func (h *MenuHandler) List(c *gin.Context) {
	r, ok := h.restaurant(c)
	if !ok {
		return
	}

	menus, err := h.store.ListMenus(c.Request.Context(), r.ID, readOptions(c)...)
	if err != nil {
		h.fail(c, err, "failed_to_list_menus")
		return
	}

	httpresp.List(c, menus)
}

func (h *MenuHandler) Get(c *gin.Context) {
	r, ok := h.restaurant(c)
	if !ok {
		return
	}

	m, err := h.store.FindMenu(c.Request.Context(), r.ID, c.Param("id"), readOptions(c)...)
	if err != nil {
		h.notFoundOr(c, err, "menu_not_found", "failed_to_get_menu")
		return
	}

	httpresp.OK(c, m)
}

func (h *MenuHandler) Create(c *gin.Context) {
	r, ok := h.restaurant(c)
	if !ok {
		return
	}

	var req CreateMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	title := strings.TrimSpace(req.Title)
	slug := menu.Slugify(title)
	if req.Slug != nil {
		slug = strings.TrimSpace(*req.Slug)
	}
	if !validators.IsMenuSlug(slug) {
		httperr.UnprocessableEntity(c, "invalid_slug", "Slugs are lowercase letters, digits and single hyphens.")
		return
	}

	m := models.Menu{
		RestaurantID: r.ID,
		Title:        &title,
		Slug:         &slug,
		Position:     req.Position,
		Description:  req.Description,
	}

	if err := h.store.CreateMenu(c.Request.Context(), &m); err != nil {
		h.slugConflictOr(c, err, "failed_to_create_menu")
		return
	}

	h.changed(c, r, audit.ActionCreate, "menu", m.ID, gin.H{"slug": slug})
	c.JSON(http.StatusCreated, m)
}

func (h *MenuHandler) Update(c *gin.Context) {
	r, ok := h.restaurant(c)
	if !ok {
		return
	}

	m, err := h.store.FindMenu(c.Request.Context(), r.ID, c.Param("id"))
	if err != nil {
		h.notFoundOr(c, err, "menu_not_found", "failed_to_get_menu")
		return
	}

	var req UpdateMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		m.Title = &title
	}
	if req.Slug != nil {
		slug := strings.TrimSpace(*req.Slug)
		if !validators.IsMenuSlug(slug) {
			httperr.UnprocessableEntity(c, "invalid_slug", "Slugs are lowercase letters, digits and single hyphens.")
			return
		}
		m.Slug = &slug
	}
	if req.Position != nil {
		m.Position = *req.Position
	}
	if req.Description != nil {
		m.Description = req.Description
	}

	if err := h.store.UpdateMenu(c.Request.Context(), m); err != nil {
		h.slugConflictOr(c, err, "failed_to_update_menu")
		return
	}

	h.changed(c, r, audit.ActionUpdate, "menu", m.ID, req)
	httpresp.OK(c, m)
}

func (h *MenuHandler) Delete(c *gin.Context) {
	r, ok := h.restaurant(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if err := h.store.SoftDeleteMenu(c.Request.Context(), r.ID, id); err != nil {
		h.notFoundOr(c, err, "menu_not_found", "failed_to_delete_menu")
		return
	}

	h.changed(c, r, audit.ActionDelete, "menu", id, nil)
	c.Status(http.StatusNoContent)
}

func (h *MenuHandler) slugConflictOr(c *gin.Context, err error, fallback string) {
	if errors.Is(err, menu.ErrConflict) {
		httperr.Conflict(c, "slug_taken", "Another menu already uses this slug.")
		return
	}
	h.fail(c, err, fallback)
}
