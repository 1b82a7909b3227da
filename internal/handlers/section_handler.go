package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/menu-sites/internal/audit"
	"github.com/BruksfildServices01/menu-sites/internal/domain/menu"
	"github.com/BruksfildServices01/menu-sites/internal/httpresp"
	"github.com/BruksfildServices01/menu-sites/internal/models"
)

type SectionHandler struct {
	owner
}

func NewSectionHandler(store menu.Store, cache CacheInvalidator, sink AuditSink, log *slog.Logger) *SectionHandler {
	return &SectionHandler{owner: newOwner(store, cache, sink, log)}
}

// --------- Requests ---------

type CreateSectionRequest struct {
	Title       string  `json:"title" binding:"required,max=255"`
	Position    int     `json:"position" binding:"min=0"`
	Description *string `json:"description"`
}

type UpdateSectionRequest struct {
	Title       *string `json:"title,omitempty" binding:"omitempty,max=255"`
	Position    *int    `json:"position,omitempty" binding:"omitempty,min=0"`
	Description *string `json:"description,omitempty"`
}

// --------- Handlers ---------

// Create adds a section to the menu in the :id path parameter.
func (h *SectionHandler) Create(c *gin.Context) {
	r, ok := h.restaurant(c)
	if !ok {
		return
	}

	m, err := h.store.FindMenu(c.Request.Context(), r.ID, c.Param("id"))
	if err != nil {
		h.notFoundOr(c, err, "menu_not_found", "failed_to_get_menu")
		return
	}

	var req CreateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	title := strings.TrimSpace(req.Title)
	s := models.Section{
		RestaurantID: r.ID,
		MenuID:       m.ID,
		Title:        &title,
		Position:     req.Position,
		Description:  req.Description,
	}

	if err := h.store.CreateSection(c.Request.Context(), &s); err != nil {
		h.fail(c, err, "failed_to_create_section")
		return
	}

	h.changed(c, r, audit.ActionCreate, "section", s.ID, gin.H{"menu_id": m.ID})
	c.JSON(http.StatusCreated, s)
}

func (h *SectionHandler) Update(c *gin.Context) {
	r, ok := h.restaurant(c)
	if !ok {
		return
	}

	s, err := h.store.FindSection(c.Request.Context(), r.ID, c.Param("id"))
	if err != nil {
		h.notFoundOr(c, err, "section_not_found", "failed_to_get_section")
		return
	}

	var req UpdateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		s.Title = &title
	}
	if req.Position != nil {
		s.Position = *req.Position
	}
	if req.Description != nil {
		s.Description = req.Description
	}

	if err := h.store.UpdateSection(c.Request.Context(), s); err != nil {
		h.fail(c, err, "failed_to_update_section")
		return
	}

	h.changed(c, r, audit.ActionUpdate, "section", s.ID, req)
	httpresp.OK(c, s)
}

func (h *SectionHandler) Delete(c *gin.Context) {
	r, ok := h.restaurant(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if err := h.store.SoftDeleteSection(c.Request.Context(), r.ID, id); err != nil {
		h.notFoundOr(c, err, "section_not_found", "failed_to_delete_section")
		return
	}

	h.changed(c, r, audit.ActionDelete, "section", id, nil)
	c.Status(http.StatusNoContent)
}
