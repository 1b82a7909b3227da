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

type ItemHandler struct {
	owner
}

func NewItemHandler(store menu.Store, cache CacheInvalidator, sink AuditSink, log *slog.Logger) *ItemHandler {
	return &ItemHandler{owner: newOwner(store, cache, sink, log)}
}

// --------- Requests ---------

// CreateItemRequest leaves price null for "market price" items.
type CreateItemRequest struct {
	Title       string   `json:"title" binding:"required,max=255"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0,lte=100000"`
	Position    int      `json:"position" binding:"min=0"`
	Description *string  `json:"description"`
}

type UpdateItemRequest struct {
	Title       *string  `json:"title,omitempty" binding:"omitempty,max=255"`
	Price       *float64 `json:"price,omitempty" binding:"omitempty,gte=0,lte=100000"`
	ClearPrice  bool     `json:"clear_price,omitempty"`
	Position    *int     `json:"position,omitempty" binding:"omitempty,min=0"`
	Description *string  `json:"description,omitempty"`
	ClearImage  bool     `json:"clear_image,omitempty"`
}

// --------- Handlers ---------

// Create adds an item to the section in the :id path parameter.
func (h *ItemHandler) Create(c *gin.Context) {
	r, ok := h.restaurant(c)
	if !ok {
		return
	}

	s, err := h.store.FindSection(c.Request.Context(), r.ID, c.Param("id"))
	if err != nil {
		h.notFoundOr(c, err, "section_not_found", "failed_to_get_section")
		return
	}

	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	title := strings.TrimSpace(req.Title)
	it := models.MenuItem{
		RestaurantID: r.ID,
		MenuID:       s.MenuID,
		SectionID:    s.ID,
		Title:        &title,
		Price:        req.Price,
		Position:     req.Position,
		Description:  req.Description,
	}

	if err := h.store.CreateItem(c.Request.Context(), &it); err != nil {
		h.fail(c, err, "failed_to_create_item")
		return
	}

	h.changed(c, r, audit.ActionCreate, "item", it.ID, gin.H{"section_id": s.ID})
	c.JSON(http.StatusCreated, it)
}

func (h *ItemHandler) Update(c *gin.Context) {
	r, ok := h.restaurant(c)
	if !ok {
		return
	}

	it, err := h.store.FindItem(c.Request.Context(), r.ID, c.Param("id"))
	if err != nil {
		h.notFoundOr(c, err, "item_not_found", "failed_to_get_item")
		return
	}

	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		it.Title = &title
	}
	switch {
	case req.ClearPrice:
		it.Price = nil
	case req.Price != nil:
		it.Price = req.Price
	}
	if req.Position != nil {
		it.Position = *req.Position
	}
	if req.Description != nil {
		it.Description = req.Description
	}
	if req.ClearImage {
		it.ImageID, it.Image = nil, nil
	}

	if err := h.store.UpdateItem(c.Request.Context(), it); err != nil {
		h.fail(c, err, "failed_to_update_item")
		return
	}

	h.changed(c, r, audit.ActionUpdate, "item", it.ID, req)
	httpresp.OK(c, it)
}

func (h *ItemHandler) Delete(c *gin.Context) {
	r, ok := h.restaurant(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if err := h.store.SoftDeleteItem(c.Request.Context(), r.ID, id); err != nil {
		h.notFoundOr(c, err, "item_not_found", "failed_to_delete_item")
		return
	}

	h.changed(c, r, audit.ActionDelete, "item", id, nil)
	c.Status(http.StatusNoContent)
}
