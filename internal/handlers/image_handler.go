package handlers

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/menu-sites/internal/audit"
	"github.com/BruksfildServices01/menu-sites/internal/domain/menu"
	"github.com/BruksfildServices01/menu-sites/internal/httperr"
	"github.com/BruksfildServices01/menu-sites/internal/infra/storage"
	"github.com/BruksfildServices01/menu-sites/internal/models"
)

const maxUploadBytes = 8 << 20

// ObjectStore is where processed images are published. *storage.S3Store
// implements it.
type ObjectStore interface {
	Put(ctx context.Context, key string, body []byte, contentType string) (string, error)
}

type ImageHandler struct {
	owner
	objects ObjectStore
}

func NewImageHandler(
	store menu.Store,
	objects ObjectStore,
	cache CacheInvalidator,
	sink AuditSink,
	log *slog.Logger,
) *ImageHandler {
	return &ImageHandler{owner: newOwner(store, cache, sink, log), objects: objects}
}

// Upload takes a multipart "file" and attaches it as the cover image, or to
// the item named by the "item_id" form field.
func (h *ImageHandler) Upload(c *gin.Context) {
	r, ok := h.restaurant(c)
	if !ok {
		return
	}

	var item *models.MenuItem
	if id := c.PostForm("item_id"); id != "" {
		it, err := h.store.FindItem(c.Request.Context(), r.ID, id)
		if err != nil {
			h.notFoundOr(c, err, "item_not_found", "failed_to_get_item")
			return
		}
		item = it
	}

	fh, err := c.FormFile("file")
	if err != nil {
		httperr.BadRequest(c, "missing_file", "Attach the image as the \"file\" form field.")
		return
	}
	if fh.Size > maxUploadBytes {
		httperr.Write(c, http.StatusRequestEntityTooLarge, "file_too_large", "Images must be 8 MB or smaller.")
		return
	}

	f, err := fh.Open()
	if err != nil {
		httperr.BadRequest(c, "unreadable_file", "The upload could not be read.")
		return
	}
	defer f.Close()

	src, err := io.ReadAll(io.LimitReader(f, maxUploadBytes+1))
	if err != nil || len(src) > maxUploadBytes {
		httperr.BadRequest(c, "unreadable_file", "The upload could not be read.")
		return
	}

	processed, err := storage.Process(src)
	if err != nil {
		httperr.UnprocessableEntity(c, "unsupported_image", "Upload a JPEG, PNG or WebP image.")
		return
	}

	img := models.Image{
		ID:              uuid.NewString(),
		RestaurantID:    r.ID,
		Width:           processed.Width,
		Height:          processed.Height,
		AccentColor:     &processed.AccentColor,
		BlurPlaceholder: &processed.BlurPlaceholder,
	}

	key := fmt.Sprintf("restaurants/%s/%s.webp", r.ID, img.ID)
	url, err := h.objects.Put(c.Request.Context(), key, processed.WebP, "image/webp")
	if err != nil {
		h.log.Error("image upload failed", slog.String("key", key), slog.Any("error", err))
		httperr.Write(c, http.StatusBadGateway, "storage_unavailable", "The image could not be stored.")
		return
	}
	img.URL = url

	if err := h.store.CreateImage(c.Request.Context(), &img); err != nil {
		h.fail(c, err, "failed_to_save_image")
		return
	}

	target := "restaurant"
	if item != nil {
		target = "item"
		item.ImageID, item.Image = &img.ID, nil
		err = h.store.UpdateItem(c.Request.Context(), item)
	} else {
		r.CoverImageID, r.CoverImage = &img.ID, nil
		err = h.store.UpdateRestaurant(c.Request.Context(), r)
	}
	if err != nil {
		h.fail(c, err, "failed_to_attach_image")
		return
	}

	h.changed(c, r, audit.ActionUpload, "image", img.ID, gin.H{"target": target})
	c.JSON(http.StatusCreated, img)
}
