package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/menu-sites/internal/domain/account"
	"github.com/BruksfildServices01/menu-sites/internal/domain/menu"
	"github.com/BruksfildServices01/menu-sites/internal/httperr"
)

type MeHandler struct {
	accounts account.Repository
	store    menu.Store
}

func NewMeHandler(accounts account.Repository, store menu.Store) *MeHandler {
	return &MeHandler{accounts: accounts, store: store}
}

func (h *MeHandler) GetMe(c *gin.Context) {
	user, err := h.accounts.FindUserByID(c.Request.Context(), userID(c))
	if err != nil {
		if errors.Is(err, account.ErrUserNotFound) {
			httperr.Unauthorized(c, "user_not_found", "This account no longer exists.")
			return
		}
		httperr.Internal(c, "failed_to_get_user", "Unexpected error, please try again.")
		return
	}

	resp := gin.H{
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
		},
		"restaurant": nil,
	}

	r, err := h.store.FindRestaurantByOwner(c.Request.Context(), user.ID)
	switch {
	case err == nil:
		resp["restaurant"] = gin.H{
			"id":            r.ID,
			"name":          r.Name,
			"subdomain":     r.Subdomain,
			"custom_domain": r.CustomDomain,
		}
	case !errors.Is(err, menu.ErrRecordNotFound):
		httperr.Internal(c, "failed_to_get_restaurant", "Unexpected error, please try again.")
		return
	}

	c.JSON(http.StatusOK, resp)
}
