package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/menu-sites/internal/config"
	"github.com/BruksfildServices01/menu-sites/internal/domain/account"
	"github.com/BruksfildServices01/menu-sites/internal/domain/menu"
	"github.com/BruksfildServices01/menu-sites/internal/httperr"
	"github.com/BruksfildServices01/menu-sites/internal/middleware"
	"github.com/BruksfildServices01/menu-sites/internal/models"
	"github.com/BruksfildServices01/menu-sites/internal/validators"
)

type AuthHandler struct {
	accounts account.Repository
	config   *config.Config
	now      func() time.Time
}

func NewAuthHandler(accounts account.Repository, cfg *config.Config) *AuthHandler {
	return &AuthHandler{accounts: accounts, config: cfg, now: time.Now}
}

// --------- Requests ---------

type RegisterRequest struct {
	RestaurantName string `json:"restaurant_name" binding:"required,max=255"`
	Subdomain      string `json:"subdomain" binding:"required"`

	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

// Register creates the owner account and their restaurant. The restaurant
// has no menus yet, so its site answers 404 until the first menu exists.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	subdomain := strings.ToLower(strings.TrimSpace(req.Subdomain))
	if !validators.IsSubdomainLabel(subdomain, h.config.Tenancy.ReservedSubdomains) {
		httperr.UnprocessableEntity(c, "invalid_subdomain", "Subdomains are one DNS label of letters, digits and hyphens.")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !validators.EmailDomainCheck(email) {
		httperr.BadRequest(c, "invalid_email_domain", "The email domain does not appear to accept mail.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Unexpected error, please try again.")
		return
	}

	user := models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hashed),
	}

	name := strings.TrimSpace(req.RestaurantName)
	restaurant := models.Restaurant{
		Name:      &name,
		Subdomain: &subdomain,
	}

	if err := h.accounts.CreateOwner(c.Request.Context(), &user, &restaurant); err != nil {
		switch {
		case errors.Is(err, account.ErrEmailTaken):
			httperr.Conflict(c, "email_taken", "An account with this email already exists.")
		case errors.Is(err, menu.ErrConflict):
			httperr.Conflict(c, "subdomain_taken", "That subdomain is already in use.")
		default:
			httperr.Internal(c, "failed_to_create_account", "Unexpected error, please try again.")
		}
		return
	}

	h.respond(c, http.StatusCreated, &user)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := h.accounts.FindUserByEmail(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, account.ErrUserNotFound) {
			httperr.Unauthorized(c, "invalid_credentials", "Email or password is incorrect.")
			return
		}
		httperr.Internal(c, "internal_error", "Unexpected error, please try again.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Email or password is incorrect.")
		return
	}

	h.respond(c, http.StatusOK, user)
}

func (h *AuthHandler) respond(c *gin.Context, status int, user *models.User) {
	token, err := middleware.IssueToken(h.config.JWTSecret, user.ID, h.now())
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Unexpected error, please try again.")
		return
	}

	c.JSON(status, gin.H{
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
		},
		"token": token,
	})
}
