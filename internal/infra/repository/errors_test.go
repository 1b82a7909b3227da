package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/menu-sites/internal/domain/menu"
)

func TestTranslate(t *testing.T) {
	plain := errors.New("connection refused")

	tests := []struct {
		name string
		in   error
		want error
	}{
		{"not found", gorm.ErrRecordNotFound, menu.ErrRecordNotFound},
		{"wrapped not found", fmt.Errorf("preload: %w", gorm.ErrRecordNotFound), menu.ErrRecordNotFound},
		{"unique violation", &pgconn.PgError{Code: "23505", ConstraintName: "ux_menus_restaurant_slug_live"}, menu.ErrConflict},
		{"statement timeout", &pgconn.PgError{Code: "57014"}, context.DeadlineExceeded},
		{"context deadline", context.DeadlineExceeded, context.DeadlineExceeded},
		{"other", plain, plain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, translate(tt.in), tt.want)
		})
	}

	assert.NoError(t, translate(nil))
}
