package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/menu-sites/internal/domain/menu"
)

const pgUniqueViolation = "23505"

// translate maps gorm and driver errors onto domain errors. Statement
// timeouts and cancelled queries are reported as context.DeadlineExceeded so
// the loader can tell them from an unreachable database.
func translate(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return menu.ErrRecordNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s", menu.ErrConflict, pgErr.ConstraintName)
		case "57014": // query_canceled, raised by statement_timeout
			return fmt.Errorf("%w: %w", context.DeadlineExceeded, err)
		}
	}

	if pgconn.Timeout(err) && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", context.DeadlineExceeded, err)
	}

	return err
}
