package repo

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// uniqueViolationCode is SQLSTATE 23505, raised by Postgres for any violated
// unique constraint.
const uniqueViolationCode = "23505"

type GormRepo struct {
	DB *gorm.DB
}

// isUniqueViolation recognizes a duplicate-key error from the store. The
// postgres driver sits on pgx and surfaces *pgconn.PgError; gorm's error
// translation maps it to ErrDuplicatedKey; lib/pq connections report
// *pq.Error; the in-memory sqlite used in tests emits a UNIQUE constraint
// message. All of them mean the same thing here: the constraint arbitrated
// and this insert lost.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolationCode {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint")
}
