package repo

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{
			// what the production pgx-backed driver actually returns
			name: "pgx duplicate key",
			err:  &pgconn.PgError{Code: "23505", Message: `duplicate key value violates unique constraint "idx_user_course"`},
			want: true,
		},
		{
			name: "pgx duplicate key wrapped",
			err:  fmt.Errorf("create enrollment: %w", &pgconn.PgError{Code: "23505"}),
			want: true,
		},
		{name: "gorm translated", err: gorm.ErrDuplicatedKey, want: true},
		{name: "pq duplicate key", err: &pq.Error{Code: "23505"}, want: true},
		{
			name: "sqlite unique",
			err:  errors.New("UNIQUE constraint failed: enrollments.user_id, enrollments.course_id"),
			want: true,
		},
		{name: "pgx foreign key", err: &pgconn.PgError{Code: "23503"}, want: false},
		{name: "pq not null", err: &pq.Error{Code: "23502"}, want: false},
		{name: "plain error", err: errors.New("connection refused"), want: false},
		{name: "record not found", err: gorm.ErrRecordNotFound, want: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, isUniqueViolation(tt.err))
		})
	}
}
