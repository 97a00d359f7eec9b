package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsDuplicateConstraintError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		constraint string
		want       bool
	}{
		{
			name:       "matching constraint",
			err:        &pgconn.PgError{Code: "23505", ConstraintName: "classes_join_code_key"},
			constraint: "classes_join_code_key",
			want:       true,
		},
		{
			name:       "wrapped matching constraint",
			err:        fmt.Errorf("error creating class: %w", &pgconn.PgError{Code: "23505", ConstraintName: "classes_join_code_key"}),
			constraint: "classes_join_code_key",
			want:       true,
		},
		{
			name:       "different constraint",
			err:        &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"},
			constraint: "classes_join_code_key",
			want:       false,
		},
		{
			name:       "non-unique violation",
			err:        &pgconn.PgError{Code: "23503", ConstraintName: "classes_join_code_key"},
			constraint: "classes_join_code_key",
			want:       false,
		},
		{
			name:       "plain error",
			err:        errors.New("connection refused"),
			constraint: "classes_join_code_key",
			want:       false,
		},
		{
			name:       "nil error",
			err:        nil,
			constraint: "classes_join_code_key",
			want:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDuplicateConstraintError(tt.err, tt.constraint); got != tt.want {
				t.Errorf("IsDuplicateConstraintError() = %v, want %v", got, tt.want)
			}
		})
	}
}
