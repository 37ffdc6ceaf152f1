package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestIsForeignKeyViolation(t *testing.T) {
	fkErr := &pgconn.PgError{Code: "23503", Message: "violates foreign key constraint"}

	if !isForeignKeyViolation(fkErr) {
		t.Error("expected foreign-key violation to be detected")
	}
	if !isForeignKeyViolation(fmt.Errorf("append delivery: %w", fkErr)) {
		t.Error("expected wrapped foreign-key violation to be detected")
	}

	if isForeignKeyViolation(nil) {
		t.Error("nil error is not a violation")
	}
	if isForeignKeyViolation(errors.New("connection refused")) {
		t.Error("plain error is not a violation")
	}
	if isForeignKeyViolation(&pgconn.PgError{Code: "23505"}) {
		t.Error("unique violation is not a foreign-key violation")
	}
}
