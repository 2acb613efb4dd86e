package postgres

import (
	"database/sql"
	"errors"
	"testing"
)

func TestIsNotFound(t *testing.T) {
	if !isNotFound(sql.ErrNoRows) {
		t.Fatal("expected true for sql.ErrNoRows")
	}
	if isNotFound(errors.New("pq: relation players does not exist")) {
		t.Fatal("expected false for unrelated error")
	}
}
