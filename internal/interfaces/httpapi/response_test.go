package httpapi

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"

	"github.com/aymenbt/fantasy-ligue/internal/usecase"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err        error
		statusCode int
		status     string
		reason     string
	}{
		{usecase.ErrInvalidInput, http.StatusBadRequest, "INVALID_ARGUMENT", "invalidInput"},
		{usecase.ErrNotFound, http.StatusNotFound, "NOT_FOUND", "notFound"},
		{usecase.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHENTICATED", "unauthorized"},
		{usecase.ErrDependencyUnavailable, http.StatusServiceUnavailable, "UNAVAILABLE", "dependencyUnavailable"},
		{fmt.Errorf("wrapped: %w", usecase.ErrNotFound), http.StatusNotFound, "NOT_FOUND", "notFound"},
		{fmt.Errorf("something else"), http.StatusInternalServerError, "INTERNAL", "internalError"},
	}
	for _, tc := range cases {
		statusCode, status, reason := mapError(tc.err)
		if statusCode != tc.statusCode || status != tc.status || reason != tc.reason {
			t.Errorf("mapError(%v) = (%d, %q, %q), want (%d, %q, %q)",
				tc.err, statusCode, status, reason, tc.statusCode, tc.status, tc.reason)
		}
	}
}

func TestWriteSuccess(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	writeSuccess(rec, http.StatusOK, map[string]string{"status": "ok"})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Fatalf("content type = %q", ct)
	}

	var body googleResponseEnvelope
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.APIVersion != "2.0" {
		t.Errorf("apiVersion = %q, want 2.0", body.APIVersion)
	}
	if body.Error != nil {
		t.Errorf("error = %+v, want nil", body.Error)
	}
	if body.Data == nil {
		t.Error("data missing")
	}
}

func TestWriteError(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	writeError(rec, http.StatusNotFound, "NOT_FOUND", "notFound", "no fantasy team found")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}

	var body googleResponseEnvelope
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Error == nil {
		t.Fatal("error body missing")
	}
	if body.Error.Code != http.StatusNotFound {
		t.Errorf("error code = %d, want 404", body.Error.Code)
	}
	if body.Error.Status != "NOT_FOUND" {
		t.Errorf("error status = %q", body.Error.Status)
	}
	if len(body.Error.Errors) != 1 {
		t.Fatalf("error items = %d, want 1", len(body.Error.Errors))
	}
	item := body.Error.Errors[0]
	if item.Domain != errorDomain || item.Reason != "notFound" || item.Message != "no fantasy team found" {
		t.Errorf("error item = %+v", item)
	}
	if body.Data != nil {
		t.Errorf("data = %v, want nil alongside error", body.Data)
	}
}
