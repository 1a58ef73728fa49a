package errors

import (
	"fmt"
	"net/http"
	"testing"
)

func TestAsHTTPError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		ok     bool
		status int
	}{
		{name: "direct", err: NewHTTPError(http.StatusConflict, "exists"), ok: true, status: http.StatusConflict},
		{name: "wrapped", err: fmt.Errorf("handler: %w", ErrTooManyRequests), ok: true, status: http.StatusTooManyRequests},
		{name: "plain", err: fmt.Errorf("boom"), ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			he, ok := AsHTTPError(tt.err)
			if ok != tt.ok {
				t.Fatalf("AsHTTPError() ok = %v, want %v", ok, tt.ok)
			}
			if ok && he.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", he.StatusCode, tt.status)
			}
		})
	}
}

func TestNewHTTPErrorCode(t *testing.T) {
	e := NewHTTPErrorCode(http.StatusBadRequest, 40001, "missing file")
	if e.Error() != "missing file" || e.Code != 40001 || e.StatusCode != http.StatusBadRequest {
		t.Errorf("got %+v", e)
	}
}
