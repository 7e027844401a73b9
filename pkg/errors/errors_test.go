package errors

import (
	"errors"
	"net/http"
	"testing"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		wantCode   string
		wantStatus int
	}{
		{"not found", NotFound("Spot"), CodeNotFound, http.StatusNotFound},
		{"not found with id", NotFoundWithID("Reservation", "r-1"), CodeNotFound, http.StatusNotFound},
		{"validation", Validation("bad input", nil), CodeValidation, http.StatusUnprocessableEntity},
		{"invalid input", InvalidInput("bad id"), CodeInvalidInput, http.StatusBadRequest},
		{"conflict", Conflict("already reserved"), CodeConflict, http.StatusConflict},
		{"internal", Internal("boom", nil), CodeInternal, http.StatusInternalServerError},
		{"timeout", Timeout("too slow"), CodeTimeout, http.StatusGatewayTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("Code = %s, want %s", tt.err.Code, tt.wantCode)
			}
			if tt.err.StatusCode() != tt.wantStatus {
				t.Errorf("StatusCode = %d, want %d", tt.err.StatusCode(), tt.wantStatus)
			}
		})
	}
}

func TestNotFoundWithID_Details(t *testing.T) {
	err := NotFoundWithID("Reservation", "r-1")
	if err.Details["id"] != "r-1" || err.Details["resource"] != "Reservation" {
		t.Errorf("unexpected details: %+v", err.Details)
	}
}

func TestWrapAndUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(cause, CodeInternal, "store failed", http.StatusInternalServerError)

	if !errors.Is(err, cause) {
		t.Error("wrapped cause should survive errors.Is")
	}
	if err.Error() == "" {
		t.Error("expected a formatted message")
	}
}

func TestAsAppError(t *testing.T) {
	appErr := Conflict("taken")
	if got := AsAppError(appErr); got != appErr {
		t.Error("AppError should pass through unchanged")
	}

	plain := errors.New("something broke")
	got := AsAppError(plain)
	if got.Code != CodeInternal || got.HTTPStatus != http.StatusInternalServerError {
		t.Errorf("plain error should map to internal, got %+v", got)
	}
	if !errors.Is(got, plain) {
		t.Error("original error should be wrapped")
	}
}

func TestIsAppError(t *testing.T) {
	if !IsAppError(Conflict("taken")) {
		t.Error("expected true for AppError")
	}
	if IsAppError(errors.New("plain")) {
		t.Error("expected false for plain error")
	}
}

func TestWithDetails(t *testing.T) {
	err := Conflict("taken").WithDetails(map[string]any{"spot_id": 5})
	if err.Details["spot_id"] != 5 {
		t.Errorf("unexpected details: %+v", err.Details)
	}
}
