// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, and utility functions

package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/arthur-debert/logsieve/pkg/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "config_parse_error",
			code:    errors.ErrConfigParse,
			message: "malformed rules file",
			wantStr: "[CONFIG_PARSE] malformed rules file",
		},
		{
			name:    "sink_write_error",
			code:    errors.ErrSinkWrite,
			message: "write failed",
			wantStr: "[SINK_WRITE] write failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			if err.Code != tt.code {
				t.Errorf("New() code = %v, want %v", err.Code, tt.code)
			}

			if err.Message != tt.message {
				t.Errorf("New() message = %q, want %q", err.Message, tt.message)
			}

			if err.Details == nil {
				t.Error("New() details should be initialized")
			}

			if got := err.Error(); got != tt.wantStr {
				t.Errorf("Error() = %q, want %q", got, tt.wantStr)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	t.Run("wraps_and_unwraps", func(t *testing.T) {
		inner := stderrors.New("permission denied")
		err := errors.Wrap(inner, errors.ErrSinkOpen, "cannot open destination")

		if !stderrors.Is(err, inner) {
			t.Error("wrapped error should satisfy errors.Is with inner error")
		}
		if got := err.Error(); got != "[SINK_OPEN] cannot open destination: permission denied" {
			t.Errorf("Error() = %q", got)
		}
	})

	t.Run("nil_error_returns_nil", func(t *testing.T) {
		if err := errors.Wrap(nil, errors.ErrSinkOpen, "ignored"); err != nil {
			t.Errorf("Wrap(nil) = %v, want nil", err)
		}
	})

	t.Run("wrapf_formats_message", func(t *testing.T) {
		inner := stderrors.New("no such file")
		err := errors.Wrapf(inner, errors.ErrSourceAccess, "cannot read %s", "app.log")
		if err.Message != "cannot read app.log" {
			t.Errorf("Wrapf() message = %q", err.Message)
		}
	})
}

func TestIsErrorCode(t *testing.T) {
	err := errors.Newf(errors.ErrPatternInvalid, "bad pattern %q", "[")

	if !errors.IsErrorCode(err, errors.ErrPatternInvalid) {
		t.Error("IsErrorCode should match the error's code")
	}
	if errors.IsErrorCode(err, errors.ErrSinkWrite) {
		t.Error("IsErrorCode should not match a different code")
	}
	if errors.IsErrorCode(stderrors.New("plain"), errors.ErrPatternInvalid) {
		t.Error("IsErrorCode should be false for plain errors")
	}
}

func TestGetErrorCode(t *testing.T) {
	if code := errors.GetErrorCode(errors.New(errors.ErrDirCreate, "mkdir failed")); code != errors.ErrDirCreate {
		t.Errorf("GetErrorCode() = %v, want %v", code, errors.ErrDirCreate)
	}
	if code := errors.GetErrorCode(stderrors.New("plain")); code != errors.ErrUnknown {
		t.Errorf("GetErrorCode(plain) = %v, want %v", code, errors.ErrUnknown)
	}
}

func TestIsConfigError(t *testing.T) {
	fatal := []errors.ErrorCode{
		errors.ErrConfigLoad,
		errors.ErrConfigParse,
		errors.ErrConfigValid,
		errors.ErrPatternInvalid,
	}
	for _, code := range fatal {
		if !errors.IsConfigError(errors.New(code, "boom")) {
			t.Errorf("IsConfigError should be true for %v", code)
		}
	}
	if errors.IsConfigError(errors.New(errors.ErrSinkWrite, "boom")) {
		t.Error("IsConfigError should be false for sink errors")
	}
}
