package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      *NotFoundError
		wantMsg  string
		wantBase error
	}{
		{
			name:     "with ID",
			err:      &NotFoundError{Resource: "collection", ID: "bajrang-baan"},
			wantMsg:  "collection not found: bajrang-baan",
			wantBase: ErrNotFound,
		},
		{
			name:     "without ID",
			err:      &NotFoundError{Resource: "verse"},
			wantMsg:  "verse not found",
			wantBase: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if got := tt.err.Unwrap(); !errors.Is(got, tt.wantBase) {
				t.Errorf("Unwrap() = %v, want %v", got, tt.wantBase)
			}
		})
	}

	t.Run("with underlying error", func(t *testing.T) {
		underlyingErr := fmt.Errorf("disk error")
		err := &NotFoundError{Resource: "file", ID: "doha-01.md", Err: underlyingErr}
		if got := err.Error(); got != "file not found: doha-01.md" {
			t.Errorf("Error() = %q", got)
		}
		if got := err.Unwrap(); got != underlyingErr {
			t.Errorf("Unwrap() = %v, want %v", got, underlyingErr)
		}
	})
}

func TestValidationError(t *testing.T) {
	tests := []struct {
		name     string
		err      *ValidationError
		wantMsg  string
		wantBase error
	}{
		{
			name:     "with field",
			err:      &ValidationError{Field: "permalink_base", Message: "must not be empty"},
			wantMsg:  "validation failed for permalink_base: must not be empty",
			wantBase: ErrInvalidInput,
		},
		{
			name:     "without field",
			err:      &ValidationError{Message: "invalid format"},
			wantMsg:  "validation failed: invalid format",
			wantBase: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if got := tt.err.Unwrap(); !errors.Is(got, tt.wantBase) {
				t.Errorf("Unwrap() = %v, want %v", got, tt.wantBase)
			}
		})
	}
}

func TestParseError(t *testing.T) {
	err := &ParseError{Format: "YAML", Path: "_data/collections.yml", Message: "bad indent"}
	want := "failed to parse YAML at _data/collections.yml: bad indent"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(err, ErrInvalidInput) {
		t.Error("ParseError should unwrap to ErrInvalidInput")
	}

	err = &ParseError{Format: "JSON", Message: "unexpected EOF"}
	want = "failed to parse JSON: unexpected EOF"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestIOError(t *testing.T) {
	underlying := fmt.Errorf("permission denied")
	err := &IOError{Operation: "write", Path: "/out/index.html", Err: underlying}
	want := "failed to write /out/index.html: permission denied"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if got := err.Unwrap(); got != underlying {
		t.Errorf("Unwrap() = %v, want %v", got, underlying)
	}
}

func TestWrap(t *testing.T) {
	if got := Wrap(nil, "context"); got != nil {
		t.Errorf("Wrap(nil) = %v, want nil", got)
	}

	base := errors.New("base error")
	wrapped := Wrap(base, "loading sequence")
	if wrapped == nil {
		t.Fatal("Wrap returned nil for non-nil error")
	}
	if !errors.Is(wrapped, base) {
		t.Error("wrapped error should match base via errors.Is")
	}
	if got := wrapped.Error(); got != "loading sequence: base error" {
		t.Errorf("Error() = %q", got)
	}
}

func TestWrapf(t *testing.T) {
	if got := Wrapf(nil, "context %d", 1); got != nil {
		t.Errorf("Wrapf(nil) = %v, want nil", got)
	}

	base := errors.New("base error")
	wrapped := Wrapf(base, "collection %s", "sundar-kaand")
	if !errors.Is(wrapped, base) {
		t.Error("wrapped error should match base via errors.Is")
	}
	if got := wrapped.Error(); got != "collection sundar-kaand: base error" {
		t.Errorf("Error() = %q", got)
	}
}

func TestHelpers(t *testing.T) {
	nf := NewNotFound("collection", "missing")
	if !Is(nf, ErrNotFound) {
		t.Error("NewNotFound should match ErrNotFound")
	}

	var target *NotFoundError
	if !As(nf, &target) {
		t.Error("As should extract *NotFoundError")
	}
	if target.ID != "missing" {
		t.Errorf("target.ID = %q, want %q", target.ID, "missing")
	}

	ve := NewValidation("icon", "unknown symbol")
	if !Is(ve, ErrInvalidInput) {
		t.Error("NewValidation should match ErrInvalidInput")
	}

	pe := NewParse("frontmatter", "chau.md", "unclosed block")
	if !Is(pe, ErrInvalidInput) {
		t.Error("NewParse should match ErrInvalidInput")
	}

	ioe := NewIO("read", "a.md", errors.New("gone"))
	if ioe.Error() != "failed to read a.md: gone" {
		t.Errorf("NewIO Error() = %q", ioe.Error())
	}
}
