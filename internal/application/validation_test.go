package application

import (
	"errors"
	"testing"
)

func TestValidateRequired(t *testing.T) {
	tests := []struct {
		name      string
		fieldName string
		value     string
		wantErr   bool
	}{
		{
			name:      "valid value",
			fieldName: "mood",
			value:     "Fresh",
			wantErr:   false,
		},
		{
			name:      "empty string",
			fieldName: "mood",
			value:     "",
			wantErr:   true,
		},
		{
			name:      "whitespace only",
			fieldName: "occasion",
			value:     "   ",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequired(tt.fieldName, tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRequired() error = %v, wantErr %v", err, tt.wantErr)
			}

			if err != nil {
				var valErr *ValidationError
				if !errors.As(err, &valErr) {
					t.Errorf("expected ValidationError, got %T", err)
				}
				if valErr.Field != tt.fieldName {
					t.Errorf("expected field %s, got %s", tt.fieldName, valErr.Field)
				}
			}
		})
	}
}

func TestValidateUsernameAndPassword(t *testing.T) {
	tests := []struct {
		name    string
		check   func() error
		wantErr bool
	}{
		{"valid username", func() error { return ValidateUsername("alice") }, false},
		{"empty username", func() error { return ValidateUsername("") }, true},
		{"username with space", func() error { return ValidateUsername("al ice") }, true},
		{"valid password", func() error { return ValidatePassword("secret1") }, false},
		{"short password", func() error { return ValidatePassword("abc") }, true},
		{"empty password", func() error { return ValidatePassword("  ") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.check()
			if (err != nil) != tt.wantErr {
				t.Errorf("error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseQuery(t *testing.T) {
	q, err := ParseQuery("fresh", "everyday wear", []string{"woody", "citrus"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Text() != "Fresh Everyday Wear Citrus Woody" {
		t.Errorf("unexpected query text %q", q.Text())
	}

	_, err = ParseQuery("", "Work", nil)
	var valErr *ValidationError
	if !errors.As(err, &valErr) || valErr.Field != "mood" {
		t.Errorf("expected mood ValidationError, got %v", err)
	}

	_, err = ParseQuery("Fresh", "Brunch", nil)
	if !errors.Is(err, ErrInvalidChoice) {
		t.Errorf("expected ErrInvalidChoice, got %v", err)
	}
}

func TestCatalogLoadError(t *testing.T) {
	cause := errors.New("no such file")
	err := error(&CatalogLoadError{Source: "perfumes.csv", Err: cause})

	if !errors.Is(err, ErrCatalogLoad) {
		t.Error("expected errors.Is(err, ErrCatalogLoad)")
	}
	if !errors.Is(err, cause) {
		t.Error("expected cause to be unwrapped")
	}
	if err.Error() != "cannot load catalog perfumes.csv: no such file" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestOptions(t *testing.T) {
	opts := Options()
	if len(opts["mood"]) != 6 || len(opts["occasion"]) != 4 || len(opts["notes"]) != 8 {
		t.Errorf("unexpected option counts: %v", opts)
	}
}
