package module

import (
	"errors"
	"testing"
)

func TestValidateIdentity(t *testing.T) {
	t.Run("accepts_valid_identities", func(t *testing.T) {
		for _, id := range []string{"VERB", "DLY1", "DEMO", "A000", "ZZZZ"} {
			if err := ValidateIdentity(id); err != nil {
				t.Errorf("ValidateIdentity(%q) = %v, want nil", id, err)
			}
		}
	})

	t.Run("rejects_invalid_identities", func(t *testing.T) {
		cases := map[string]string{
			"verb":  "lowercase",
			"1ERB":  "starts with digit",
			"VER":   "too short",
			"VERBX": "too long",
			"":      "empty",
			"VE-B":  "punctuation",
			"VErb":  "mixed case",
		}
		for id, why := range cases {
			err := ValidateIdentity(id)
			if err == nil {
				t.Errorf("ValidateIdentity(%q) = nil, want error (%s)", id, why)
				continue
			}
			if !errors.Is(err, ErrInvalidIdentity) {
				t.Errorf("ValidateIdentity(%q) = %v, want ErrInvalidIdentity", id, err)
			}
		}
	})

	t.Run("error_names_the_identity", func(t *testing.T) {
		err := ValidateIdentity("verb")
		var iie *InvalidIdentityError
		if !errors.As(err, &iie) {
			t.Fatalf("expected *InvalidIdentityError, got %T", err)
		}
		if iie.Identity != "verb" {
			t.Errorf("Identity = %q, want %q", iie.Identity, "verb")
		}
		if iie.Reason == "" {
			t.Error("Reason should not be empty")
		}
	})
}

func TestDefaultName(t *testing.T) {
	if got := DefaultName("DLY1"); got != "Dly1" {
		t.Errorf("DefaultName(DLY1) = %q, want %q", got, "Dly1")
	}
	if got := DefaultName("VERB"); got != "Verb" {
		t.Errorf("DefaultName(VERB) = %q, want %q", got, "Verb")
	}
}
