package language_test

import (
	"testing"

	"reelstore/internal/language"
)

func TestEnglishName(t *testing.T) {
	if got := language.EnglishName("fr"); got != "French" {
		t.Fatalf("expected French, got %q", got)
	}
	if got := language.EnglishName(" FA "); got != "Persian" {
		t.Fatalf("expected Persian for trimmed uppercase code, got %q", got)
	}
	if got := language.EnglishName("xx"); got != "" {
		t.Fatalf("expected empty for unknown code, got %q", got)
	}
}

func TestDisplayName(t *testing.T) {
	if got := language.DisplayName("de", "Deutsch"); got != "German" {
		t.Fatalf("table entry should win, got %q", got)
	}
	if got := language.DisplayName("xx", "mystery tongue"); got != "Mystery Tongue" {
		t.Fatalf("expected title-cased native name, got %q", got)
	}
	if got := language.DisplayName("XX", ""); got != "xx" {
		t.Fatalf("expected lowered code when nothing else known, got %q", got)
	}
}
