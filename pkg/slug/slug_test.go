package slug

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMake(t *testing.T) {
	got := map[string]string{}
	for _, in := range []string{
		"Sharma Sweets & Namkeen",
		"  Dr. Gupta's Clinic  ",
		"24x7 Plumbing -- Services!!",
		"राम Electronics",
		"",
	} {
		got[in] = Make(in)
	}
	want := map[string]string{
		"Sharma Sweets & Namkeen":     "sharma-sweets-and-namkeen",
		"  Dr. Gupta's Clinic  ":      "dr-gupta-s-clinic",
		"24x7 Plumbing -- Services!!": "24x7-plumbing-services",
		"राम Electronics":             "electronics",
		"":                            "",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Make mismatch (-want +got):\n%s", diff)
	}
}

func TestUnique(t *testing.T) {
	taken := map[string]bool{"city-bakery": true, "city-bakery-2": true}
	exists := func(_ context.Context, s string) (bool, error) { return taken[s], nil }

	s, err := Unique(context.Background(), "City Bakery", "business", exists)
	if err != nil {
		t.Fatal(err)
	}
	if s != "city-bakery-3" {
		t.Fatalf("Unique = %q, want city-bakery-3", s)
	}

	s, err = Unique(context.Background(), "!!!", "business", exists)
	if err != nil || s != "business" {
		t.Fatalf("Unique fallback = %q, %v", s, err)
	}

	_, err = Unique(context.Background(), "x", "b", func(context.Context, string) (bool, error) {
		return false, errors.New("db down")
	})
	if err == nil {
		t.Fatal("expected lookup error")
	}
}

func TestUniqueLongNameStaysWithinLimit(t *testing.T) {
	name := strings.Repeat("a", 100)
	base := Make(name)
	if len(base) != maxLen {
		t.Fatalf("base len = %d", len(base))
	}
	taken := map[string]bool{base: true}
	for i := 2; i <= 11; i++ {
		s, err := Unique(context.Background(), name, "business", func(_ context.Context, s string) (bool, error) {
			return taken[s], nil
		})
		if err != nil {
			t.Fatal(err)
		}
		if !Valid(s) || !strings.HasSuffix(s, fmt.Sprintf("-%d", i)) {
			t.Fatalf("Unique = %q (len %d)", s, len(s))
		}
		if Make(s) != s {
			t.Fatalf("Make(%q) changed the slug", s)
		}
		taken[s] = true
	}
}

func TestValid(t *testing.T) {
	for in, want := range map[string]bool{
		"city-bakery":           true,
		"24x7":                  true,
		"":                      false,
		"-lead":                 false,
		"trail-":                false,
		"double--dash":          false,
		"Upper":                 false,
		"spa ce":                false,
		strings.Repeat("a", 81): false,
		strings.Repeat("a", 80): true,
	} {
		if got := Valid(in); got != want {
			t.Errorf("Valid(%q) = %v, want %v", in, got, want)
		}
	}
}
