package slug

import "testing"

func TestIsSlug(t *testing.T) {
	valid := []string{"cash-sale", "owner-contribution", "x2", "current-month"}
	for _, s := range valid {
		if !IsSlug(s) {
			t.Errorf("IsSlug(%q) = false, want true", s)
		}
	}
	invalid := []string{"", "a", "Cash-Sale", "cash_sale", "-leading", "with space"}
	for _, s := range invalid {
		if IsSlug(s) {
			t.Errorf("IsSlug(%q) = true, want false", s)
		}
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Cash Sale":        "cash-sale",
		"HPP / Bahan Baku": "hpp-bahan-baku",
		"  spaced  ":       "spaced",
		"already-a-slug":   "already-a-slug",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}
