package slug_test

import (
	"testing"

	"passby/internal/platform/slug"
)

func TestFilename(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in   string
		want string
	}{
		{"Market Square", "Market_Square"},
		{"café entrance", "cafe_entrance"},
		{"a/b\\c:d", "a_b_c_d"},
		{"  trimmed  ", "trimmed"},
		{"___", ""},
		{"", ""},
		{"north-gate_2", "north-gate_2"},
	}
	for _, tc := range cases {
		if got := slug.Filename(tc.in); got != tc.want {
			t.Errorf("Filename(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
