package version

import "testing"

func TestCompare(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"1.0.0", "1.0.1", -1},
		{"1.2.0", "1.2.0", 0},
		{"2.0.0", "1.9.9", 1},
		{"v1.0.0", "1.0.0", 0},
		{"1.0.0", "v1.0.1", -1},
	}

	for _, tc := range cases {
		got, err := Compare(tc.a, tc.b)
		if err != nil {
			t.Errorf("Compare(%q, %q): %v", tc.a, tc.b, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Compare(%q, %q) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}

	if _, err := Compare("not-a-version", "1.0.0"); err == nil {
		t.Error("Compare with garbage input should fail")
	}
}

func TestAtLeast(t *testing.T) {
	cases := []struct {
		current, minimum string
		want             bool
	}{
		{"1.2.0", "1.0.0", true},
		{"1.0.0", "1.2.0", false},
		{"1.2.0", "1.2.0", true},
		{"dev", "99.0.0", true},
		{"", "99.0.0", true},
	}

	for _, tc := range cases {
		got, err := AtLeast(tc.current, tc.minimum)
		if err != nil {
			t.Errorf("AtLeast(%q, %q): %v", tc.current, tc.minimum, err)
			continue
		}
		if got != tc.want {
			t.Errorf("AtLeast(%q, %q) = %v, want %v", tc.current, tc.minimum, got, tc.want)
		}
	}
}
