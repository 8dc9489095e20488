package catalog

import "testing"

func TestNormalizeVersion(t *testing.T) {
	cases := []struct {
		in, want string
		wantErr  bool
	}{
		{"v1.22.0", "v1.22.0", false},
		{"1.22.0", "v1.22.0", false},
		{"", "", false},
		{"not-a-version", "", true},
	}
	for _, c := range cases {
		got, err := NormalizeVersion(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("NormalizeVersion(%q) expected error, got none", c.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("NormalizeVersion(%q) unexpected error: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("NormalizeVersion(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
