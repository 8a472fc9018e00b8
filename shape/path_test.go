package shape

import "testing"

func TestJoin(t *testing.T) {
	tests := []struct {
		parent string
		member string
		want   string
	}{
		{"", "Name", "Name"},
		{"user", "Name", "user.Name"},
		{"user", "", "user"},
		{"user", "[0]", "user[0]"},
		{"user.Address", "City", "user.Address.City"},
		{"", "", ""},
	}

	for _, tt := range tests {
		if got := Join(tt.parent, tt.member); got != tt.want {
			t.Errorf("Join(%q, %q) = %q; want %q", tt.parent, tt.member, got, tt.want)
		}
	}
}

func TestIndex(t *testing.T) {
	tests := []struct {
		parent string
		i      int
		want   string
	}{
		{"items", 0, "items[0]"},
		{"items", 12, "items[12]"},
		{"", 0, "[0]"},
		{"a.b", 3, "a.b[3]"},
	}

	for _, tt := range tests {
		if got := Index(tt.parent, tt.i); got != tt.want {
			t.Errorf("Index(%q, %d) = %q; want %q", tt.parent, tt.i, got, tt.want)
		}
	}
}
