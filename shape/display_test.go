package shape

import "testing"

func TestHumanize(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"firstName", "First Name"},
		{"first_name", "First Name"},
		{"first-name", "First Name"},
		{"FirstName", "First Name"},
		{"name", "Name"},
		{"Name", "Name"},
		{"userId", "User Id"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Humanize(tt.name); got != tt.want {
			t.Errorf("Humanize(%q) = %q; want %q", tt.name, got, tt.want)
		}
	}
}
