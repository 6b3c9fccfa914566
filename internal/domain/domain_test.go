package domain

import "testing"

func TestValidWebsiteURL(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"https://example.com", true},
		{"http://example.com", true},
		{"  https://example.com  ", true},
		{"", false},
		{"   ", false},
		{"example.com", false},
		{"ftp://x", false},
		{"httpx://example.com", false},
	}
	for _, c := range cases {
		if got := ValidWebsiteURL(c.in); got != c.want {
			t.Fatalf("ValidWebsiteURL(%q)=%v want %v", c.in, got, c.want)
		}
	}
}
