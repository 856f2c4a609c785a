// Copyright 2025 Certen Protocol
package assets

import "testing"

func TestMatchGlob(t *testing.T) {
	cases := []struct {
		pattern string
		path    string
		want    bool
	}{
		{"*.html", "index.html", true},
		{"*.html", "dir/index.html", false},
		{"**/*.html", "dir/index.html", true},
		{"**/*.html", "a/b/c/index.html", true},
		{"/assets/?.png", "/assets/1.png", true},
		{"/assets/?.png", "/assets/12.png", false},
		{"/img.{png,jpg}", "/img.png", true},
		{"/img.{png,jpg}", "/img.jpg", true},
		{"/img.{png,jpg}", "/img.gif", false},
		{"/[a-c]at", "/bat", true},
		{"/[!a-c]at", "/bat", false},
		{"/[!a-c]at", "/zat", true},
	}
	for _, c := range cases {
		if got := MatchGlob(c.pattern, c.path); got != c.want {
			t.Errorf("MatchGlob(%q, %q) = %v, want %v", c.pattern, c.path, got, c.want)
		}
	}
}
