package web

import "testing"

func TestAddress_Valid(t *testing.T) {
	tests := []struct {
		raw   string
		valid bool
	}{
		{"http://example.com/index.html", true},
		{"https://example.com:8080/a?q=1#frag", true},
		{"file:///res/html/error.html", true},
		{"about:blank", true},
		{"example.com/no-scheme", false},
		{"http://", false},
		{"", false},
		{"   ", false},
	}
	for _, tt := range tests {
		if got := ParseAddress(tt.raw).Valid(); got != tt.valid {
			t.Errorf("ParseAddress(%q).Valid() = %v, want %v", tt.raw, got, tt.valid)
		}
	}
}

func TestAddress_Parts(t *testing.T) {
	a := ParseAddress("https://example.com:8080/docs/readme.md?x=1#intro")
	if a.Scheme() != "https" {
		t.Errorf("scheme = %q", a.Scheme())
	}
	if a.Host() != "example.com" {
		t.Errorf("host = %q", a.Host())
	}
	if a.Port() != "8080" {
		t.Errorf("port = %q", a.Port())
	}
	if a.Path() != "/docs/readme.md" {
		t.Errorf("path = %q", a.Path())
	}
	if a.Fragment() != "intro" {
		t.Errorf("fragment = %q", a.Fragment())
	}
	if a.Basename() != "readme.md" {
		t.Errorf("basename = %q", a.Basename())
	}
}

func TestAddress_Equal(t *testing.T) {
	a := ParseAddress("http://example.com/a")
	b := ParseAddress("http://example.com/a")
	c := ParseAddress("http://example.com/b")
	if !a.Equal(b) {
		t.Error("identical addresses should be equal")
	}
	if a.Equal(c) {
		t.Error("different addresses should not be equal")
	}
}

func TestAddress_Resolve(t *testing.T) {
	base := ParseAddress("http://example.com/dir/page.html")
	tests := []struct {
		ref  string
		want string
	}{
		{"/other", "http://example.com/other"},
		{"sibling.html", "http://example.com/dir/sibling.html"},
		{"https://elsewhere.org/x", "https://elsewhere.org/x"},
	}
	for _, tt := range tests {
		if got := base.Resolve(tt.ref).String(); got != tt.want {
			t.Errorf("Resolve(%q) = %q, want %q", tt.ref, got, tt.want)
		}
	}
}

func TestAddress_FaviconAddress(t *testing.T) {
	a := ParseAddress("https://example.com:8080/deep/path?q=1")
	got := a.FaviconAddress().String()
	if got != "https://example.com:8080/favicon.ico" {
		t.Errorf("favicon address = %q", got)
	}
}

func TestAddress_IsLocal(t *testing.T) {
	if !ParseAddress("file:///tmp/x.html").IsLocal() {
		t.Error("file scheme should be local")
	}
	if !ParseAddress("about:blank").IsLocal() {
		t.Error("about scheme should be local")
	}
	if ParseAddress("http://example.com").IsLocal() {
		t.Error("http scheme should not be local")
	}
}
