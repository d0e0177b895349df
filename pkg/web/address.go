package web

import (
	"net/url"
	"path"
	"strings"
)

// Address is a parsed, immutable resource locator. Two addresses are the
// same address iff their full string forms are equal.
type Address struct {
	u *url.URL
}

// localSchemes are schemes that resolve without touching the network.
// They never get a favicon side-fetch.
var localSchemes = map[string]bool{
	"file":  true,
	"about": true,
}

// ParseAddress parses raw into an Address. The result may fail Valid();
// callers decide how to surface that.
func ParseAddress(raw string) *Address {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return &Address{u: &url.URL{}}
	}
	return &Address{u: u}
}

// Valid reports whether the address is structurally usable: it must have a
// scheme, and network schemes must name a host.
func (a *Address) Valid() bool {
	if a == nil || a.u == nil || a.u.Scheme == "" {
		return false
	}
	if localSchemes[a.u.Scheme] {
		return true
	}
	return a.u.Host != ""
}

func (a *Address) Scheme() string   { return a.u.Scheme }
func (a *Address) Host() string     { return a.u.Hostname() }
func (a *Address) Port() string     { return a.u.Port() }
func (a *Address) Path() string     { return a.u.Path }
func (a *Address) Query() string    { return a.u.RawQuery }
func (a *Address) Fragment() string { return a.u.Fragment }

// String returns the full string form of the address.
func (a *Address) String() string {
	if a == nil || a.u == nil {
		return ""
	}
	return a.u.String()
}

// Equal compares by full string form.
func (a *Address) Equal(other *Address) bool {
	return a.String() == other.String()
}

// IsLocal reports whether the scheme is a local/virtual scheme.
func (a *Address) IsLocal() bool {
	return localSchemes[a.u.Scheme]
}

// Basename returns the last path component, used for synthesized document
// titles.
func (a *Address) Basename() string {
	return path.Base(a.u.Path)
}

// Resolve resolves a possibly-relative reference against this address.
// Redirect Location targets are allowed to be relative.
func (a *Address) Resolve(ref string) *Address {
	refURL, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return &Address{u: &url.URL{}}
	}
	return &Address{u: a.u.ResolveReference(refURL)}
}

// FaviconAddress returns the conventional site-icon address at this
// address's origin.
func (a *Address) FaviconAddress() *Address {
	return &Address{u: &url.URL{
		Scheme: a.u.Scheme,
		Host:   a.u.Host,
		Path:   "/favicon.ico",
	}}
}
