package siteshot

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/root4loot/goutils/urlutil"
)

// ErrInvalidDomainKey is returned when a URL yields a key that is not a usable folder name.
var ErrInvalidDomainKey = errors.New("invalid domain key")

// NormalizeURL prefixes http:// when target has no scheme.
func NormalizeURL(target string) string {
	if hasScheme(target) {
		return target
	}
	return "http://" + target
}

// hasScheme reports whether target parses with a scheme and a non-opaque remainder.
// "example.com:8080" parses as scheme "example.com" with opaque "8080" and is
// treated as a host.
func hasScheme(target string) bool {
	if urlutil.HasScheme(target) {
		return true
	}

	u, err := url.Parse(target)
	if err != nil || u.Scheme == "" {
		return false
	}
	return u.Opaque == "" || strings.HasPrefix(u.Opaque, "/")
}

// DomainKey derives the name used for per-domain folders and the {domain}
// placeholder: the host without a leading "www.", followed by the path with
// slashes replaced by underscores. Query and fragment are discarded.
func DomainKey(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}

	host := u.Host
	if host == "" {
		host = u.Opaque
	}
	host = strings.TrimPrefix(host, "www.")
	host = strings.ReplaceAll(host, ":", "-")

	path := strings.Trim(u.Path, "/")
	if path == "" {
		if host == "." || host == ".." {
			return "", fmt.Errorf("%w: %q", ErrInvalidDomainKey, host)
		}
		return host, nil
	}
	return host + "_" + strings.ReplaceAll(path, "/", "_"), nil
}
