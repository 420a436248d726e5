package course

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Host is the course platform's fixed hostname. Input URLs on any other host
// are rejected before any network access happens.
const Host = "learn.deeplearning.ai"

// Sentinel errors for input URL validation. Both are permanent: the caller
// must fix the URL, no retry will help.
var (
	// ErrInvalidHost indicates the input URL does not belong to the platform.
	ErrInvalidHost = errors.New("url host is not the course platform")
	// ErrInvalidPath indicates the URL path is not a recognized course or
	// specialization path.
	ErrInvalidPath = errors.New("url path is not a recognized course path")
)

// URLKind distinguishes the two addressable outline shapes on the platform.
type URLKind int

const (
	// KindCourse is a URL under /courses/<slug>.
	KindCourse URLKind = iota
	// KindSpecialization is a URL under /specializations/<slug>.
	KindSpecialization
)

// ParseURL validates an input URL and classifies it as a course or
// specialization URL, returning the canonical base URL and the slug.
// Any lesson URL under the course works; only the first two path segments
// matter.
func ParseURL(raw string) (URLKind, string, string, error) {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return 0, "", "", fmt.Errorf("%w: %q", ErrInvalidHost, raw)
	}
	if u.Host != Host {
		return 0, "", "", fmt.Errorf("%w: got %q, want %q", ErrInvalidHost, u.Host, Host)
	}

	parts := splitPath(u.Path)
	if len(parts) < 2 {
		return 0, "", "", fmt.Errorf("%w: %q", ErrInvalidPath, u.Path)
	}

	slug := parts[1]
	switch parts[0] {
	case "courses":
		return KindCourse, fmt.Sprintf("https://%s/courses/%s", Host, slug), slug, nil
	case "specializations":
		return KindSpecialization, fmt.Sprintf("https://%s/specializations/%s", Host, slug), slug, nil
	}
	return 0, "", "", fmt.Errorf("%w: %q", ErrInvalidPath, u.Path)
}

// ParseCourseURL validates a course URL and returns the course base URL and slug.
func ParseCourseURL(raw string) (string, string, error) {
	kind, base, slug, err := ParseURL(raw)
	if err != nil {
		return "", "", err
	}
	if kind != KindCourse {
		return "", "", fmt.Errorf("%w: expected a /courses/<slug> path", ErrInvalidPath)
	}
	return base, slug, nil
}

// ParseSpecializationURL validates a specialization URL and returns its base
// URL and slug.
func ParseSpecializationURL(raw string) (string, string, error) {
	kind, base, slug, err := ParseURL(raw)
	if err != nil {
		return "", "", err
	}
	if kind != KindSpecialization {
		return "", "", fmt.Errorf("%w: expected a /specializations/<slug> path", ErrInvalidPath)
	}
	return base, slug, nil
}

// splitPath returns the non-empty segments of a URL path.
func splitPath(p string) []string {
	var parts []string
	for _, s := range strings.Split(p, "/") {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return parts
}
