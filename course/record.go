package course

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Record is a raw lesson record as returned by the platform's metadata API.
// The API makes no guarantees about field presence or numeric types (index
// arrives as a number, a string, or not at all), so every access goes through
// a defaulting accessor instead of assuming shape.
type Record map[string]any

// String returns the record field as a string, or "" when absent or not a string.
func (r Record) String(key string) string {
	if v, ok := r[key].(string); ok {
		return v
	}
	return ""
}

// Int returns the record field as an int, defaulting to 0 when the field is
// absent or unparseable.
func (r Record) Int(key string) int {
	switch v := r[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
	case string:
		s := strings.TrimSpace(v)
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int(f)
		}
	}
	return 0
}

// Index returns the lesson's 1-based position, or 0 when unset.
func (r Record) Index() int {
	return r.Int("index")
}

// Title returns the lesson's display name, falling back to "Lesson N" when
// the record carries no name.
func (r Record) Title() string {
	if name := r.String("name"); name != "" {
		return name
	}
	return fmt.Sprintf("Lesson %d", r.Index())
}

// PathSlug returns the lesson's own URL path slug, falling back to the
// mapping key the record was stored under.
func (r Record) PathSlug(key string) string {
	if s := r.String("slug"); s != "" {
		return s
	}
	return key
}

// IsVideo reports whether the record describes a playable video lesson.
// Quizzes, readings and other content types are excluded from outlines.
func (r Record) IsVideo() bool {
	return strings.EqualFold(r.String("type"), "video")
}
