// Package course resolves the platform's course listings into ordered video
// outlines and orchestrates per-lesson download and manifest-export runs.
package course

// Lesson is one playable video lesson in a course outline. Instances are
// built once by BuildOutline and immutable afterwards.
type Lesson struct {
	// Index is the lesson's 1-based position within its course.
	Index int
	// Title is the lesson's display name.
	Title string
	// URL is the canonical viewable URL for the lesson.
	URL string
}

// Course is a resolved course outline: only video lessons, sorted ascending
// by index.
type Course struct {
	// Slug is the course's URL path segment, the only stable identifier.
	Slug string
	// Title is the course's display name; falls back to the slug when the
	// API returns no name.
	Title string
	// Lessons is the ordered video outline.
	Lessons []Lesson
}

// CourseData is the raw course payload from the metadata API, before outline
// resolution.
type CourseData struct {
	Slug  string
	Title string
	// Lessons maps opaque record keys to raw lesson records.
	Lessons map[string]Record
	// Ordering is the listing-derived key order. When non-empty it is
	// authoritative for lesson order; when empty, order falls back to the
	// records' own index fields.
	Ordering []string
}

// SpecializationData is the raw specialization payload from the metadata API:
// an ordered series of courses, each with its own lesson records but no
// listing structure.
type SpecializationData struct {
	Slug    string
	Title   string
	Courses []CourseData
}
