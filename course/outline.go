package course

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// ErrEmptyOutline indicates the course exists but resolved to no video
// lessons. It is distinct from transport failures so callers can tell
// "nothing to download" from "could not ask".
var ErrEmptyOutline = errors.New("course has no video lessons")

var (
	slugStripRe = regexp.MustCompile(`[^a-z0-9]+`)
	slugDashRe  = regexp.MustCompile(`-+`)
)

// Slugify converts a lesson title into a URL-safe slug: lower-case, runs of
// non-alphanumeric characters collapsed to single hyphens. Never returns an
// empty string.
func Slugify(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	s = slugStripRe.ReplaceAllString(s, "-")
	s = slugDashRe.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "lesson"
	}
	return s
}

// LessonFromRecord builds a Lesson from a raw record stored under key,
// reconstructing the canonical viewable URL
// https://{host}/courses/{slug}/lesson/{lessonSlug}/{titleSlug}.
// Both the outline fetcher and the export path use this single builder.
func LessonFromRecord(courseSlug, key string, rec Record) Lesson {
	idx := rec.Index()
	title := rec.Title()
	return Lesson{
		Index: idx,
		Title: title,
		URL: fmt.Sprintf("https://%s/courses/%s/lesson/%s/%s",
			Host, courseSlug, rec.PathSlug(key), Slugify(title)),
	}
}

// SpecializationLesson builds a Lesson viewable under a specialization path,
// https://{host}/specializations/{slug}/lesson/{lessonSlug}/{titleSlug}.
func SpecializationLesson(specSlug, key string, rec Record) Lesson {
	idx := rec.Index()
	title := rec.Title()
	return Lesson{
		Index: idx,
		Title: title,
		URL: fmt.Sprintf("https://%s/specializations/%s/lesson/%s/%s",
			Host, specSlug, rec.PathSlug(key), Slugify(title)),
	}
}

// BuildOutline resolves raw course data into an ordered video outline.
//
// When an ordering hint is present it is authoritative: records are visited
// in hint order and unknown keys are skipped. Without a hint, records are
// visited sorted by their own index field (ties broken by key, since the
// mapping itself carries no order). Non-video records are excluded, and
// lessons whose index is not strictly positive are dropped as placeholder
// records before the final ascending sort.
func BuildOutline(data *CourseData) (*Course, error) {
	var lessons []Lesson
	add := func(key string, rec Record) {
		if rec == nil || !rec.IsVideo() {
			return
		}
		lessons = append(lessons, LessonFromRecord(data.Slug, key, rec))
	}

	if len(data.Ordering) > 0 {
		for _, key := range data.Ordering {
			add(key, data.Lessons[key])
		}
	} else {
		for _, key := range sortedRecordKeys(data.Lessons) {
			add(key, data.Lessons[key])
		}
	}

	kept := lessons[:0]
	for _, l := range lessons {
		if l.Index > 0 {
			kept = append(kept, l)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool { return kept[i].Index < kept[j].Index })

	if len(kept) == 0 {
		return nil, fmt.Errorf("course %q: %w", data.Slug, ErrEmptyOutline)
	}
	return &Course{Slug: data.Slug, Title: data.Title, Lessons: kept}, nil
}

// VideoRecords returns the course's video records with their mapping keys,
// sorted ascending by the records' own index. The export path works from raw
// records rather than the resolved outline.
func (d *CourseData) VideoRecords() []RecordRef {
	refs := make([]RecordRef, 0, len(d.Lessons))
	for _, key := range sortedRecordKeys(d.Lessons) {
		rec := d.Lessons[key]
		if rec != nil && rec.IsVideo() {
			refs = append(refs, RecordRef{Key: key, Record: rec})
		}
	}
	return refs
}

// RecordRef pairs a raw record with the mapping key it was stored under.
type RecordRef struct {
	Key    string
	Record Record
}

// sortedRecordKeys returns record keys ordered by record index, ties broken
// by key for determinism.
func sortedRecordKeys(records map[string]Record) []string {
	keys := make([]string, 0, len(records))
	for k := range records {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := records[keys[i]].Index(), records[keys[j]].Index()
		if a != b {
			return a < b
		}
		return keys[i] < keys[j]
	})
	return keys
}
