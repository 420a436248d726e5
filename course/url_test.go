package course

import (
	"errors"
	"testing"
)

func TestParseCourseURL(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantBase string
		wantSlug string
		wantErr  error
	}{
		{
			name:     "course homepage",
			input:    "https://learn.deeplearning.ai/courses/my-course",
			wantBase: "https://learn.deeplearning.ai/courses/my-course",
			wantSlug: "my-course",
		},
		{
			name:     "lesson url under course",
			input:    "https://learn.deeplearning.ai/courses/my-course/lesson/abc123/introduction",
			wantBase: "https://learn.deeplearning.ai/courses/my-course",
			wantSlug: "my-course",
		},
		{
			name:     "trailing slash",
			input:    "https://learn.deeplearning.ai/courses/my-course/",
			wantBase: "https://learn.deeplearning.ai/courses/my-course",
			wantSlug: "my-course",
		},
		{
			name:     "query string ignored",
			input:    "https://learn.deeplearning.ai/courses/my-course?utm_source=x",
			wantBase: "https://learn.deeplearning.ai/courses/my-course",
			wantSlug: "my-course",
		},
		{
			name:    "wrong host",
			input:   "https://www.deeplearning.ai/courses/my-course",
			wantErr: ErrInvalidHost,
		},
		{
			name:    "no scheme means no host",
			input:   "learn.deeplearning.ai/courses/my-course",
			wantErr: ErrInvalidHost,
		},
		{
			name:    "not a course path",
			input:   "https://learn.deeplearning.ai/blog/some-post",
			wantErr: ErrInvalidPath,
		},
		{
			name:    "missing slug",
			input:   "https://learn.deeplearning.ai/courses",
			wantErr: ErrInvalidPath,
		},
		{
			name:    "root path",
			input:   "https://learn.deeplearning.ai/",
			wantErr: ErrInvalidPath,
		},
		{
			name:    "specialization url rejected by course parser",
			input:   "https://learn.deeplearning.ai/specializations/my-spec",
			wantErr: ErrInvalidPath,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base, slug, err := ParseCourseURL(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseCourseURL(%q) error = %v, want %v", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCourseURL(%q) error = %v", tt.input, err)
			}
			if base != tt.wantBase {
				t.Errorf("base = %q, want %q", base, tt.wantBase)
			}
			if slug != tt.wantSlug {
				t.Errorf("slug = %q, want %q", slug, tt.wantSlug)
			}
		})
	}
}

func TestParseSpecializationURL(t *testing.T) {
	base, slug, err := ParseSpecializationURL("https://learn.deeplearning.ai/specializations/my-spec/lesson/k1/intro")
	if err != nil {
		t.Fatalf("ParseSpecializationURL error = %v", err)
	}
	if base != "https://learn.deeplearning.ai/specializations/my-spec" {
		t.Errorf("base = %q", base)
	}
	if slug != "my-spec" {
		t.Errorf("slug = %q, want %q", slug, "my-spec")
	}

	if _, _, err := ParseSpecializationURL("https://learn.deeplearning.ai/courses/my-course"); !errors.Is(err, ErrInvalidPath) {
		t.Errorf("course url error = %v, want ErrInvalidPath", err)
	}
}

func TestParseURL_Kind(t *testing.T) {
	kind, _, _, err := ParseURL("https://learn.deeplearning.ai/specializations/my-spec")
	if err != nil {
		t.Fatalf("ParseURL error = %v", err)
	}
	if kind != KindSpecialization {
		t.Errorf("kind = %v, want KindSpecialization", kind)
	}

	kind, _, _, err = ParseURL("https://learn.deeplearning.ai/courses/my-course")
	if err != nil {
		t.Fatalf("ParseURL error = %v", err)
	}
	if kind != KindCourse {
		t.Errorf("kind = %v, want KindCourse", kind)
	}
}

// Building a lesson URL and re-parsing it must round-trip the course slug.
func TestLessonURLRoundTrip(t *testing.T) {
	rec := Record{"type": "video", "index": float64(3), "name": "Intro: Agents & Tools", "slug": "lsn-key"}
	lesson := LessonFromRecord("agents-course", "k3", rec)

	_, slug, err := ParseCourseURL(lesson.URL)
	if err != nil {
		t.Fatalf("ParseCourseURL(%q) error = %v", lesson.URL, err)
	}
	if slug != "agents-course" {
		t.Errorf("round-trip slug = %q, want %q", slug, "agents-course")
	}
}
