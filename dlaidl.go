package dlaidl

import (
	"context"

	"dlaidl/course"
	dlhttp "dlaidl/http"
)

// FetchOutline resolves any course URL (the course homepage or any lesson
// under it) into the course's ordered video outline.
func FetchOutline(ctx context.Context, rawURL string) (*course.Course, error) {
	_, slug, err := course.ParseCourseURL(rawURL)
	if err != nil {
		return nil, err
	}

	hc := dlhttp.New(nil)
	defer hc.Close()

	data, err := course.NewClient(hc).FetchCourse(ctx, slug)
	if err != nil {
		return nil, err
	}
	return course.BuildOutline(data)
}

// FetchSpecialization resolves a specialization URL into its raw course
// series. Each member course can be passed to course.BuildOutline.
func FetchSpecialization(ctx context.Context, rawURL string) (*course.SpecializationData, error) {
	_, slug, err := course.ParseSpecializationURL(rawURL)
	if err != nil {
		return nil, err
	}

	hc := dlhttp.New(nil)
	defer hc.Close()

	return course.NewClient(hc).FetchSpecialization(ctx, slug)
}
