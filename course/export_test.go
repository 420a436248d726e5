package course

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

// fakeResolver maps viewable URLs to direct URLs; unlisted URLs fail.
type fakeResolver struct {
	failSubstrings []string
	calls          []string
}

func (f *fakeResolver) Resolve(ctx context.Context, viewURL string) (string, error) {
	f.calls = append(f.calls, viewURL)
	for _, s := range f.failSubstrings {
		if strings.Contains(viewURL, s) {
			return "", errors.New("resolution failed")
		}
	}
	return "https://cdn.example.com/media?src=" + viewURL, nil
}

type fakeVerifier struct {
	err   error
	calls int
}

func (f *fakeVerifier) Head(ctx context.Context, url string) error {
	f.calls++
	return f.err
}

func exportTestData(n int) *CourseData {
	lessons := make(map[string]Record, n)
	for i := 1; i <= n; i++ {
		lessons[fmt.Sprintf("k%d", i)] = Record{
			"type":  "video",
			"index": float64(i),
			"name":  fmt.Sprintf("Lesson Title %d", i),
			"slug":  fmt.Sprintf("slug-%d", i),
		}
	}
	return &CourseData{Slug: "c1", Title: "Course One", Lessons: lessons}
}

func readManifest(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open manifest: %v", err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("parse manifest: %v", err)
	}
	return records
}

func TestExportCourse_SkipsFailedResolutionAndContinues(t *testing.T) {
	resolver := &fakeResolver{failSubstrings: []string{"slug-3"}}
	exporter := NewExporter(resolver, zap.NewNop().Sugar())
	path := filepath.Join(t.TempDir(), "videos.csv")

	report, err := exporter.ExportCourse(context.Background(), exportTestData(5), path, false)
	if err != nil {
		t.Fatalf("ExportCourse error = %v", err)
	}

	if report.Processed != 5 {
		t.Errorf("processed = %d, want 5", report.Processed)
	}
	if report.Exported != 4 {
		t.Errorf("exported = %d, want 4", report.Exported)
	}
	if len(resolver.calls) != 5 {
		t.Errorf("resolver calls = %d, want 5 (loop continues past lesson 3)", len(resolver.calls))
	}

	records := readManifest(t, path)
	if len(records) != 5 { // header + 4 rows
		t.Fatalf("manifest has %d lines, want 5", len(records))
	}
	if got := strings.Join(records[0], ","); got != "url,title,path" {
		t.Errorf("header = %q, want %q", got, "url,title,path")
	}

	wd, _ := os.Getwd()
	wantTitles := []string{"01 - Lesson Title 1", "02 - Lesson Title 2", "04 - Lesson Title 4", "05 - Lesson Title 5"}
	for i, want := range wantTitles {
		row := records[i+1]
		if row[1] != want {
			t.Errorf("row %d title = %q, want %q", i, row[1], want)
		}
		if !strings.HasPrefix(row[0], "https://cdn.example.com/media") {
			t.Errorf("row %d url = %q", i, row[0])
		}
		if row[2] != wd {
			t.Errorf("row %d path = %q, want working directory %q", i, row[2], wd)
		}
	}
}

func TestExportCourse_HeaderOnlyWhenNothingResolves(t *testing.T) {
	resolver := &fakeResolver{failSubstrings: []string{"slug-"}}
	exporter := NewExporter(resolver, zap.NewNop().Sugar())
	path := filepath.Join(t.TempDir(), "videos.csv")

	report, err := exporter.ExportCourse(context.Background(), exportTestData(3), path, false)
	if err != nil {
		t.Fatalf("ExportCourse error = %v", err)
	}
	if report.Exported != 0 || report.Processed != 3 {
		t.Errorf("report = %+v", report)
	}

	records := readManifest(t, path)
	if len(records) != 1 {
		t.Fatalf("manifest has %d lines, want header only", len(records))
	}
	if got := strings.Join(records[0], ","); got != "url,title,path" {
		t.Errorf("header = %q", got)
	}
}

func TestExportCourse_VerificationFailureKeepsRow(t *testing.T) {
	resolver := &fakeResolver{}
	verifier := &fakeVerifier{err: errors.New("403")}
	exporter := NewExporter(resolver, zap.NewNop().Sugar())
	exporter.Verifier = verifier
	path := filepath.Join(t.TempDir(), "videos.csv")

	report, err := exporter.ExportCourse(context.Background(), exportTestData(2), path, true)
	if err != nil {
		t.Fatalf("ExportCourse error = %v", err)
	}
	if verifier.calls != 2 {
		t.Errorf("verifier calls = %d, want 2", verifier.calls)
	}
	if report.Exported != 2 {
		t.Errorf("exported = %d, want 2 (verification failure never removes a row)", report.Exported)
	}
}

func TestExportCourse_NoVerificationWhenNotRequested(t *testing.T) {
	verifier := &fakeVerifier{}
	exporter := NewExporter(&fakeResolver{}, zap.NewNop().Sugar())
	exporter.Verifier = verifier
	path := filepath.Join(t.TempDir(), "videos.csv")

	if _, err := exporter.ExportCourse(context.Background(), exportTestData(2), path, false); err != nil {
		t.Fatalf("ExportCourse error = %v", err)
	}
	if verifier.calls != 0 {
		t.Errorf("verifier calls = %d, want 0", verifier.calls)
	}
}

func TestExportCourse_InterruptAbortsBeforeWriting(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	exporter := NewExporter(&fakeResolver{}, zap.NewNop().Sugar())
	path := filepath.Join(t.TempDir(), "videos.csv")

	_, err := exporter.ExportCourse(ctx, exportTestData(2), path, false)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
	if _, statErr := os.Stat(path); !os.IsNotExist(statErr) {
		t.Error("manifest written despite interrupt")
	}
}

func TestExportSpecialization_FlattensCoursesInOrder(t *testing.T) {
	data := &SpecializationData{
		Slug:  "sp1",
		Title: "Spec One",
		Courses: []CourseData{
			{Slug: "a", Title: "A", Lessons: map[string]Record{
				"k2": {"type": "video", "index": float64(2), "name": "A Two", "slug": "a2"},
				"k1": {"type": "video", "index": float64(1), "name": "A One", "slug": "a1"},
			}},
			{Slug: "b", Title: "B", Lessons: map[string]Record{
				"k1": {"type": "video", "index": float64(1), "name": "B One", "slug": "b1"},
				"kq": {"type": "quiz", "index": float64(2), "name": "B Quiz"},
			}},
		},
	}

	resolver := &fakeResolver{}
	exporter := NewExporter(resolver, zap.NewNop().Sugar())
	path := filepath.Join(t.TempDir(), "videos.csv")

	report, err := exporter.ExportSpecialization(context.Background(), data, path, false)
	if err != nil {
		t.Fatalf("ExportSpecialization error = %v", err)
	}
	if report.Processed != 3 || report.Exported != 3 {
		t.Errorf("report = %+v", report)
	}

	records := readManifest(t, path)
	wantTitles := []string{"01 - A One", "02 - A Two", "01 - B One"}
	if len(records) != len(wantTitles)+1 {
		t.Fatalf("manifest has %d lines, want %d", len(records), len(wantTitles)+1)
	}
	for i, want := range wantTitles {
		if records[i+1][1] != want {
			t.Errorf("row %d title = %q, want %q", i, records[i+1][1], want)
		}
	}

	// Specialization rows resolve under the specialization path.
	for _, call := range resolver.calls {
		if !strings.Contains(call, "/specializations/sp1/lesson/") {
			t.Errorf("resolved url = %q, want specialization path", call)
		}
	}
}
