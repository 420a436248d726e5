package course

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Resolver resolves a canonical viewable URL to a direct media URL using the
// external extraction tool. Implemented by media.Tool; tests substitute fakes.
type Resolver interface {
	Resolve(ctx context.Context, viewURL string) (string, error)
}

// URLVerifier checks that a direct media URL is reachable. Implemented by
// the http package's client via a HEAD request.
type URLVerifier interface {
	Head(ctx context.Context, url string) error
}

// ExportRow is one manifest line: a resolved direct media URL and its
// display title.
type ExportRow struct {
	URL   string
	Title string
}

// ExportReport summarizes one export run.
type ExportReport struct {
	RunID string
	// Processed is the number of video records considered.
	Processed int
	// Exported is the number of rows written to the manifest.
	Exported int
}

// Exporter resolves each video lesson to a direct media URL and writes a CSV
// manifest. A lesson that fails to resolve is skipped, never fatal; a failed
// reachability check only warns.
type Exporter struct {
	// Resolver resolves viewable URLs to direct media URLs.
	Resolver Resolver
	// Verifier, when set, is used to HEAD-check resolved URLs on request.
	Verifier URLVerifier

	log *zap.SugaredLogger
}

// NewExporter creates an export orchestrator around the given resolver.
func NewExporter(r Resolver, log *zap.SugaredLogger) *Exporter {
	return &Exporter{Resolver: r, log: log}
}

// ExportCourse resolves the course's video records in ascending index order
// and writes the manifest to csvPath. The manifest is written even when zero
// rows resolve; only an interrupt or a write failure aborts.
func (e *Exporter) ExportCourse(ctx context.Context, data *CourseData, csvPath string, verify bool) (*ExportReport, error) {
	report := &ExportReport{RunID: uuid.NewString()}
	log := e.log.With("run_id", report.RunID, "course", data.Slug)

	var rows []ExportRow
	for _, ref := range data.VideoRecords() {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		lesson := LessonFromRecord(data.Slug, ref.Key, ref.Record)
		rows = e.appendRow(ctx, log, report, rows, lesson, verify)
	}

	if err := writeManifest(csvPath, rows); err != nil {
		return report, err
	}
	log.Infow("manifest written", "path", csvPath, "exported", report.Exported, "processed", report.Processed)
	return report, nil
}

// ExportSpecialization flattens the specialization's courses in series order,
// each course's video records sorted by index, and writes a single manifest.
func (e *Exporter) ExportSpecialization(ctx context.Context, data *SpecializationData, csvPath string, verify bool) (*ExportReport, error) {
	report := &ExportReport{RunID: uuid.NewString()}
	log := e.log.With("run_id", report.RunID, "specialization", data.Slug)

	var rows []ExportRow
	for _, c := range data.Courses {
		for _, ref := range c.VideoRecords() {
			if err := ctx.Err(); err != nil {
				return report, err
			}
			lesson := SpecializationLesson(data.Slug, ref.Key, ref.Record)
			rows = e.appendRow(ctx, log.With("member_course", c.Slug), report, rows, lesson, verify)
		}
	}

	if err := writeManifest(csvPath, rows); err != nil {
		return report, err
	}
	log.Infow("manifest written", "path", csvPath, "exported", report.Exported, "processed", report.Processed)
	return report, nil
}

// appendRow resolves one lesson and appends its manifest row. Resolution
// failure skips the row; verification failure only warns.
func (e *Exporter) appendRow(ctx context.Context, log *zap.SugaredLogger, report *ExportReport, rows []ExportRow, lesson Lesson, verify bool) []ExportRow {
	report.Processed++
	title := fmt.Sprintf("%02d - %s", lesson.Index, lesson.Title)

	direct, err := e.Resolver.Resolve(ctx, lesson.URL)
	if err != nil {
		log.Errorw("lesson skipped", "title", title, "error", err)
		return rows
	}

	if verify && e.Verifier != nil {
		if err := e.Verifier.Head(ctx, direct); err != nil {
			log.Warnw("url verification failed", "title", title, "error", err)
		}
	}

	report.Exported++
	log.Infow("lesson resolved", "title", title)
	return append(rows, ExportRow{URL: direct, Title: title})
}

// writeManifest writes the CSV manifest with its url,title,path header. The
// header is written even for zero rows. The path column is the process
// working directory at write time, one value for the whole manifest.
func writeManifest(path string, rows []ExportRow) error {
	execPath, err := os.Getwd()
	if err != nil {
		execPath = ""
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create manifest: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"url", "title", "path"}); err != nil {
		return fmt.Errorf("write manifest header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write([]string{row.URL, row.Title, execPath}); err != nil {
			return fmt.Errorf("write manifest row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush manifest: %w", err)
	}
	return nil
}
