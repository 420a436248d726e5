package course

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DownloadOptions are the knobs forwarded to the external download tool.
// Parallelism here is the tool's own fragment-fetching concurrency; the
// orchestration loop itself is strictly sequential.
type DownloadOptions struct {
	// Threads is the parallel fragment count passed to the tool.
	Threads int
	// Quality is the format-preference sort expression passed to the tool.
	Quality string
}

// MediaDownloader downloads one lesson into a directory and reports the
// tool's process exit code, the sole success signal. Implemented by
// media.Tool; tests substitute fakes.
type MediaDownloader interface {
	Download(ctx context.Context, lesson Lesson, dir string, opts DownloadOptions) (int, error)
}

// DownloadReport summarizes one download run.
type DownloadReport struct {
	// RunID identifies the run in logs.
	RunID string
	// Total is the number of lessons attempted.
	Total int
	// Failures is the number of lessons whose download did not succeed.
	Failures int
	// Failed lists the lessons that did not succeed, in outline order.
	Failed []Lesson
}

// DownloadManager drives the external download tool across a course outline,
// one lesson at a time. A failing lesson never blocks the rest of the run;
// an interrupt aborts the whole run immediately.
type DownloadManager struct {
	tool MediaDownloader
	log  *zap.SugaredLogger
}

// NewDownloadManager creates a download orchestrator around the given tool.
func NewDownloadManager(tool MediaDownloader, log *zap.SugaredLogger) *DownloadManager {
	return &DownloadManager{tool: tool, log: log}
}

// Run downloads every lesson of the course into dir, in outline order.
//
// A non-zero tool exit code or a tool invocation error counts as one failure
// and the loop continues. Context cancellation (user interrupt) aborts
// immediately without counting the remaining lessons as failures; the
// cancellation cause is returned. After a completed loop, Run returns an
// error iff at least one lesson failed.
func (m *DownloadManager) Run(ctx context.Context, c *Course, dir string, opts DownloadOptions) (*DownloadReport, error) {
	report := &DownloadReport{RunID: uuid.NewString()}
	log := m.log.With("run_id", report.RunID, "course", c.Slug, "dir", dir)
	log.Infow("download run started", "lessons", len(c.Lessons))

	for _, lesson := range c.Lessons {
		if err := ctx.Err(); err != nil {
			log.Warnw("download run interrupted", "completed", report.Total)
			return report, err
		}

		report.Total++
		log.Infow("downloading lesson", "index", lesson.Index, "title", lesson.Title, "url", lesson.URL)

		code, err := m.tool.Download(ctx, lesson, dir, opts)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				log.Warnw("download run interrupted", "index", lesson.Index)
				return report, context.Canceled
			}
			report.Failures++
			report.Failed = append(report.Failed, lesson)
			log.Errorw("lesson download failed", "index", lesson.Index, "title", lesson.Title, "error", err)
			continue
		}
		if code != 0 {
			report.Failures++
			report.Failed = append(report.Failed, lesson)
			log.Errorw("lesson download failed", "index", lesson.Index, "title", lesson.Title, "exit_code", code)
		}
	}

	if report.Failures > 0 {
		log.Errorw("download run finished with failures", "failures", report.Failures, "total", report.Total)
		return report, fmt.Errorf("%d of %d lessons failed to download", report.Failures, report.Total)
	}
	log.Infow("download run finished", "total", report.Total)
	return report, nil
}
