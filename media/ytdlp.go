// Package media wraps the external yt-dlp tool as an injected capability:
// resolving a viewable lesson URL to a direct media URL, and downloading a
// lesson into a directory. The tool's stdout (resolve mode) and process exit
// code (download mode) are the entire contract surface.
package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"dlaidl/course"
)

const (
	defaultPath           = "yt-dlp"
	defaultCookieBrowser  = "chrome"
	defaultResolveTimeout = 60 * time.Second

	// resolveFormat prefers best combined video+audio when resolving.
	resolveFormat = "bv*+ba/b"
	// archiveName is the per-directory skip-if-already-downloaded state file,
	// owned entirely by the tool.
	archiveName = ".downloaded.txt"
	mergeFormat = "mp4"
)

// Tool invokes yt-dlp as a subprocess. The zero value is not usable; create
// instances with NewTool.
type Tool struct {
	// Path is the path to the yt-dlp executable.
	Path string
	// CookieBrowser is the browser profile yt-dlp sources cookies from.
	CookieBrowser string
	// ResolveTimeout bounds a single resolve invocation. Downloads are
	// unbounded and rely on user interrupt.
	ResolveTimeout time.Duration
	// Stdout and Stderr receive the tool's output during downloads so its
	// progress stays visible. They default to the process's own streams.
	Stdout io.Writer
	Stderr io.Writer
}

// NewTool creates a Tool with default settings.
func NewTool() *Tool {
	return &Tool{
		Path:           defaultPath,
		CookieBrowser:  defaultCookieBrowser,
		ResolveTimeout: defaultResolveTimeout,
	}
}

var (
	_ course.Resolver        = (*Tool)(nil)
	_ course.MediaDownloader = (*Tool)(nil)
)

// ResolveError indicates the tool failed to produce a direct media URL for
// one lesson. It is recovered at the per-lesson level; export runs skip the
// lesson and continue.
type ResolveError struct {
	URL    string
	Stderr string
	Err    error
}

func (e *ResolveError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("resolve %s: %v: %s", e.URL, e.Err, e.Stderr)
	}
	return fmt.Sprintf("resolve %s: %v", e.URL, e.Err)
}

func (e *ResolveError) Unwrap() error { return e.Err }

// Resolve invokes the tool in resolve-only mode and returns the first
// non-blank stdout line as the direct media URL. The invocation is bounded
// by ResolveTimeout and never retried here.
func (t *Tool) Resolve(ctx context.Context, viewURL string) (string, error) {
	timeout := t.ResolveTimeout
	if timeout <= 0 {
		timeout = defaultResolveTimeout
	}
	cmdCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(cmdCtx, t.path(), t.resolveArgs(viewURL)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if cmdCtx.Err() == context.DeadlineExceeded {
			return "", &ResolveError{URL: viewURL, Err: context.DeadlineExceeded}
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = "unknown tool error"
		}
		return "", &ResolveError{URL: viewURL, Stderr: msg, Err: err}
	}

	if url := firstNonBlankLine(stdout.String()); url != "" {
		return url, nil
	}
	return "", &ResolveError{URL: viewURL, Err: errors.New("tool returned no media url")}
}

// Download invokes the tool against the lesson's canonical URL with archive,
// resume and merge flags, and returns the tool's process exit code. The
// returned error is non-nil only when the process could not run or the
// context was canceled.
func (t *Tool) Download(ctx context.Context, lesson course.Lesson, dir string, opts course.DownloadOptions) (int, error) {
	cmd := exec.CommandContext(ctx, t.path(), t.downloadArgs(lesson, dir, opts)...)
	cmd.Stdout = t.stdout()
	cmd.Stderr = t.stderr()

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	if ctx.Err() != nil {
		return -1, ctx.Err()
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return -1, fmt.Errorf("run %s: %w", t.path(), err)
}

// resolveArgs builds the resolve-only invocation.
func (t *Tool) resolveArgs(viewURL string) []string {
	return []string{
		"--cookies-from-browser", t.cookieBrowser(),
		"-g",
		"-f", resolveFormat,
		viewURL,
	}
}

// downloadArgs builds the full download invocation. The output file is named
// "NN - title.ext" with the title sanitized for common filesystems.
func (t *Tool) downloadArgs(lesson course.Lesson, dir string, opts course.DownloadOptions) []string {
	template := filepath.Join(dir, fmt.Sprintf("%02d - %s.%%(ext)s", lesson.Index, SanitizeFilename(lesson.Title)))
	return []string{
		"--cookies-from-browser", t.cookieBrowser(),
		"--download-archive", filepath.Join(dir, archiveName),
		"--no-overwrites",
		"--continue",
		"-N", strconv.Itoa(opts.Threads),
		"-S", opts.Quality,
		"--add-metadata",
		"--merge-output-format", mergeFormat,
		"-o", template,
		lesson.URL,
	}
}

func (t *Tool) path() string {
	if t.Path != "" {
		return t.Path
	}
	return defaultPath
}

func (t *Tool) cookieBrowser() string {
	if t.CookieBrowser != "" {
		return t.CookieBrowser
	}
	return defaultCookieBrowser
}

func (t *Tool) stdout() io.Writer {
	if t.Stdout != nil {
		return t.Stdout
	}
	return os.Stdout
}

func (t *Tool) stderr() io.Writer {
	if t.Stderr != nil {
		return t.Stderr
	}
	return os.Stderr
}

var (
	illegalFilenameRe = regexp.MustCompile(`[\\/:*?"<>|]`)
	whitespaceRe      = regexp.MustCompile(`\s+`)
)

// SanitizeFilename replaces characters illegal across common filesystems
// with spaces and collapses consecutive whitespace.
func SanitizeFilename(name string) string {
	name = illegalFilenameRe.ReplaceAllString(name, " ")
	name = whitespaceRe.ReplaceAllString(name, " ")
	return strings.TrimSpace(name)
}

// firstNonBlankLine returns the first non-blank line of s, trimmed.
func firstNonBlankLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
