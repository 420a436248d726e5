package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"go.uber.org/zap"

	"dlaidl/config"
	"dlaidl/course"
	dlhttp "dlaidl/http"
	"dlaidl/internal/logger"
	"dlaidl/media"
)

// exitInterrupted is the distinct exit code for a user interrupt.
const exitInterrupted = 130

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "download":
		cmdDownload(args)
	case "export":
		cmdExport(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `dlaidl - course video downloader and manifest exporter for learn.deeplearning.ai

Usage:
  dlaidl download [flags] <course-url>  Download all video lessons of a course
  dlaidl export [flags] <course-url>    Export a CSV manifest of direct media URLs
  dlaidl help                           Show this help message

Examples:
  dlaidl download https://learn.deeplearning.ai/courses/my-course/lesson/abc/intro
  dlaidl download --out ~/courses --threads 4 <url>
  dlaidl download --dry-run <url>                 # Only list the resolved outline
  dlaidl export <url>                             # Write videos.csv
  dlaidl export --out manifest.csv --verify <url>

Both commands also accept /specializations/<slug> URLs.

For help on a specific command: dlaidl <command> -h
`)
}

func cmdDownload(args []string) {
	fs := flag.NewFlagSet("download", flag.ExitOnError)
	outDir := fs.String("out", "", "Output directory (default: course title under the current directory)")
	threads := fs.Int("threads", 0, "Parallel fragment count passed to yt-dlp (default from config)")
	quality := fs.String("quality", "", "Format sort expression passed to yt-dlp -S (default from config)")
	dryRun := fs.Bool("dry-run", false, "Only resolve and list the outline, do not download")
	verbose := fs.Bool("verbose", false, "Enable debug logging")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: dlaidl download [flags] <course-url>\n\nFlags:\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	argv := fs.Args()
	if len(argv) == 0 {
		fmt.Fprintf(os.Stderr, "Error: missing course-url\n")
		fs.Usage()
		os.Exit(1)
	}
	rawURL := argv[0]

	cfg, log, api, tool := setup(*verbose)
	if *threads > 0 {
		cfg.Threads = *threads
	}
	if *quality != "" {
		cfg.Quality = *quality
	}
	opts := course.DownloadOptions{Threads: cfg.Threads, Quality: cfg.Quality}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	kind, base, slug, err := course.ParseURL(rawURL)
	if err != nil {
		fatal(log, "invalid course url", err)
	}
	fmt.Fprintf(os.Stderr, "Resolving outline for %s...\n", base)

	mgr := course.NewDownloadManager(tool, log)

	switch kind {
	case course.KindCourse:
		data, err := api.FetchCourse(ctx, slug)
		if err != nil {
			fatal(log, "fetch course", err)
		}
		outline, err := course.BuildOutline(data)
		if err != nil {
			fatal(log, "resolve outline", err)
		}
		printOutline(outline)
		if *dryRun {
			return
		}

		dir := *outDir
		if dir == "" {
			dir = media.SanitizeFilename(outline.Title)
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			fatal(log, "create output directory", err)
		}

		report, err := mgr.Run(ctx, outline, dir, opts)
		if interrupted(ctx, err) {
			exit(log, exitInterrupted)
		}
		finishDownload(log, report, err)

	case course.KindSpecialization:
		data, err := api.FetchSpecialization(ctx, slug)
		if err != nil {
			fatal(log, "fetch specialization", err)
		}

		root := *outDir
		if root == "" {
			root = media.SanitizeFilename(data.Title)
		}

		total := &course.DownloadReport{}
		for i, cd := range data.Courses {
			outline, err := course.BuildOutline(&cd)
			if err != nil {
				if errors.Is(err, course.ErrEmptyOutline) {
					log.Warnw("skipping course without video lessons", "course", cd.Slug)
					continue
				}
				fatal(log, "resolve outline", err)
			}
			printOutline(outline)
			if *dryRun {
				continue
			}

			dir := filepath.Join(root, fmt.Sprintf("%02d - %s", i+1, media.SanitizeFilename(outline.Title)))
			if err := os.MkdirAll(dir, 0755); err != nil {
				fatal(log, "create output directory", err)
			}

			report, err := mgr.Run(ctx, outline, dir, opts)
			total.Total += report.Total
			total.Failures += report.Failures
			total.Failed = append(total.Failed, report.Failed...)
			if interrupted(ctx, err) {
				exit(log, exitInterrupted)
			}
		}
		if *dryRun {
			return
		}
		var runErr error
		if total.Failures > 0 {
			runErr = fmt.Errorf("%d of %d lessons failed to download", total.Failures, total.Total)
		}
		finishDownload(log, total, runErr)
	}
}

func cmdExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	outPath := fs.String("out", "videos.csv", "Output CSV path")
	verify := fs.Bool("verify", false, "Verify each resolved URL with a HEAD request")
	verbose := fs.Bool("verbose", false, "Enable debug logging")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: dlaidl export [flags] <course-url>\n\nFlags:\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	argv := fs.Args()
	if len(argv) == 0 {
		fmt.Fprintf(os.Stderr, "Error: missing course-url\n")
		fs.Usage()
		os.Exit(1)
	}
	rawURL := argv[0]

	_, log, api, tool := setup(*verbose)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	kind, _, slug, err := course.ParseURL(rawURL)
	if err != nil {
		fatal(log, "invalid course url", err)
	}

	exporter := course.NewExporter(tool, log)
	if *verify {
		exporter.Verifier = api.HTTP
	}

	var report *course.ExportReport
	switch kind {
	case course.KindCourse:
		data, ferr := api.FetchCourse(ctx, slug)
		if ferr != nil {
			fatal(log, "fetch course", ferr)
		}
		report, err = exporter.ExportCourse(ctx, data, *outPath, *verify)
	case course.KindSpecialization:
		data, ferr := api.FetchSpecialization(ctx, slug)
		if ferr != nil {
			fatal(log, "fetch specialization", ferr)
		}
		report, err = exporter.ExportSpecialization(ctx, data, *outPath, *verify)
	}

	if interrupted(ctx, err) {
		exit(log, exitInterrupted)
	}
	if err != nil {
		fatal(log, "export manifest", err)
	}
	fmt.Fprintf(os.Stderr, "Exported %d/%d lessons to %s\n", report.Exported, report.Processed, *outPath)
}

// setup loads config and builds the shared collaborators.
func setup(verbose bool) (*config.Config, *zap.SugaredLogger, *course.Client, *media.Tool) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}

	hc := dlhttp.New(&dlhttp.Config{
		Timeout:   cfg.RequestTimeout,
		Profile:   dlhttp.ChromeProfile(),
		Transport: dlhttp.DefaultTransportConfig(),
	})

	tool := media.NewTool()
	tool.Path = cfg.YtdlpPath
	tool.CookieBrowser = cfg.CookieBrowser
	tool.ResolveTimeout = cfg.ResolveTimeout

	return cfg, log, course.NewClient(hc), tool
}

func printOutline(c *course.Course) {
	fmt.Printf("[course] %s (%d video lessons)\n", c.Title, len(c.Lessons))
	for _, l := range c.Lessons {
		fmt.Printf(" - %02d. %s -> %s\n", l.Index, l.Title, l.URL)
	}
}

func finishDownload(log *zap.SugaredLogger, report *course.DownloadReport, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "\nFinished with %d failed lessons out of %d. Retry, or check login state and network.\n",
			report.Failures, report.Total)
		exit(log, 1)
	}
	fmt.Fprintf(os.Stderr, "\nAll %d lessons downloaded.\n", report.Total)
}

// interrupted reports whether err is the user-interrupt abort.
func interrupted(ctx context.Context, err error) bool {
	return err != nil && (errors.Is(err, context.Canceled) || ctx.Err() != nil)
}

func fatal(log *zap.SugaredLogger, msg string, err error) {
	log.Errorw(msg, "error", err)
	exit(log, 1)
}

func exit(log *zap.SugaredLogger, code int) {
	_ = log.Sync()
	os.Exit(code)
}
