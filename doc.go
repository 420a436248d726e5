// Package dlaidl resolves courses on learn.deeplearning.ai into ordered
// video outlines and drives yt-dlp to download them or to export a CSV
// manifest of direct media URLs.
//
// Overview
//
// dlaidl provides high-level convenience functions for the most common
// operations:
//
//   - FetchOutline: Resolve a course URL into its ordered video outline
//   - FetchSpecialization: Resolve a specialization URL into its course series
//
// Quick Start
//
// Resolve a course outline:
//
//	ctx := context.Background()
//	outline, err := dlaidl.FetchOutline(ctx, "https://learn.deeplearning.ai/courses/my-course")
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, l := range outline.Lessons {
//		fmt.Printf("%02d. %s\n", l.Index, l.Title)
//	}
//
// Configuration
//
// dlaidl uses a configuration system that loads settings from multiple
// sources:
//
//   1. Environment variables (highest priority)
//   2. Config file (dlaidl.json or ~/.config/dlaidl/dlaidl.json)
//   3. Default values (lowest priority)
//
// Environment variables:
//
//   - DLAIDL_YTDLP_PATH: Path to the yt-dlp executable
//   - DLAIDL_COOKIE_BROWSER: Browser profile yt-dlp sources cookies from
//   - DLAIDL_REQUEST_TIMEOUT: Timeout for metadata API requests
//   - DLAIDL_RESOLVE_TIMEOUT: Timeout for a single media URL resolution
//   - DLAIDL_THREADS: Parallel fragment count passed to yt-dlp
//   - DLAIDL_QUALITY: Format sort expression passed to yt-dlp -S
//
// Error Handling
//
// All operations return errors that implement standard Go error handling:
//
//	if errors.Is(err, dlaidl.ErrEmptyOutline) {
//		fmt.Println("Course has no video lessons")
//	}
//
//	var outlineErr *dlaidl.OutlineError
//	if errors.As(err, &outlineErr) {
//		fmt.Printf("Fetching %s failed: %v\n", outlineErr.Slug, outlineErr.Err)
//	}
//
// Advanced Usage
//
// For more control, use the sub-packages directly:
//
//   - course: URL parsing, outline resolution, download and export orchestration
//   - media: yt-dlp subprocess invocation
//   - config: Configuration management
//   - http: Metadata API HTTP client
//
// Dependencies
//
// dlaidl requires yt-dlp to be installed and available in PATH or specified
// via DLAIDL_YTDLP_PATH. Lesson media access reuses a logged-in browser
// session via yt-dlp's --cookies-from-browser.
//
// Install yt-dlp: https://github.com/yt-dlp/yt-dlp
//
package dlaidl
