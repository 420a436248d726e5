package dlaidl

import (
	"dlaidl/course"
	dlhttp "dlaidl/http"
	"dlaidl/media"
)

// Error handling types exported for library users.
//
// All error types support the standard error handling patterns:
//
// Using errors.Is() for sentinel errors:
//
//	if errors.Is(err, dlaidl.ErrInvalidHost) {
//		fmt.Println("Not a platform URL")
//	}
//
// Using errors.As() for wrapped errors:
//
//	var resolveErr *dlaidl.ResolveError
//	if errors.As(err, &resolveErr) {
//		fmt.Printf("Resolution failed for %s: %v\n", resolveErr.URL, resolveErr.Err)
//	}

// Type aliases for convenient error handling.
type (
	// OutlineError wraps transport and malformed-response failures while
	// fetching a course outline.
	OutlineError = course.OutlineError
	// ResolveError wraps failures resolving a lesson to a direct media URL.
	ResolveError = media.ResolveError
	// HTTPError wraps non-2xx responses from the metadata API.
	HTTPError = dlhttp.HTTPError
)

// Sentinel errors exported from sub-packages.
var (
	// ErrInvalidHost indicates the input URL does not belong to the platform.
	ErrInvalidHost = course.ErrInvalidHost
	// ErrInvalidPath indicates the URL path is not a recognized course path.
	ErrInvalidPath = course.ErrInvalidPath
	// ErrEmptyOutline indicates a course resolved to no video lessons.
	ErrEmptyOutline = course.ErrEmptyOutline
)
