package http

import "net/http"

// Profile is a browser-identifying header set applied to every request. The
// platform's metadata API is public but serves JSON only to clients that
// look like a browser session.
type Profile struct {
	// UserAgent identifies the browser.
	UserAgent string

	// Accept is the Accept header value.
	Accept string

	// AcceptLanguage is the Accept-Language header value.
	AcceptLanguage string

	// Referer to use in requests.
	Referer string

	// Extra are additional headers to include in all requests.
	Extra map[string]string
}

// chromeUserAgent matches a current desktop Chrome build.
const chromeUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) " +
	"Chrome/127.0.0.0 Safari/537.36"

// ChromeProfile returns the default desktop-Chrome header profile used for
// the course platform.
func ChromeProfile() Profile {
	return Profile{
		UserAgent:      chromeUserAgent,
		Accept:         "application/json,text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
		AcceptLanguage: "en-US,en;q=0.9",
		Referer:        "https://learn.deeplearning.ai/",
	}
}

// apply sets the profile's headers on h, without overriding headers that are
// already present.
func (p Profile) apply(h http.Header) {
	set := func(key, value string) {
		if value != "" && h.Get(key) == "" {
			h.Set(key, value)
		}
	}
	set("User-Agent", p.UserAgent)
	set("Accept", p.Accept)
	set("Accept-Language", p.AcceptLanguage)
	set("Referer", p.Referer)
	for k, v := range p.Extra {
		set(k, v)
	}
}
