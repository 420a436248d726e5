package course

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	dlhttp "dlaidl/http"
)

// Client fetches course metadata from the platform's tRPC API. The metadata
// endpoints are publicly reachable; no session is required.
type Client struct {
	// BaseURL is the platform origin. Overridable for tests.
	BaseURL string
	// HTTP performs the underlying requests with a browser header profile.
	HTTP *dlhttp.Client
}

// NewClient creates a metadata API client on top of the given HTTP client.
func NewClient(hc *dlhttp.Client) *Client {
	return &Client{
		BaseURL: "https://" + Host,
		HTTP:    hc,
	}
}

// OutlineError is the single "outline fetch failed" condition reported for
// both transport failures and malformed responses. The underlying cause is
// preserved for errors.Is / errors.As. Outline fetches are never retried.
type OutlineError struct {
	Slug string
	Err  error
}

func (e *OutlineError) Error() string {
	return fmt.Sprintf("outline fetch failed for %q: %v", e.Slug, e.Err)
}

func (e *OutlineError) Unwrap() error { return e.Err }

// trpcEnvelope is the fixed response envelope of the tRPC endpoints.
type trpcEnvelope struct {
	Result struct {
		Data struct {
			JSON json.RawMessage `json:"json"`
		} `json:"data"`
	} `json:"result"`
}

type coursePayload struct {
	Name    string            `json:"name"`
	Lessons map[string]Record `json:"lessons"`
	Listing []listingBlock    `json:"listing"`
}

type listingBlock struct {
	Content []listingItem `json:"content"`
}

type listingItem struct {
	Type string `json:"type"`
	Key  string `json:"key"`
}

type specializationPayload struct {
	Name    string `json:"name"`
	Courses []struct {
		Name    string            `json:"name"`
		Slug    string            `json:"slug"`
		Lessons map[string]Record `json:"lessons"`
	} `json:"courses"`
}

// FetchCourse retrieves a course's raw metadata: display title, the lesson
// record mapping, and the listing-derived ordering hint.
func (c *Client) FetchCourse(ctx context.Context, slug string) (*CourseData, error) {
	var payload coursePayload
	if err := c.call(ctx, "course.getCourseBySlug", map[string]string{"courseSlug": slug}, &payload); err != nil {
		return nil, &OutlineError{Slug: slug, Err: err}
	}

	title := payload.Name
	if title == "" {
		title = slug
	}
	return &CourseData{
		Slug:     slug,
		Title:    title,
		Lessons:  payload.Lessons,
		Ordering: orderedKeys(payload.Listing),
	}, nil
}

// FetchSpecialization retrieves a specialization's raw metadata: its display
// title and the ordered series of member courses.
func (c *Client) FetchSpecialization(ctx context.Context, slug string) (*SpecializationData, error) {
	var payload specializationPayload
	if err := c.call(ctx, "course.getSpecialization", map[string]string{"specializationSlug": slug}, &payload); err != nil {
		return nil, &OutlineError{Slug: slug, Err: err}
	}

	title := payload.Name
	if title == "" {
		title = slug
	}
	data := &SpecializationData{Slug: slug, Title: title}
	for _, raw := range payload.Courses {
		data.Courses = append(data.Courses, CourseData{
			Slug:    raw.Slug,
			Title:   raw.Name,
			Lessons: raw.Lessons,
		})
	}
	return data, nil
}

// call issues one GET against a tRPC procedure. The input is a JSON object
// {"json": params}, URL-encoded into the "input" query parameter.
func (c *Client) call(ctx context.Context, procedure string, params map[string]string, out any) error {
	input, err := json.Marshal(map[string]any{"json": params})
	if err != nil {
		return fmt.Errorf("encode api input: %w", err)
	}

	endpoint := fmt.Sprintf("%s/api/trpc/%s?input=%s", c.BaseURL, procedure, url.QueryEscape(string(input)))
	resp, err := c.HTTP.Get(ctx, endpoint)
	if err != nil {
		return err
	}

	var envelope trpcEnvelope
	if err := json.Unmarshal(resp.Body, &envelope); err != nil {
		return fmt.Errorf("decode api response: %w", err)
	}
	if len(envelope.Result.Data.JSON) == 0 {
		// Shape is fixed; an empty result.data.json means the envelope
		// changed underneath us.
		return fmt.Errorf("decode api response: missing result.data.json")
	}
	if err := json.Unmarshal(envelope.Result.Data.JSON, out); err != nil {
		return fmt.Errorf("decode api payload: %w", err)
	}
	return nil
}

// orderedKeys flattens the listing blocks into the authoritative lesson key
// order, keeping only lesson entries that carry a key and preserving their
// relative sequence.
func orderedKeys(listing []listingBlock) []string {
	var keys []string
	for _, block := range listing {
		for _, item := range block.Content {
			if item.Type == "lesson" && item.Key != "" {
				keys = append(keys, item.Key)
			}
		}
	}
	return keys
}
