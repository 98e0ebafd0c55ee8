// Package jobpost fetches a job posting page and reduces it to the plain-text job
// description used for ATS analysis.
package jobpost

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/sirupsen/logrus"
)

// DefaultTimeout bounds one page fetch.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is sent with every request.
const DefaultUserAgent = "Mozilla/5.0 (compatible; ResumeBuilder/1.0)"

// MinContentLength is the shortest extracted text accepted without a browser retry.
// Shorter text usually means the page renders its content with JavaScript.
const MinContentLength = 500

// ErrNoContent is returned when a page yields no description text.
var ErrNoContent = errors.New("no job description text found on page")

// Error describes a failed fetch.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Posting is an extracted job description.
type Posting struct {
	URL      string
	Platform Platform
	Text     string
	Rendered bool // text came from a headless browser render
}

// Options configures a Fetcher.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	// Browser enables the headless browser retry for pages with too little static text.
	Browser    bool
	ChromePath string
}

// pageRenderer returns the HTML of url after scripts have run.
type pageRenderer func(ctx context.Context, url string) (string, error)

// Fetcher downloads job postings.
type Fetcher struct {
	http    *resty.Client
	browser bool
	render  pageRenderer
	log     *logrus.Entry
}

// NewFetcher creates a Fetcher. A nil opts uses the defaults without browser rendering.
func NewFetcher(opts *Options) *Fetcher {
	if opts == nil {
		opts = &Options{}
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ua := opts.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	return &Fetcher{
		http: resty.New().
			SetTimeout(timeout).
			SetHeader("User-Agent", ua).
			SetHeader("Accept", "text/html,application/xhtml+xml"),
		browser: opts.Browser,
		render:  chromeRenderer(opts.ChromePath, timeout),
		log:     observability.Logger().WithField("component", "jobpost"),
	}
}

// Fetch downloads rawURL and extracts its job description.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Posting, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, &Error{URL: rawURL, Message: "invalid URL", Cause: err}
	}

	resp, err := f.http.R().SetContext(ctx).Get(rawURL)
	if err != nil {
		return nil, &Error{URL: rawURL, Message: "HTTP request failed", Cause: err}
	}
	if resp.StatusCode() != 200 {
		return nil, &Error{URL: rawURL, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode())}
	}

	platform := DetectPlatform(rawURL)
	fields := logrus.Fields{"url": rawURL, "platform": platform, "bytes": len(resp.Body())}

	text, err := ExtractText(resp.String(), platform)
	if err != nil {
		return nil, &Error{URL: rawURL, Message: "content extraction failed", Cause: err}
	}
	posting := &Posting{URL: rawURL, Platform: platform, Text: text}

	if f.browser && len(strings.TrimSpace(text)) < MinContentLength {
		f.log.WithFields(fields).WithField("chars", len(text)).Debug("static page too short, rendering in browser")
		html, err := f.render(ctx, rawURL)
		if err != nil {
			return nil, &Error{URL: rawURL, Message: "browser rendering failed", Cause: err}
		}
		rendered, err := ExtractText(html, platform)
		if err != nil {
			return nil, &Error{URL: rawURL, Message: "content extraction failed", Cause: err}
		}
		if len(rendered) > len(text) {
			posting.Text = rendered
			posting.Rendered = true
		}
	}

	if strings.TrimSpace(posting.Text) == "" {
		return nil, &Error{URL: rawURL, Message: "empty page", Cause: ErrNoContent}
	}
	f.log.WithFields(fields).WithField("chars", len(posting.Text)).Debug("job posting fetched")
	return posting, nil
}
