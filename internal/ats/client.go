// Package ats sends resume content to the ATS scoring endpoint and caches the last result.
package ats

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/storage"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

// DefaultEndpoint is the scoring service base URL used when none is configured.
const DefaultEndpoint = "http://localhost:5000"

// DefaultTimeout bounds a single analysis request.
const DefaultTimeout = 2 * time.Minute

// Upload is a resume file chosen by the user.
type Upload struct {
	Name string
	Data []byte
}

// Request is one analysis. File takes precedence over Resume when both are set.
type Request struct {
	Resume         *types.ResumeData
	File           *Upload
	JobDescription string
}

// Analyzer runs one analysis.
type Analyzer interface {
	Analyze(ctx context.Context, req Request) (*types.AnalysisResult, error)
}

// Client talks to the scoring endpoint and writes successful results through to storage.
type Client struct {
	http  *resty.Client
	store storage.Store
	log   *logrus.Entry
}

// NewClient creates a Client for the endpoint at baseURL.
func NewClient(baseURL string, store storage.Store) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultEndpoint
	}
	return &Client{
		http: resty.New().
			SetBaseURL(strings.TrimRight(baseURL, "/")).
			SetTimeout(DefaultTimeout),
		store: store,
		log:   observability.Logger().WithField("component", "ats"),
	}
}

// Analyze sends the request to /analyze (file) or /analyze-json (structured content).
// Nothing is cached unless the call succeeds.
func (c *Client) Analyze(ctx context.Context, req Request) (*types.AnalysisResult, error) {
	if strings.TrimSpace(req.JobDescription) == "" {
		return nil, ErrMissingJobDescription
	}
	if req.File == nil && req.Resume == nil {
		return nil, ErrMissingResume
	}

	r := c.http.R().SetContext(ctx)
	var (
		resp *resty.Response
		err  error
		path string
	)
	if req.File != nil {
		path = "/analyze"
		resp, err = r.
			SetFileReader("resume", req.File.Name, bytes.NewReader(req.File.Data)).
			SetFormData(map[string]string{"job_description": req.JobDescription}).
			Post(path)
	} else {
		path = "/analyze-json"
		resp, err = r.
			SetHeader("Content-Type", "application/json").
			SetBody(types.AnalyzeJSONRequest{Resume: req.Resume, JobDescription: req.JobDescription}).
			Post(path)
	}

	fields := logrus.Fields{"path": path}
	if err != nil {
		aerr := &AnalysisError{Cause: err}
		c.log.WithFields(fields).Warn(aerr.Detail())
		return nil, aerr
	}
	fields["status"] = resp.StatusCode()

	if resp.IsError() {
		aerr := &AnalysisError{StatusCode: resp.StatusCode(), Cause: errors.New(gjson.Get(resp.String(), "error").String())}
		c.log.WithFields(fields).Warn(aerr.Detail())
		return nil, aerr
	}

	result, err := ParseResult(resp.String())
	if err != nil {
		aerr := &AnalysisError{StatusCode: resp.StatusCode(), Cause: err}
		c.log.WithFields(fields).Warn(aerr.Detail())
		return nil, aerr
	}

	if err := SaveCached(ctx, c.store, result); err != nil {
		c.log.WithFields(fields).WithError(err).Warn("analysis result not cached")
	}
	c.log.WithFields(fields).WithField("score", result.Score).Debug("analysis complete")
	return result, nil
}

// ParseResult decodes a scoring response. score is required; missing lists default to empty.
func ParseResult(body string) (*types.AnalysisResult, error) {
	if !gjson.Valid(body) {
		return nil, fmt.Errorf("response is not valid JSON")
	}
	score := gjson.Get(body, "score")
	if !score.Exists() {
		return nil, fmt.Errorf("response has no score")
	}
	if score.Type != gjson.Number {
		return nil, fmt.Errorf("score is not a number: %s", score.Raw)
	}
	return &types.AnalysisResult{
		Score:    score.Float(),
		Feedback: stringList(gjson.Get(body, "feedback")),
		Keywords: stringList(gjson.Get(body, "keywords")),
	}, nil
}

func stringList(v gjson.Result) []string {
	out := []string{}
	if !v.IsArray() {
		return out
	}
	for _, item := range v.Array() {
		out = append(out, item.String())
	}
	return out
}

// Rating returns the qualitative label shown next to a score.
func Rating(score float64) string {
	switch {
	case score >= 90:
		return "Excellent! Your resume is highly ATS-compatible."
	case score >= 80:
		return "Good job! Your resume has good ATS compatibility."
	default:
		return "Your resume needs some improvements for better ATS compatibility."
	}
}
