package server

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jonathan/resume-builder/internal/scoring"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeScorer returns a fixed result and records its input.
type fakeScorer struct {
	result *types.AnalysisResult
	err    error
	text   string
	jd     string
}

func (f *fakeScorer) Score(_ context.Context, resumeText, jobDescription string) (*types.AnalysisResult, error) {
	f.text, f.jd = resumeText, jobDescription
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func multipartRequest(t *testing.T, filename string, content []byte, jd string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if filename != "" {
		part, err := mw.CreateFormFile("resume", filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.WriteField("job_description", jd))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/analyze", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestScoring_AnalyzeFile_Rejections(t *testing.T) {
	handler := NewScoring(&fakeScorer{result: &types.AnalysisResult{Score: 1}})

	tests := []struct {
		name     string
		filename string
		jd       string
		status   int
		want     string
	}{
		{"no file", "", "Go engineer", http.StatusBadRequest, MsgNoResumeFile},
		{"no job description", "cv.pdf", "  ", http.StatusBadRequest, MsgNoJobDescription},
		{"legacy doc", "cv.DOC", "Go engineer", http.StatusBadRequest, scoring.DocFormatMessage},
		{"unsupported", "cv.txt", "Go engineer", http.StatusBadRequest, scoring.UnsupportedMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, multipartRequest(t, tt.filename, []byte("data"), tt.jd))
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.want, decodeError(t, w))
		})
	}
}

func TestScoring_AnalyzeFile_CorruptPDF(t *testing.T) {
	handler := NewScoring(&fakeScorer{result: &types.AnalysisResult{Score: 1}})

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, multipartRequest(t, "cv.pdf", []byte("not a pdf"), "Go engineer"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotEmpty(t, decodeError(t, w))
}

func TestScoring_AnalyzeJSON(t *testing.T) {
	scorer := &fakeScorer{result: &types.AnalysisResult{Score: 88, Feedback: []string{"Add metrics"}, Keywords: []string{"Go"}}}
	handler := NewScoring(scorer)

	resume := types.NewResumeData()
	resume.Name = "Ada Lovelace"
	resume.Skills.Technical = []string{"Go", "SQL"}
	body, err := json.Marshal(types.AnalyzeJSONRequest{Resume: &resume, JobDescription: "Backend Go engineer"})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/analyze-json", bytes.NewReader(body)))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"score":88,"feedback":["Add metrics"],"keywords":["Go"]}`, w.Body.String())
	assert.Contains(t, scorer.text, "Ada Lovelace")
	assert.Contains(t, scorer.text, "Go")
	assert.Equal(t, "Backend Go engineer", scorer.jd)
}

func TestScoring_AnalyzeJSON_Rejections(t *testing.T) {
	handler := NewScoring(&fakeScorer{result: &types.AnalysisResult{Score: 1}})

	tests := []struct {
		name string
		body string
		want string
	}{
		{"not json", "nope", MsgNoData},
		{"no resume", `{"job_description":"Go"}`, MsgNoResumeData},
		{"no job description", `{"resume":{"name":"Ada"}}`, MsgNoJobDescription},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/analyze-json", bytes.NewBufferString(tt.body)))
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.want, decodeError(t, w))
		})
	}
}

func TestScoring_ScorerFailure(t *testing.T) {
	handler := NewScoring(&fakeScorer{err: assert.AnError})

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/analyze-json",
		bytes.NewBufferString(`{"resume":{"name":"Ada"},"job_description":"Go"}`)))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, assert.AnError.Error(), decodeError(t, w))
}

func TestScoring_Health(t *testing.T) {
	w := httptest.NewRecorder()
	NewScoring(&fakeScorer{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
