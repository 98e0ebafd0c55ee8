package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/scoring"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/sirupsen/logrus"
)

// Scoring service messages returned to clients verbatim.
const (
	MsgNoResumeFile     = "No resume file provided"
	MsgNoJobDescription = "No job description provided"
	MsgNoData           = "No data provided"
	MsgNoResumeData     = "No resume data provided"
)

// ResumeScorer grades resume text against a job description.
type ResumeScorer interface {
	Score(ctx context.Context, resumeText, jobDescription string) (*types.AnalysisResult, error)
}

// scoringService serves the ATS scoring endpoints.
type scoringService struct {
	scorer ResumeScorer
	log    *logrus.Entry
}

// NewScoring returns the handler of the ATS scoring service: POST /analyze, POST /analyze-json and GET /health.
func NewScoring(scorer ResumeScorer) http.Handler {
	svc := &scoringService{
		scorer: scorer,
		log:    observability.Logger().WithField("component", "scoring"),
	}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /analyze", svc.handleAnalyzeFile)
	mux.HandleFunc("POST /analyze-json", svc.handleAnalyzeJSON)
	mux.HandleFunc("GET /health", handleHealth)
	return mux
}

// handleAnalyzeFile scores an uploaded PDF or DOCX file.
func (svc *scoringService) handleAnalyzeFile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		errorResponse(w, http.StatusBadRequest, MsgNoResumeFile)
		return
	}

	file, header, err := r.FormFile("resume")
	if err != nil {
		errorResponse(w, http.StatusBadRequest, MsgNoResumeFile)
		return
	}
	defer file.Close()

	jobDescription := r.FormValue("job_description")
	if strings.TrimSpace(jobDescription) == "" {
		errorResponse(w, http.StatusBadRequest, MsgNoJobDescription)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		errorResponse(w, http.StatusBadRequest, MsgNoResumeFile)
		return
	}

	text, err := scoring.ExtractText(header.Filename, data)
	if err != nil {
		if errors.Is(err, scoring.ErrDocFormat) || errors.Is(err, scoring.ErrUnsupportedFormat) {
			errorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		svc.fail(w, err, logrus.Fields{"filename": header.Filename})
		return
	}

	svc.score(r.Context(), w, text, jobDescription)
}

// handleAnalyzeJSON scores structured resume content.
func (svc *scoringService) handleAnalyzeJSON(w http.ResponseWriter, r *http.Request) {
	var req types.AnalyzeJSONRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxFormBody)).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, MsgNoData)
		return
	}
	if req.Resume == nil {
		errorResponse(w, http.StatusBadRequest, MsgNoResumeData)
		return
	}
	if strings.TrimSpace(req.JobDescription) == "" {
		errorResponse(w, http.StatusBadRequest, MsgNoJobDescription)
		return
	}

	req.Resume.Normalize()
	svc.score(r.Context(), w, scoring.ResumeText(*req.Resume), req.JobDescription)
}

func (svc *scoringService) score(ctx context.Context, w http.ResponseWriter, text, jobDescription string) {
	result, err := svc.scorer.Score(ctx, text, jobDescription)
	if err != nil {
		svc.fail(w, err, logrus.Fields{"resume_chars": len(text)})
		return
	}
	jsonResponse(w, http.StatusOK, result)
}

// fail reports an unexpected error with its message, as the scoring service always has.
func (svc *scoringService) fail(w http.ResponseWriter, err error, fields logrus.Fields) {
	svc.log.WithFields(fields).WithError(err).Error("scoring failed")
	errorResponse(w, http.StatusInternalServerError, err.Error())
}
