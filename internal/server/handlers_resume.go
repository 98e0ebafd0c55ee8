package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/jonathan/resume-builder/internal/ats"
	"github.com/jonathan/resume-builder/internal/form"
	"github.com/jonathan/resume-builder/internal/rendering"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/server/middleware"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/sirupsen/logrus"
)

const (
	maxFormBody   = 1 << 20
	maxUploadSize = 10 << 20
)

// valueRequest is the body of every single-field update.
type valueRequest struct {
	Value *string `json:"value" validate:"required"`
}

// analyzeRequest is the JSON body of an analysis triggered on the stored form.
type analyzeRequest struct {
	JobDescription string `json:"job_description"`
}

// analysisResponse is an ATS result plus its rating label.
type analysisResponse struct {
	*types.AnalysisResult
	Rating string `json:"rating"`
}

// session resolves the authenticated account's form session. The returned func
// releases it and must be called once the request is done with the session.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (*session, func(), bool) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return nil, nil, false
	}
	sess, err := s.sessions.acquire(r.Context(), userID)
	if err != nil {
		s.domainError(w, r, err)
		return nil, nil, false
	}
	return sess, func() { s.sessions.release(sess) }, true
}

// mutate applies fn under the session lock and responds with the resulting form state.
func (s *Server) mutate(w http.ResponseWriter, r *http.Request, status int, fn func(*form.Controller) error) {
	sess, release, ok := s.session(w, r)
	if !ok {
		return
	}
	defer release()
	var data types.ResumeData
	err := sess.with(func(c *form.Controller) error {
		if err := fn(c); err != nil {
			return err
		}
		data = c.Data()
		return nil
	})
	if err != nil {
		s.domainError(w, r, err)
		return
	}
	jsonResponse(w, status, data)
}

// domainError writes err with its mapped status; internal failures are logged and hidden.
func (s *Server) domainError(w http.ResponseWriter, r *http.Request, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.log.WithFields(logrus.Fields{"path": r.URL.Path, "error": err.Error()}).Error("request failed")
		switch status {
		case http.StatusInternalServerError:
			errorResponse(w, status, "Internal server error")
			return
		case http.StatusServiceUnavailable:
			errorResponse(w, status, MsgFormUnavailable)
			return
		}
	}
	errorResponse(w, status, err.Error())
}

func (s *Server) decodeValue(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req valueRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxFormBody)).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return "", false
	}
	if err := s.validator.Struct(req); err != nil {
		errorResponse(w, http.StatusBadRequest, "value is required")
		return "", false
	}
	return *req.Value, true
}

func pathIndex(r *http.Request) (int, error) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		return 0, &ErrValidation{Field: "index", Message: fmt.Sprintf("invalid index %q", r.PathValue("index"))}
	}
	return index, nil
}

// handleGetResume returns the current form state.
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	sess, release, ok := s.session(w, r)
	if !ok {
		return
	}
	defer release()
	var data types.ResumeData
	_ = sess.with(func(c *form.Controller) error {
		data = c.Data()
		return nil
	})
	jsonResponse(w, http.StatusOK, data)
}

// handleReplaceResume replaces the whole form state with a schema-valid document.
func (s *Server) handleReplaceResume(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxFormBody))
	if err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := schemas.ValidateResumeData(raw); err != nil {
		errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	var data types.ResumeData
	if err := json.Unmarshal(raw, &data); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	s.mutate(w, r, http.StatusOK, func(c *form.Controller) error {
		return c.Replace(r.Context(), data)
	})
}

// handleResetResume clears the form; ?all=true also clears the cached analysis.
func (s *Server) handleResetResume(w http.ResponseWriter, r *http.Request) {
	all, _ := strconv.ParseBool(r.URL.Query().Get("all"))
	sess, release, ok := s.session(w, r)
	if !ok {
		return
	}
	defer release()
	s.mutate(w, r, http.StatusOK, func(c *form.Controller) error {
		if err := c.Reset(r.Context()); err != nil {
			return err
		}
		if all {
			return ats.ClearCached(r.Context(), sess.store)
		}
		return nil
	})
}

// handleSetField sets one scalar field.
func (s *Server) handleSetField(w http.ResponseWriter, r *http.Request) {
	field, err := form.ParseScalarField(r.PathValue("field"))
	if err != nil {
		errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	value, ok := s.decodeValue(w, r)
	if !ok {
		return
	}
	s.mutate(w, r, http.StatusOK, func(c *form.Controller) error {
		return c.SetField(r.Context(), field, value)
	})
}

// handleSetSkills replaces one skill list from comma separated text.
func (s *Server) handleSetSkills(w http.ResponseWriter, r *http.Request) {
	kind, err := form.ParseSkillType(r.PathValue("type"))
	if err != nil {
		errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	value, ok := s.decodeValue(w, r)
	if !ok {
		return
	}
	s.mutate(w, r, http.StatusOK, func(c *form.Controller) error {
		return c.SetSkills(r.Context(), kind, value)
	})
}

// handleAddEntry appends a blank entry.
func (s *Server) handleAddEntry(w http.ResponseWriter, r *http.Request) {
	coll, err := form.ParseCollection(r.PathValue("collection"))
	if err != nil {
		errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.mutate(w, r, http.StatusCreated, func(c *form.Controller) error {
		return c.AddEntry(r.Context(), coll)
	})
}

// handleSetEntryField sets one field of one entry.
func (s *Server) handleSetEntryField(w http.ResponseWriter, r *http.Request) {
	coll, err := form.ParseCollection(r.PathValue("collection"))
	if err != nil {
		errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	index, err := pathIndex(r)
	if err != nil {
		errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	value, ok := s.decodeValue(w, r)
	if !ok {
		return
	}
	s.mutate(w, r, http.StatusOK, func(c *form.Controller) error {
		return c.SetEntryField(r.Context(), coll, index, r.PathValue("field"), value)
	})
}

// handleSetTechStack replaces one project's tech stack from comma separated text.
func (s *Server) handleSetTechStack(w http.ResponseWriter, r *http.Request) {
	index, err := pathIndex(r)
	if err != nil {
		errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	value, ok := s.decodeValue(w, r)
	if !ok {
		return
	}
	s.mutate(w, r, http.StatusOK, func(c *form.Controller) error {
		return c.SetTechStack(r.Context(), index, value)
	})
}

// handleRemoveEntry removes one entry, refusing to remove the last one.
func (s *Server) handleRemoveEntry(w http.ResponseWriter, r *http.Request) {
	coll, err := form.ParseCollection(r.PathValue("collection"))
	if err != nil {
		errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	index, err := pathIndex(r)
	if err != nil {
		errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.mutate(w, r, http.StatusOK, func(c *form.Controller) error {
		n, err := c.Len(coll)
		if err != nil {
			return err
		}
		if n <= 1 {
			return &ErrLastEntry{Collection: coll}
		}
		return c.RemoveEntry(r.Context(), coll, index)
	})
}

// handlePDF renders the form state as a PDF attachment.
func (s *Server) handlePDF(w http.ResponseWriter, r *http.Request) {
	theme, err := rendering.ParseTheme(r.URL.Query().Get("theme"))
	if err != nil {
		errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	sess, release, ok := s.session(w, r)
	if !ok {
		return
	}
	defer release()
	var data types.ResumeData
	_ = sess.with(func(c *form.Controller) error {
		data = c.Data()
		return nil
	})

	pdf, err := rendering.RenderPDF(r.Context(), s.pdf, data, theme)
	if err != nil {
		s.domainError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": rendering.Filename(data.Name),
	}))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		s.log.WithError(err).Debug("pdf response interrupted")
	}
}

// handleAnalyze runs an ATS analysis of an uploaded file or of the stored form.
// The form stays editable while the analysis is outstanding.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	sess, release, ok := s.session(w, r)
	if !ok {
		return
	}
	defer release()

	var req ats.Request
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		upload, jd, err := readUpload(w, r)
		if err != nil {
			errorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		req.File = upload
		req.JobDescription = jd
	} else {
		var body analyzeRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, maxFormBody)).Decode(&body); err != nil {
			errorResponse(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		req.JobDescription = body.JobDescription
	}

	if req.File == nil {
		_ = sess.with(func(c *form.Controller) error {
			data := c.Data()
			req.Resume = &data
			return nil
		})
	}

	result, err := sess.runner.Run(r.Context(), req)
	if err != nil {
		s.domainError(w, r, err)
		return
	}
	jsonResponse(w, http.StatusOK, analysisResponse{AnalysisResult: result, Rating: ats.Rating(result.Score)})
}

// readUpload reads the optional "resume" file part and the job description of a multipart request.
func readUpload(w http.ResponseWriter, r *http.Request) (*ats.Upload, string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return nil, "", errors.New("Invalid multipart body") //nolint:stylecheck // shown to users verbatim
	}
	jd := r.FormValue("job_description")

	file, header, err := r.FormFile("resume")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, jd, nil
	}
	if err != nil {
		return nil, "", errors.New("Invalid resume file") //nolint:stylecheck // shown to users verbatim
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, "", errors.New("Invalid resume file") //nolint:stylecheck // shown to users verbatim
	}
	return &ats.Upload{Name: header.Filename, Data: data}, jd, nil
}

// handleGetAnalysis returns the last cached ATS result.
func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	sess, release, ok := s.session(w, r)
	if !ok {
		return
	}
	defer release()
	result, found, err := ats.LoadCached(r.Context(), sess.store)
	if err != nil {
		s.domainError(w, r, err)
		return
	}
	if !found {
		errorResponse(w, http.StatusNotFound, ErrNoAnalysis.Error())
		return
	}
	jsonResponse(w, http.StatusOK, analysisResponse{AnalysisResult: result, Rating: ats.Rating(result.Score)})
}
