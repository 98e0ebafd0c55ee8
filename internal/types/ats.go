package types

// AnalysisResult is the outcome of one ATS analysis.
// Score range is defined by the scoring service; clients only compare against thresholds.
type AnalysisResult struct {
	Score    float64  `json:"score"`
	Feedback []string `json:"feedback"`
	Keywords []string `json:"keywords"`
}

// AnalyzeJSONRequest is the body of a structured-content analysis request.
type AnalyzeJSONRequest struct {
	Resume         *ResumeData `json:"resume"`
	JobDescription string      `json:"job_description"`
}
