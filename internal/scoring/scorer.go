// Package scoring implements the ATS scoring service: it turns a resume into text and asks
// an LLM to grade it against a job description.
package scoring

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/resume-builder/internal/ats"
	"github.com/jonathan/resume-builder/internal/llm"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/prompts"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

// FallbackScore and FallbackFeedback form the result returned when the model's answer cannot be read.
const (
	FallbackScore    = 50
	FallbackFeedback = "Error parsing AI response. Please try again."
)

// Fallback returns the result used when the model answer is unreadable.
func Fallback() *types.AnalysisResult {
	return &types.AnalysisResult{
		Score:    FallbackScore,
		Feedback: []string{FallbackFeedback},
		Keywords: []string{},
	}
}

// Scorer grades resume text against a job description with an LLM.
type Scorer struct {
	client llm.Client
	tier   llm.ModelTier
	log    *logrus.Entry
}

// NewScorer creates a Scorer using the standard model tier.
func NewScorer(client llm.Client) *Scorer {
	return &Scorer{
		client: client,
		tier:   llm.TierStandard,
		log:    observability.Logger().WithField("component", "scoring"),
	}
}

// Score prompts the model and parses its answer. Only a failed model call is an error;
// an unreadable answer yields Fallback.
func (s *Scorer) Score(ctx context.Context, resumeText, jobDescription string) (*types.AnalysisResult, error) {
	prompt := prompts.Format(prompts.MustGet(prompts.ATSFile, prompts.ATSAnalyzeResume), map[string]string{
		"ResumeText":     resumeText,
		"JobDescription": jobDescription,
	})

	answer, err := s.client.GenerateJSON(ctx, prompt, s.tier)
	if err != nil {
		return nil, fmt.Errorf("failed to score resume: %w", err)
	}

	result, ok := ParseAnswer(answer)
	if !ok {
		s.log.WithField("answer_bytes", len(answer)).Warn("unreadable model answer, using fallback score")
	}
	return result, nil
}

// ParseAnswer reads a model answer as an analysis result. It tries the whole answer, then the
// span between the first '{' and the last '}'. ok is false when Fallback was used.
func ParseAnswer(answer string) (result *types.AnalysisResult, ok bool) {
	candidates := []string{strings.TrimSpace(answer), llm.ExtractJSONObject(answer)}
	for _, candidate := range candidates {
		if candidate == "" || !gjson.Valid(candidate) {
			continue
		}
		if schemas.ValidateAnalysis([]byte(candidate)) != nil {
			continue
		}
		parsed, err := ats.ParseResult(candidate)
		if err != nil {
			continue
		}
		return parsed, true
	}
	return Fallback(), false
}
