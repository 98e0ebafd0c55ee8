package observability

import (
	"bytes"
	"strings"
	"testing"

	"github.com/jonathan/resume-builder/internal/types"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestPrintResume(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	data := types.NewResumeData()
	data.Name = "Jane Doe"
	data.Skills.Technical = []string{"Go", "SQL"}
	data.Education[0].Institution = "Stanford"
	data.Education[0].StartYear = "2019"
	data.WorkExperience = nil

	p.PrintResume(&data)
	output := buf.String()

	assert.Contains(t, output, "RESUME")
	assert.Contains(t, output, "Jane Doe")
	assert.Contains(t, output, "Go, SQL")
	assert.Contains(t, output, "EDUCATION (1)")
	assert.Contains(t, output, "[0] Stanford | 2019 - Present")
	assert.Contains(t, output, "WORK EXPERIENCE (0)")
	assert.Contains(t, output, "(no entries)")
}

func TestPrintResume_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintResume(nil)
	assert.Empty(t, buf.String())
}

func TestPrintAnalysis(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	keywords := make([]string, 0, 15)
	for i := 0; i < 15; i++ {
		keywords = append(keywords, "kw")
	}
	p.PrintAnalysis(&types.AnalysisResult{
		Score:    87,
		Feedback: []string{"Add metrics"},
		Keywords: keywords,
	}, "Good job!")
	output := buf.String()

	assert.Contains(t, output, "ATS ANALYSIS")
	assert.Contains(t, output, "87/100")
	assert.Contains(t, output, "Good job!")
	assert.Contains(t, output, "Add metrics")
	assert.Contains(t, output, "... and 5 more")
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("T", strings.Repeat("x", 200))

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), boxWidth)
	}
	assert.Contains(t, buf.String(), "...")
}

func TestNewLogger(t *testing.T) {
	l := NewLogger("debug", "json")
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, l.Formatter)

	l = NewLogger("nonsense", "")
	assert.Equal(t, logrus.InfoLevel, l.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, l.Formatter)
}
