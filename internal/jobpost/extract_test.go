package jobpost

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectPlatform(t *testing.T) {
	tests := []struct {
		url  string
		want Platform
	}{
		{"https://boards.greenhouse.io/acme/jobs/123", PlatformGreenhouse},
		{"https://job-boards.greenhouse.io/acme/jobs/123", PlatformGreenhouse},
		{"https://jobs.lever.co/acme/abc-def", PlatformLever},
		{"https://acme.wd5.myworkdayjobs.com/en-US/careers/job/123", PlatformWorkday},
		{"https://jobs.ashbyhq.com/acme/123", PlatformAshby},
		{"https://careers.acme.com/jobs/1", PlatformUnknown},
		{"https://notgreenhouse.io/jobs", PlatformUnknown},
		{"::bad", PlatformUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectPlatform(tt.url))
		})
	}
}

func TestExtractText_PlatformSelectors(t *testing.T) {
	html := `<html><body>
		<div class="posting-page">
			<h2>Site Reliability Engineer</h2>
			<p>On-call for Go services.</p>
			<div class="posting-apply">Apply for this job</div>
		</div>
		<div class="sidebar">Other openings</div>
	</body></html>`

	text, err := ExtractText(html, PlatformLever)
	require.NoError(t, err)

	assert.Contains(t, text, "Site Reliability Engineer")
	assert.Contains(t, text, "On-call for Go services.")
	assert.NotContains(t, text, "Apply for this job")
	assert.NotContains(t, text, "Other openings")
}

func TestExtractText_FallsBackToBody(t *testing.T) {
	text, err := ExtractText(`<html><body><p>Plain page</p><footer>Legal</footer></body></html>`, PlatformUnknown)
	require.NoError(t, err)
	assert.Equal(t, "Plain page", text)
}

func TestExtractText_SkipsEmptyMatches(t *testing.T) {
	html := `<html><body><div class="job-description">   </div><article><p>Real content</p></article></body></html>`

	text, err := ExtractText(html, PlatformUnknown)
	require.NoError(t, err)
	assert.Equal(t, "Real content", text)
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"trims", "  hello  ", "hello"},
		{"collapses spaces", "a \t  b  c", "a b c"},
		{"windows endings", "a\r\nb\rc", "a\nb\nc"},
		{"blank lines", "a\n\n\n\n  \nb", "a\n\nb"},
		{"trims lines", "  a  \n  b  ", "a\nb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanText(tt.in))
		})
	}
}
