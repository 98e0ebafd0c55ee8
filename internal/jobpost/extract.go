package jobpost

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var (
	spaceRun     = regexp.MustCompile(`[ \t\p{Zs}]+`)
	blankLineRun = regexp.MustCompile(`\n{3,}`)
)

// blockElements start a new line in the extracted text.
const blockElements = "p, div, li, br, h1, h2, h3, h4, h5, h6, tr, section, ul, ol"

// ExtractText returns the description text of a job posting page. Noise elements are
// removed, then the first matching content selector is used, falling back to body.
func ExtractText(html string, platform Platform) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find(strings.Join(NoiseSelectors(platform), ", ")).Remove()

	var content *goquery.Selection
	for _, selector := range ContentSelectors(platform) {
		if sel := doc.Find(selector); sel.Length() > 0 && strings.TrimSpace(sel.First().Text()) != "" {
			content = sel.First()
			break
		}
	}
	if content == nil {
		content = doc.Find("body")
	}

	// Keep list items and paragraphs on their own lines.
	content.Find(blockElements).Each(func(_ int, s *goquery.Selection) {
		s.BeforeHtml("\n")
		s.AfterHtml("\n")
	})
	content.Find("li").Each(func(_ int, s *goquery.Selection) {
		s.PrependHtml("- ")
	})

	return CleanText(content.Text()), nil
}

// CleanText normalizes line endings and runs of spaces, trims every line and keeps
// at most one blank line between paragraphs.
func CleanText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(spaceRun.ReplaceAllString(line, " "))
	}
	text = strings.Join(lines, "\n")
	text = blankLineRun.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
