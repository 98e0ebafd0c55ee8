package scoring

import (
	"archive/zip"
	"bytes"
	"errors"
	"html"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

var (
	xmlTag        = regexp.MustCompile(`<[^>]+>`)
	inlineSpace   = regexp.MustCompile(`[ \t\r\f\v]+`)
	repeatedLines = regexp.MustCompile(`\n+`)
)

// ExtractText returns the plain text of an uploaded resume. The format is chosen by
// the file extension, case-insensitively.
func ExtractText(filename string, data []byte) (string, error) {
	var (
		text string
		err  error
	)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		text, err = pdfText(data)
	case ".docx":
		text, err = docxText(data)
	case ".doc":
		return "", ErrDocFormat
	default:
		return "", ErrUnsupportedFormat
	}
	if err != nil {
		return "", &ExtractError{Filename: filename, Cause: err}
	}
	return text, nil
}

func pdfText(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return normalizeWhitespace(buf.String()), nil
}

func docxText(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", err
		}
		doc, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", err
		}

		body := string(doc)
		body = strings.ReplaceAll(body, "</w:p>", "\n")
		body = strings.ReplaceAll(body, "<w:tab/>", "\t")
		body = xmlTag.ReplaceAllString(body, "")
		return normalizeWhitespace(html.UnescapeString(body)), nil
	}
	return "", errors.New("no word/document.xml in archive")
}

func normalizeWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\u00A0", " ")
	s = inlineSpace.ReplaceAllString(s, " ")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	s = repeatedLines.ReplaceAllString(strings.Join(lines, "\n"), "\n")
	return strings.TrimSpace(s)
}
