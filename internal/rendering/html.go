package rendering

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"sort"
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

//go:embed templates/*
var templateFS embed.FS

// Theme selects the visual style of a rendered resume.
type Theme string

// Themes.
const (
	ThemeProfessional Theme = "professional"
	ThemeCreative     Theme = "creative"
	ThemeModern       Theme = "modern"
)

// DefaultTheme is used when no theme is requested.
const DefaultTheme = ThemeProfessional

var themeNames = map[Theme]string{
	ThemeProfessional: "Professional",
	ThemeCreative:     "Creative",
	ThemeModern:       "Modern",
}

// Themes lists every theme in sorted order.
func Themes() []Theme {
	out := make([]Theme, 0, len(themeNames))
	for t := range themeNames {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ParseTheme resolves a theme name; an empty name selects DefaultTheme.
func ParseTheme(name string) (Theme, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return DefaultTheme, nil
	}
	t := Theme(name)
	if _, ok := themeNames[t]; !ok {
		return "", &TemplateError{Message: fmt.Sprintf("unknown theme %q", name)}
	}
	return t, nil
}

// DisplayName returns the human-readable theme name.
func (t Theme) DisplayName() string {
	return themeNames[t]
}

var resumeTemplate = template.Must(template.ParseFS(templateFS, "templates/resume.html.tmpl"))

type pageData struct {
	Theme Theme
	CSS   template.CSS
	Doc   Document
}

func stylesheet(t Theme) (template.CSS, error) {
	base, err := templateFS.ReadFile("templates/base.css")
	if err != nil {
		return "", err
	}
	themed, err := templateFS.ReadFile("templates/" + string(t) + ".css")
	if err != nil {
		return "", err
	}
	// Stylesheets are embedded and trusted.
	return template.CSS(string(base) + "\n" + string(themed)), nil //nolint:gosec
}

// RenderHTML renders resume content as a standalone HTML page in the given theme.
func RenderHTML(data types.ResumeData, theme Theme) (string, error) {
	if _, ok := themeNames[theme]; !ok {
		return "", &TemplateError{Message: fmt.Sprintf("unknown theme %q", theme)}
	}

	css, err := stylesheet(theme)
	if err != nil {
		return "", &TemplateError{Theme: theme, Message: "failed to load stylesheet", Cause: err}
	}

	var buf bytes.Buffer
	if err := resumeTemplate.Execute(&buf, pageData{Theme: theme, CSS: css, Doc: BuildDocument(data)}); err != nil {
		return "", &TemplateError{Theme: theme, Message: "failed to execute template", Cause: err}
	}
	return buf.String(), nil
}
