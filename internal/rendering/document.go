package rendering

import (
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

// Document is the view model of one rendered resume. A nil or empty section is not rendered.
type Document struct {
	Name    string
	Contact []string
	Links   []string
	Summary string

	Skills         *SkillsSection
	Education      []EducationItem
	Experience     []ExperienceItem
	Projects       []ProjectItem
	Certifications []CertificationItem
	Achievements   []AchievementItem
	Positions      []PositionItem
	Publications   []PublicationItem
}

// SkillsSection holds the comma-joined skill lists; an empty string hides its line.
type SkillsSection struct {
	Technical  string
	SoftSkills string
}

// EducationItem is one rendered education entry.
type EducationItem struct {
	Degree string
	Line   string // "Institution, Location | Start - End"
	CGPA   string
}

// ExperienceItem is one rendered job.
type ExperienceItem struct {
	Title   string
	Line    string // "Company | Start - End"
	Bullets []string
}

// ProjectItem is one rendered project.
type ProjectItem struct {
	Title       string
	Description string
	TechStack   string
	DemoLink    string
}

// CertificationItem is one rendered certification.
type CertificationItem struct {
	Name string
	Link string
}

// AchievementItem is one rendered achievement.
type AchievementItem struct {
	Title       string
	Description string
}

// PositionItem is one rendered position of responsibility.
type PositionItem struct {
	Heading       string
	Duration      string
	Contributions string
}

// PublicationItem is one rendered publication.
type PublicationItem struct {
	Title   string
	Venue   string
	Authors string
	Link    string
}

// BuildDocument maps resume content to the rendered layout. A collection section is present
// only when its first entry's primary field is non-empty, regardless of later entries.
func BuildDocument(d types.ResumeData) Document {
	doc := Document{
		Name:    d.Name,
		Contact: nonEmpty(d.Email, d.Mobile, d.Location),
		Links:   nonEmpty(d.LinkedIn, d.GitHub, d.Portfolio),
		Summary: d.Summary,
	}

	if len(d.Skills.Technical) > 0 || len(d.Skills.SoftSkills) > 0 {
		doc.Skills = &SkillsSection{
			Technical:  strings.Join(d.Skills.Technical, ", "),
			SoftSkills: strings.Join(d.Skills.SoftSkills, ", "),
		}
	}

	if len(d.Education) > 0 && d.Education[0].Institution != "" {
		for _, e := range d.Education {
			line := e.Institution
			if e.Location != "" {
				line += ", " + e.Location
			}
			line += " | " + e.StartYear + " - " + orPresent(e.EndYear)
			doc.Education = append(doc.Education, EducationItem{Degree: e.DegreeName, Line: line, CGPA: e.CGPA})
		}
	}

	if len(d.WorkExperience) > 0 && d.WorkExperience[0].CompanyName != "" {
		for _, w := range d.WorkExperience {
			doc.Experience = append(doc.Experience, ExperienceItem{
				Title:   w.JobTitle,
				Line:    w.CompanyName + " | " + w.StartDate + " - " + orPresent(w.EndDate),
				Bullets: Bullets(w.Responsibilities),
			})
		}
	}

	if len(d.Projects) > 0 && d.Projects[0].Title != "" {
		for _, p := range d.Projects {
			doc.Projects = append(doc.Projects, ProjectItem{
				Title:       p.Title,
				Description: p.Description,
				TechStack:   strings.Join(p.TechStack, ", "),
				DemoLink:    p.DemoLink,
			})
		}
	}

	if len(d.Certifications) > 0 && d.Certifications[0].Name != "" {
		for _, c := range d.Certifications {
			doc.Certifications = append(doc.Certifications, CertificationItem(c))
		}
	}

	if len(d.Achievements) > 0 && d.Achievements[0].Title != "" {
		for _, a := range d.Achievements {
			doc.Achievements = append(doc.Achievements, AchievementItem(a))
		}
	}

	if len(d.PositionOfResponsibility) > 0 && d.PositionOfResponsibility[0].Position != "" {
		for _, p := range d.PositionOfResponsibility {
			doc.Positions = append(doc.Positions, PositionItem{
				Heading:       p.Position + " at " + p.Organization,
				Duration:      p.Duration,
				Contributions: p.Contributions,
			})
		}
	}

	if len(d.Publications) > 0 && d.Publications[0].Title != "" {
		for _, p := range d.Publications {
			venue := p.Conference
			if p.Date != "" {
				venue += " - " + p.Date
			}
			doc.Publications = append(doc.Publications, PublicationItem{
				Title:   p.Title,
				Venue:   venue,
				Authors: p.Authors,
				Link:    p.Link,
			})
		}
	}

	return doc
}

// Sections lists the titles of the sections present in the document, in order.
func (d Document) Sections() []string {
	var out []string
	add := func(present bool, title string) {
		if present {
			out = append(out, title)
		}
	}
	add(d.Summary != "", "Professional Summary")
	add(d.Skills != nil, "Skills")
	add(len(d.Education) > 0, "Education")
	add(len(d.Experience) > 0, "Work Experience")
	add(len(d.Projects) > 0, "Projects")
	add(len(d.Certifications) > 0, "Certifications")
	add(len(d.Achievements) > 0, "Achievements")
	add(len(d.Positions) > 0, "Positions of Responsibility")
	add(len(d.Publications) > 0, "Publications")
	return out
}

// Bullets splits free text on line breaks into one bullet per non-empty line.
func Bullets(text string) []string {
	var out []string
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}

func orPresent(end string) string {
	if end == "" {
		return "Present"
	}
	return end
}

func nonEmpty(values ...string) []string {
	var out []string
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
