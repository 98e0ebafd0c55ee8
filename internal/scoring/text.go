package scoring

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

// ResumeText flattens structured resume content into the plain-text layout sent to the model.
// Contact, summary, skills, education, work experience and projects always appear; the
// remaining sections appear only when their first entry's primary field is set.
func ResumeText(d types.ResumeData) string {
	var sb strings.Builder
	w := func(format string, args ...any) { fmt.Fprintf(&sb, format, args...) }

	w("Name: %s\n", d.Name)
	w("Email: %s\n", d.Email)
	w("Phone: %s\n", d.Mobile)
	w("Location: %s\n", d.Location)
	w("LinkedIn: %s\n", d.LinkedIn)
	w("GitHub: %s\n", d.GitHub)
	w("Portfolio: %s\n\n", d.Portfolio)

	w("Summary:\n%s\n\n", d.Summary)

	w("Technical Skills: %s\n", strings.Join(d.Skills.Technical, ", "))
	w("Soft Skills: %s\n\n", strings.Join(d.Skills.SoftSkills, ", "))

	w("Education:\n")
	for _, e := range d.Education {
		w("- %s at %s, %s\n", e.DegreeName, e.Institution, e.Location)
		w("  %s - %s, CGPA: %s\n", e.StartYear, e.EndYear, e.CGPA)
	}
	w("\n")

	w("Work Experience:\n")
	for _, job := range d.WorkExperience {
		w("- %s at %s\n", job.JobTitle, job.CompanyName)
		w("  %s - %s\n", job.StartDate, job.EndDate)
		w("  Responsibilities: %s\n", job.Responsibilities)
	}
	w("\n")

	w("Projects:\n")
	for _, p := range d.Projects {
		w("- %s\n", p.Title)
		w("  Description: %s\n", p.Description)
		w("  Tech Stack: %s\n", strings.Join(p.TechStack, ", "))
		if p.DemoLink != "" {
			w("  Demo: %s\n", p.DemoLink)
		}
	}
	w("\n")

	if len(d.Certifications) > 0 && d.Certifications[0].Name != "" {
		w("Certifications:\n")
		for _, c := range d.Certifications {
			w("- %s", c.Name)
			if c.Link != "" {
				w(" (%s)", c.Link)
			}
			w("\n")
		}
		w("\n")
	}

	if len(d.Achievements) > 0 && d.Achievements[0].Title != "" {
		w("Achievements:\n")
		for _, a := range d.Achievements {
			w("- %s: %s\n", a.Title, a.Description)
		}
		w("\n")
	}

	if len(d.PositionOfResponsibility) > 0 && d.PositionOfResponsibility[0].Position != "" {
		w("Positions of Responsibility:\n")
		for _, p := range d.PositionOfResponsibility {
			w("- %s at %s, %s\n", p.Position, p.Organization, p.Duration)
			w("  %s\n", p.Contributions)
		}
		w("\n")
	}

	if len(d.Publications) > 0 && d.Publications[0].Title != "" {
		w("Publications:\n")
		for _, p := range d.Publications {
			w("- %s, %s, %s\n", p.Title, p.Conference, p.Date)
			w("  Authors: %s\n", p.Authors)
			if p.Link != "" {
				w("  Link: %s\n", p.Link)
			}
		}
	}

	return sb.String()
}
