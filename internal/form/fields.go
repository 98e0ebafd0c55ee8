package form

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/resume-builder/internal/types"
)

// ScalarField names one of the top-level string fields of a resume.
type ScalarField string

// Scalar fields.
const (
	FieldName      ScalarField = "name"
	FieldEmail     ScalarField = "email"
	FieldMobile    ScalarField = "mobile"
	FieldPortfolio ScalarField = "portfolio"
	FieldLinkedIn  ScalarField = "linkedin"
	FieldGitHub    ScalarField = "github"
	FieldLocation  ScalarField = "location"
	FieldSummary   ScalarField = "summary"
)

var scalarRefs = map[ScalarField]func(*types.ResumeData) *string{
	FieldName:      func(d *types.ResumeData) *string { return &d.Name },
	FieldEmail:     func(d *types.ResumeData) *string { return &d.Email },
	FieldMobile:    func(d *types.ResumeData) *string { return &d.Mobile },
	FieldPortfolio: func(d *types.ResumeData) *string { return &d.Portfolio },
	FieldLinkedIn:  func(d *types.ResumeData) *string { return &d.LinkedIn },
	FieldGitHub:    func(d *types.ResumeData) *string { return &d.GitHub },
	FieldLocation:  func(d *types.ResumeData) *string { return &d.Location },
	FieldSummary:   func(d *types.ResumeData) *string { return &d.Summary },
}

// ParseScalarField resolves a scalar field by its JSON name.
func ParseScalarField(name string) (ScalarField, error) {
	f := ScalarField(name)
	if _, ok := scalarRefs[f]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return f, nil
}

// ScalarFields lists the scalar field names in sorted order.
func ScalarFields() []string {
	out := make([]string, 0, len(scalarRefs))
	for f := range scalarRefs {
		out = append(out, string(f))
	}
	sort.Strings(out)
	return out
}

// SkillType selects one of the two skill lists.
type SkillType string

// Skill lists.
const (
	Technical  SkillType = "technical"
	SoftSkills SkillType = "softSkills"
)

// ParseSkillType resolves a skill list by its JSON name.
func ParseSkillType(name string) (SkillType, error) {
	switch SkillType(name) {
	case Technical, SoftSkills:
		return SkillType(name), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSkillType, name)
}

// Field names one string field of entry type E.
type Field[E any] struct {
	name string
	ref  func(*E) *string
}

// Name returns the JSON name of the field.
func (f Field[E]) Name() string { return f.name }

func field[E any](name string, ref func(*E) *string) Field[E] {
	return Field[E]{name: name, ref: ref}
}

// Education fields.
var (
	EducationInstitution = field("institution", func(e *types.Education) *string { return &e.Institution })
	EducationDegreeName  = field("degreeName", func(e *types.Education) *string { return &e.DegreeName })
	EducationLocation    = field("location", func(e *types.Education) *string { return &e.Location })
	EducationStartYear   = field("startYear", func(e *types.Education) *string { return &e.StartYear })
	EducationEndYear     = field("endYear", func(e *types.Education) *string { return &e.EndYear })
	EducationCGPA        = field("cgpa", func(e *types.Education) *string { return &e.CGPA })
)

// Work experience fields.
var (
	WorkCompanyName      = field("companyName", func(e *types.WorkExperience) *string { return &e.CompanyName })
	WorkJobTitle         = field("jobTitle", func(e *types.WorkExperience) *string { return &e.JobTitle })
	WorkStartDate        = field("startDate", func(e *types.WorkExperience) *string { return &e.StartDate })
	WorkEndDate          = field("endDate", func(e *types.WorkExperience) *string { return &e.EndDate })
	WorkResponsibilities = field("responsibilities", func(e *types.WorkExperience) *string { return &e.Responsibilities })
)

// Project fields. The tech stack is a list and is set through SetTechStack.
var (
	ProjectTitle       = field("title", func(e *types.Project) *string { return &e.Title })
	ProjectDescription = field("description", func(e *types.Project) *string { return &e.Description })
	ProjectDemoLink    = field("demoLink", func(e *types.Project) *string { return &e.DemoLink })
)

// Certification fields.
var (
	CertificationName = field("name", func(e *types.Certification) *string { return &e.Name })
	CertificationLink = field("link", func(e *types.Certification) *string { return &e.Link })
)

// Achievement fields.
var (
	AchievementTitle       = field("title", func(e *types.Achievement) *string { return &e.Title })
	AchievementDescription = field("description", func(e *types.Achievement) *string { return &e.Description })
)

// Position of responsibility fields.
var (
	PositionTitle         = field("position", func(e *types.Position) *string { return &e.Position })
	PositionOrganization  = field("organization", func(e *types.Position) *string { return &e.Organization })
	PositionDuration      = field("duration", func(e *types.Position) *string { return &e.Duration })
	PositionContributions = field("contributions", func(e *types.Position) *string { return &e.Contributions })
)

// Publication fields.
var (
	PublicationTitle      = field("title", func(e *types.Publication) *string { return &e.Title })
	PublicationConference = field("conference", func(e *types.Publication) *string { return &e.Conference })
	PublicationDate       = field("date", func(e *types.Publication) *string { return &e.Date })
	PublicationAuthors    = field("authors", func(e *types.Publication) *string { return &e.Authors })
	PublicationLink       = field("link", func(e *types.Publication) *string { return &e.Link })
)

// TechStackField is the list-valued project field accepted by SetEntryField.
const TechStackField = "techStack"

func fieldTable[E any](fields ...Field[E]) map[string]Field[E] {
	out := make(map[string]Field[E], len(fields))
	for _, f := range fields {
		out[f.name] = f
	}
	return out
}

// SplitList splits comma separated text into trimmed pieces, keeping their order.
// Blank input yields an empty list; empty pieces between commas are kept.
func SplitList(text string) []string {
	if strings.TrimSpace(text) == "" {
		return []string{}
	}
	parts := strings.Split(text, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}
