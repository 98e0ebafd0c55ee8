// Package types provides type definitions for structured data used throughout the resume-builder system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ResumeData is the full content of one resume being edited.
// JSON keys match the persisted form state, so renaming a tag breaks restore.
type ResumeData struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Mobile    string `json:"mobile"`
	Portfolio string `json:"portfolio"`
	LinkedIn  string `json:"linkedin"`
	GitHub    string `json:"github"`
	Location  string `json:"location"`
	Summary   string `json:"summary"`

	Skills Skills `json:"skills"`

	Education                []Education      `json:"education"`
	WorkExperience           []WorkExperience `json:"workExperience"`
	Projects                 []Project        `json:"projects"`
	Certifications           []Certification  `json:"certifications"`
	Achievements             []Achievement    `json:"achievements"`
	PositionOfResponsibility []Position       `json:"positionOfResponsibility"`
	Publications             []Publication    `json:"publications"`
}

// Skills holds the two free-form skill lists.
type Skills struct {
	Technical  []string `json:"technical"`
	SoftSkills []string `json:"softSkills"`
}

// Education is one education entry.
type Education struct {
	Institution string `json:"institution"`
	DegreeName  string `json:"degreeName"`
	Location    string `json:"location"`
	StartYear   string `json:"startYear"`
	EndYear     string `json:"endYear"`
	CGPA        string `json:"cgpa"`
}

// WorkExperience is one job. Responsibilities is free text; renderers split it on line breaks.
type WorkExperience struct {
	CompanyName      string `json:"companyName"`
	JobTitle         string `json:"jobTitle"`
	StartDate        string `json:"startDate"`
	EndDate          string `json:"endDate"`
	Responsibilities string `json:"responsibilities"`
}

// Project is one project entry.
type Project struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	TechStack   []string `json:"techStack"`
	DemoLink    string   `json:"demoLink"`
}

// Certification is one certification entry.
type Certification struct {
	Name string `json:"name"`
	Link string `json:"link"`
}

// Achievement is one achievement entry.
type Achievement struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Position is one position-of-responsibility entry.
type Position struct {
	Position      string `json:"position"`
	Organization  string `json:"organization"`
	Duration      string `json:"duration"`
	Contributions string `json:"contributions"`
}

// Publication is one publication entry.
type Publication struct {
	Title      string `json:"title"`
	Conference string `json:"conference"`
	Date       string `json:"date"`
	Authors    string `json:"authors"`
	Link       string `json:"link"`
}

// NewResumeData returns the blank form state: empty scalars, empty skill lists and
// exactly one blank entry per collection.
func NewResumeData() ResumeData {
	return ResumeData{
		Skills: Skills{
			Technical:  []string{},
			SoftSkills: []string{},
		},
		Education:                []Education{{}},
		WorkExperience:           []WorkExperience{{}},
		Projects:                 []Project{NewProject()},
		Certifications:           []Certification{{}},
		Achievements:             []Achievement{{}},
		PositionOfResponsibility: []Position{{}},
		Publications:             []Publication{{}},
	}
}

// NewProject returns a blank project with an empty (non-nil) tech stack.
func NewProject() Project {
	return Project{TechStack: []string{}}
}

// Clone returns a deep copy. No slice is shared between d and the result.
func (d ResumeData) Clone() ResumeData {
	out := d
	out.Skills = Skills{
		Technical:  cloneStrings(d.Skills.Technical),
		SoftSkills: cloneStrings(d.Skills.SoftSkills),
	}
	out.Education = cloneSlice(d.Education)
	out.WorkExperience = cloneSlice(d.WorkExperience)
	out.Certifications = cloneSlice(d.Certifications)
	out.Achievements = cloneSlice(d.Achievements)
	out.PositionOfResponsibility = cloneSlice(d.PositionOfResponsibility)
	out.Publications = cloneSlice(d.Publications)

	if d.Projects != nil {
		out.Projects = make([]Project, len(d.Projects))
		for i, p := range d.Projects {
			p.TechStack = cloneStrings(p.TechStack)
			out.Projects[i] = p
		}
	}
	return out
}

// FillMissingCollections gives every nil collection one blank entry. Collections
// that are present but empty are left alone.
func (d *ResumeData) FillMissingCollections() {
	if d.Education == nil {
		d.Education = []Education{{}}
	}
	if d.WorkExperience == nil {
		d.WorkExperience = []WorkExperience{{}}
	}
	if d.Projects == nil {
		d.Projects = []Project{NewProject()}
	}
	if d.Certifications == nil {
		d.Certifications = []Certification{{}}
	}
	if d.Achievements == nil {
		d.Achievements = []Achievement{{}}
	}
	if d.PositionOfResponsibility == nil {
		d.PositionOfResponsibility = []Position{{}}
	}
	if d.Publications == nil {
		d.Publications = []Publication{{}}
	}
}

// Normalize replaces nil lists with empty ones so the encoded form never carries null.
func (d *ResumeData) Normalize() {
	if d.Skills.Technical == nil {
		d.Skills.Technical = []string{}
	}
	if d.Skills.SoftSkills == nil {
		d.Skills.SoftSkills = []string{}
	}
	if d.Education == nil {
		d.Education = []Education{}
	}
	if d.WorkExperience == nil {
		d.WorkExperience = []WorkExperience{}
	}
	if d.Projects == nil {
		d.Projects = []Project{}
	}
	for i := range d.Projects {
		if d.Projects[i].TechStack == nil {
			d.Projects[i].TechStack = []string{}
		}
	}
	if d.Certifications == nil {
		d.Certifications = []Certification{}
	}
	if d.Achievements == nil {
		d.Achievements = []Achievement{}
	}
	if d.PositionOfResponsibility == nil {
		d.PositionOfResponsibility = []Position{}
	}
	if d.Publications == nil {
		d.Publications = []Publication{}
	}
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	out := make([]T, len(s))
	copy(out, s)
	return out
}
