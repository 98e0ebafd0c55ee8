package form

import (
	"fmt"
	"sort"

	"github.com/jonathan/resume-builder/internal/types"
)

// Collection names one of the ordered entry lists of a resume.
type Collection string

// Collections.
const (
	Education      Collection = "education"
	WorkExperience Collection = "workExperience"
	Projects       Collection = "projects"
	Certifications Collection = "certifications"
	Achievements   Collection = "achievements"
	Positions      Collection = "positionOfResponsibility"
	Publications   Collection = "publications"
)

// entryList binds a collection name to its slice in ResumeData and its closed field table.
type entryList[E any] struct {
	name   Collection
	ref    func(*types.ResumeData) *[]E
	blank  func() E
	fields map[string]Field[E]
}

// collectionOps is the type-erased view of an entryList used for name-keyed dispatch.
type collectionOps interface {
	length(d *types.ResumeData) int
	add(d *types.ResumeData)
	remove(d *types.ResumeData, index int) error
	setField(d *types.ResumeData, index int, name, value string) error
	fieldNames() []string
}

func (l entryList[E]) length(d *types.ResumeData) int { return len(*l.ref(d)) }

func (l entryList[E]) add(d *types.ResumeData) {
	entries := l.ref(d)
	*entries = append(*entries, l.blank())
}

func (l entryList[E]) remove(d *types.ResumeData, index int) error {
	entries := l.ref(d)
	if err := l.check(*entries, index); err != nil {
		return err
	}
	out := make([]E, 0, len(*entries)-1)
	out = append(out, (*entries)[:index]...)
	out = append(out, (*entries)[index+1:]...)
	*entries = out
	return nil
}

func (l entryList[E]) set(d *types.ResumeData, index int, f Field[E], value string) error {
	entries := *l.ref(d)
	if err := l.check(entries, index); err != nil {
		return err
	}
	*f.ref(&entries[index]) = value
	return nil
}

func (l entryList[E]) setField(d *types.ResumeData, index int, name, value string) error {
	f, ok := l.fields[name]
	if !ok {
		return fmt.Errorf("%w: %s has no field %q", ErrUnknownField, l.name, name)
	}
	return l.set(d, index, f, value)
}

func (l entryList[E]) fieldNames() []string {
	out := make([]string, 0, len(l.fields))
	for name := range l.fields {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (l entryList[E]) check(entries []E, index int) error {
	if index < 0 || index >= len(entries) {
		return &IndexError{Collection: l.name, Index: index, Len: len(entries)}
	}
	return nil
}

func zero[E any]() E {
	var e E
	return e
}

var (
	educationList = entryList[types.Education]{
		name:  Education,
		ref:   func(d *types.ResumeData) *[]types.Education { return &d.Education },
		blank: zero[types.Education],
		fields: fieldTable(EducationInstitution, EducationDegreeName, EducationLocation,
			EducationStartYear, EducationEndYear, EducationCGPA),
	}
	workList = entryList[types.WorkExperience]{
		name:  WorkExperience,
		ref:   func(d *types.ResumeData) *[]types.WorkExperience { return &d.WorkExperience },
		blank: zero[types.WorkExperience],
		fields: fieldTable(WorkCompanyName, WorkJobTitle, WorkStartDate,
			WorkEndDate, WorkResponsibilities),
	}
	projectList = entryList[types.Project]{
		name:   Projects,
		ref:    func(d *types.ResumeData) *[]types.Project { return &d.Projects },
		blank:  types.NewProject,
		fields: fieldTable(ProjectTitle, ProjectDescription, ProjectDemoLink),
	}
	certificationList = entryList[types.Certification]{
		name:   Certifications,
		ref:    func(d *types.ResumeData) *[]types.Certification { return &d.Certifications },
		blank:  zero[types.Certification],
		fields: fieldTable(CertificationName, CertificationLink),
	}
	achievementList = entryList[types.Achievement]{
		name:   Achievements,
		ref:    func(d *types.ResumeData) *[]types.Achievement { return &d.Achievements },
		blank:  zero[types.Achievement],
		fields: fieldTable(AchievementTitle, AchievementDescription),
	}
	positionList = entryList[types.Position]{
		name:   Positions,
		ref:    func(d *types.ResumeData) *[]types.Position { return &d.PositionOfResponsibility },
		blank:  zero[types.Position],
		fields: fieldTable(PositionTitle, PositionOrganization, PositionDuration, PositionContributions),
	}
	publicationList = entryList[types.Publication]{
		name:  Publications,
		ref:   func(d *types.ResumeData) *[]types.Publication { return &d.Publications },
		blank: zero[types.Publication],
		fields: fieldTable(PublicationTitle, PublicationConference, PublicationDate,
			PublicationAuthors, PublicationLink),
	}
)

var collections = map[Collection]collectionOps{
	Education:      educationList,
	WorkExperience: workList,
	Projects:       projectList,
	Certifications: certificationList,
	Achievements:   achievementList,
	Positions:      positionList,
	Publications:   publicationList,
}

// AllCollections lists every collection in document order.
func AllCollections() []Collection {
	return []Collection{Education, WorkExperience, Projects, Certifications, Achievements, Positions, Publications}
}

// ParseCollection resolves a collection by its JSON name.
func ParseCollection(name string) (Collection, error) {
	c := Collection(name)
	if _, ok := collections[c]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownCollection, name)
	}
	return c, nil
}

// FieldNames lists the settable field names of a collection's entries.
func FieldNames(c Collection) ([]string, error) {
	ops, ok := collections[c]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCollection, c)
	}
	names := ops.fieldNames()
	if c == Projects {
		names = append(names, TechStackField)
		sort.Strings(names)
	}
	return names, nil
}

func lookup(c Collection) (collectionOps, error) {
	ops, ok := collections[c]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCollection, c)
	}
	return ops, nil
}
