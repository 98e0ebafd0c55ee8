package form

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/jonathan/resume-builder/internal/storage"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingStore accepts reads from an inner store and fails every write.
type failingStore struct {
	storage.Store
	err error
}

func (f *failingStore) Set(context.Context, string, []byte) error { return f.err }

func mustOpen(t *testing.T, s storage.Store) *Controller {
	t.Helper()
	c, err := Open(context.Background(), s)
	require.NoError(t, err)
	return c
}

func storedData(t *testing.T, s storage.Store) types.ResumeData {
	t.Helper()
	raw, err := s.Get(context.Background(), storage.KeyResumeData)
	require.NoError(t, err)
	var d types.ResumeData
	require.NoError(t, json.Unmarshal(raw, &d))
	return d
}

func TestOpen_BlankDefault(t *testing.T) {
	c := mustOpen(t, storage.NewMemoryStore())

	assert.Equal(t, types.NewResumeData(), c.Data())
	for _, coll := range AllCollections() {
		n, err := c.Len(coll)
		require.NoError(t, err)
		assert.Equal(t, 1, n, coll)
	}
}

func TestOpen_FallsBackOnBadContent(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "not json", raw: "{not json"},
		{name: "wrong shape", raw: `{"education":"MIT"}`},
		{name: "json array", raw: `["a"]`},
		{name: "wrong scalar type", raw: `{"name":7}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			s := storage.NewMemoryStore()
			require.NoError(t, s.Set(ctx, storage.KeyResumeData, []byte(tt.raw)))

			c := mustOpen(t, s)
			assert.Equal(t, types.NewResumeData(), c.Data())
		})
	}
}

func TestOpen_NormalizesPartialContent(t *testing.T) {
	ctx := context.Background()
	s := storage.NewMemoryStore()
	require.NoError(t, s.Set(ctx, storage.KeyResumeData, []byte(`{"name":"Jane","projects":[{"title":"X"}]}`)))

	d := mustOpen(t, s).Data()
	assert.Equal(t, "Jane", d.Name)
	assert.Equal(t, []string{}, d.Projects[0].TechStack)
	assert.Equal(t, []string{}, d.Skills.Technical)
	assert.Equal(t, []types.Education{{}}, d.Education)
	assert.Equal(t, []types.Publication{{}}, d.Publications)
}

func TestOpen_KeepsExplicitlyEmptyCollections(t *testing.T) {
	ctx := context.Background()
	s := storage.NewMemoryStore()
	require.NoError(t, s.Set(ctx, storage.KeyResumeData, []byte(`{"name":"Jane","certifications":[]}`)))

	d := mustOpen(t, s).Data()
	assert.Equal(t, "Jane", d.Name)
	assert.Equal(t, []types.Certification{}, d.Certifications)
	assert.Equal(t, []types.Education{{}}, d.Education)
}

// flakyStore fails the first reads with err and then delegates to the inner store.
type flakyStore struct {
	storage.Store
	err      error
	failures int
}

func (f *flakyStore) Get(ctx context.Context, key string) ([]byte, error) {
	if f.failures > 0 {
		f.failures--
		return nil, f.err
	}
	return f.Store.Get(ctx, key)
}

func TestOpen_ReadFailureKeepsStoredState(t *testing.T) {
	ctx := context.Background()
	inner := storage.NewMemoryStore()
	c := mustOpen(t, inner)
	require.NoError(t, c.SetField(ctx, FieldName, "Jane Doe"))
	require.NoError(t, c.SetEducation(ctx, 0, EducationInstitution, "MIT"))

	reset := errors.New("connection reset")
	flaky := &flakyStore{Store: inner, err: reset, failures: 1}

	reopened, err := Open(ctx, flaky)
	assert.Nil(t, reopened)
	var rerr *RestoreError
	require.ErrorAs(t, err, &rerr)
	assert.ErrorIs(t, err, reset)

	// The next open succeeds and sees the stored resume, so an edit keeps it.
	c = mustOpen(t, flaky)
	require.NoError(t, c.SetField(ctx, FieldEmail, "j@x.io"))

	d := storedData(t, inner)
	assert.Equal(t, "Jane Doe", d.Name)
	assert.Equal(t, "MIT", d.Education[0].Institution)
	assert.Equal(t, "j@x.io", d.Email)
}

func TestPersistRestore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := storage.NewMemoryStore()
	c := mustOpen(t, s)

	want := types.ResumeData{
		Name:      "Jane Doe",
		Email:     "jane@example.com",
		Mobile:    "+1 555 0100",
		Portfolio: "https://jane.dev",
		LinkedIn:  "linkedin.com/in/jane",
		GitHub:    "github.com/jane",
		Location:  "Boston, MA",
		Summary:   "Engineer.\nBuilds things.",
		Skills: types.Skills{
			Technical:  []string{"Go", "", "SQL"},
			SoftSkills: []string{},
		},
		Education: []types.Education{
			{Institution: "MIT", DegreeName: "BSc", StartYear: "2015", EndYear: "2019", CGPA: "3.9"},
			{Institution: "Stanford"},
		},
		WorkExperience: []types.WorkExperience{
			{CompanyName: "Acme", JobTitle: "SWE", Responsibilities: "Did A\n\nDid B"},
		},
		Projects: []types.Project{
			{Title: "Builder", TechStack: []string{"Go"}, DemoLink: "https://x"},
			{TechStack: []string{}},
		},
		Certifications:           []types.Certification{},
		Achievements:             []types.Achievement{{Title: "Award", Description: "Won"}},
		PositionOfResponsibility: []types.Position{{Position: "Lead", Organization: "Club"}},
		Publications:             []types.Publication{{Title: "Paper", Authors: "J. Doe"}},
	}

	require.NoError(t, c.Replace(ctx, want))
	require.NoError(t, c.Persist(ctx))

	restored := mustOpen(t, s).Data()
	assert.Equal(t, want, restored)
}

func TestSetField(t *testing.T) {
	ctx := context.Background()
	s := storage.NewMemoryStore()
	c := mustOpen(t, s)

	require.NoError(t, c.SetField(ctx, FieldName, "Jane Doe"))
	require.NoError(t, c.SetField(ctx, FieldSummary, "  verbatim  "))

	assert.Equal(t, "Jane Doe", c.Data().Name)
	assert.Equal(t, "  verbatim  ", c.Data().Summary)
	assert.Equal(t, "Jane Doe", storedData(t, s).Name)

	err := c.SetField(ctx, ScalarField("nickname"), "x")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestSetEntryField_ChangesOnlyTarget(t *testing.T) {
	fieldsByCollection := map[Collection][]string{}
	for _, coll := range AllCollections() {
		names, err := FieldNames(coll)
		require.NoError(t, err)
		fieldsByCollection[coll] = names
	}

	for coll, names := range fieldsByCollection {
		for _, name := range names {
			if name == TechStackField {
				continue
			}
			t.Run(string(coll)+"/"+name, func(t *testing.T) {
				ctx := context.Background()
				c := mustOpen(t, storage.NewMemoryStore())
				require.NoError(t, c.AddEntry(ctx, coll))
				require.NoError(t, c.AddEntry(ctx, coll))
				require.NoError(t, c.SetField(ctx, FieldName, "Jane"))

				before := c.Data()
				require.NoError(t, c.SetEntryField(ctx, coll, 1, name, "changed"))
				after := c.Data()

				// Reset the targeted field and the rest must be identical.
				require.NoError(t, c.SetEntryField(ctx, coll, 1, name, ""))
				assert.Equal(t, before, c.Data())

				beforeJSON, _ := json.Marshal(before)
				afterJSON, _ := json.Marshal(after)
				assert.NotEqual(t, string(beforeJSON), string(afterJSON))
				assert.Contains(t, string(afterJSON), `"`+name+`":"changed"`)
			})
		}
	}
}

func TestTypedSetters(t *testing.T) {
	ctx := context.Background()
	c := mustOpen(t, storage.NewMemoryStore())

	require.NoError(t, c.SetEducation(ctx, 0, EducationCGPA, "3.8"))
	require.NoError(t, c.SetWorkExperience(ctx, 0, WorkJobTitle, "SWE"))
	require.NoError(t, c.SetProject(ctx, 0, ProjectDemoLink, "https://demo"))
	require.NoError(t, c.SetCertification(ctx, 0, CertificationLink, "https://cert"))
	require.NoError(t, c.SetAchievement(ctx, 0, AchievementDescription, "won"))
	require.NoError(t, c.SetPosition(ctx, 0, PositionDuration, "2020"))
	require.NoError(t, c.SetPublication(ctx, 0, PublicationConference, "ICSE"))

	d := c.Data()
	assert.Equal(t, "3.8", d.Education[0].CGPA)
	assert.Equal(t, "SWE", d.WorkExperience[0].JobTitle)
	assert.Equal(t, "https://demo", d.Projects[0].DemoLink)
	assert.Equal(t, "https://cert", d.Certifications[0].Link)
	assert.Equal(t, "won", d.Achievements[0].Description)
	assert.Equal(t, "2020", d.PositionOfResponsibility[0].Duration)
	assert.Equal(t, "ICSE", d.Publications[0].Conference)

	err := c.SetEducation(ctx, 0, Field[types.Education]{}, "x")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestSetEntryField_Errors(t *testing.T) {
	ctx := context.Background()
	s := storage.NewMemoryStore()
	c := mustOpen(t, s)
	require.NoError(t, c.Persist(ctx))
	before := c.Data()

	err := c.SetEntryField(ctx, Education, 1, "institution", "MIT")
	var idxErr *IndexError
	require.ErrorAs(t, err, &idxErr)
	assert.Equal(t, Education, idxErr.Collection)
	assert.Equal(t, 1, idxErr.Index)
	assert.Equal(t, 1, idxErr.Len)

	err = c.SetEntryField(ctx, Education, -1, "institution", "MIT")
	assert.ErrorAs(t, err, &idxErr)

	err = c.SetEntryField(ctx, Education, 0, "title", "MIT")
	assert.ErrorIs(t, err, ErrUnknownField)

	err = c.SetEntryField(ctx, Collection("hobbies"), 0, "name", "x")
	assert.ErrorIs(t, err, ErrUnknownCollection)

	assert.Equal(t, before, c.Data())
	assert.Equal(t, before, storedData(t, s))
}

func TestAddRemove_Inverse(t *testing.T) {
	for _, coll := range AllCollections() {
		t.Run(string(coll), func(t *testing.T) {
			ctx := context.Background()
			c := mustOpen(t, storage.NewMemoryStore())
			names, _ := FieldNames(coll)
			require.NoError(t, c.SetEntryField(ctx, coll, 0, names[0], "first"))

			before := c.Data()
			n, _ := c.Len(coll)

			require.NoError(t, c.AddEntry(ctx, coll))
			grown, _ := c.Len(coll)
			assert.Equal(t, n+1, grown)

			require.NoError(t, c.RemoveEntry(ctx, coll, n))
			assert.Equal(t, before, c.Data())
		})
	}
}

func TestAddEntry_BlankDefaults(t *testing.T) {
	ctx := context.Background()
	c := mustOpen(t, storage.NewMemoryStore())

	require.NoError(t, c.AddEntry(ctx, Projects))
	d := c.Data()
	require.Len(t, d.Projects, 2)
	assert.Equal(t, types.NewProject(), d.Projects[1])

	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "null")
}

func TestRemoveEntry_ShiftsAndEmpties(t *testing.T) {
	ctx := context.Background()
	c := mustOpen(t, storage.NewMemoryStore())

	require.NoError(t, c.AddEntry(ctx, Certifications))
	require.NoError(t, c.AddEntry(ctx, Certifications))
	for i, name := range []string{"A", "B", "C"} {
		require.NoError(t, c.SetCertification(ctx, i, CertificationName, name))
	}

	require.NoError(t, c.RemoveEntry(ctx, Certifications, 1))
	d := c.Data()
	require.Len(t, d.Certifications, 2)
	assert.Equal(t, "A", d.Certifications[0].Name)
	assert.Equal(t, "C", d.Certifications[1].Name)

	require.NoError(t, c.RemoveEntry(ctx, Certifications, 0))
	require.NoError(t, c.RemoveEntry(ctx, Certifications, 0))
	n, _ := c.Len(Certifications)
	assert.Equal(t, 0, n)

	var idxErr *IndexError
	assert.ErrorAs(t, c.RemoveEntry(ctx, Certifications, 0), &idxErr)
}

func TestSetSkills(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "comma list", text: "React, Node, SQL", want: []string{"React", "Node", "SQL"}},
		{name: "single", text: "Go", want: []string{"Go"}},
		{name: "empty", text: "", want: []string{}},
		{name: "whitespace only", text: "   ", want: []string{}},
		{name: "interior empty piece kept", text: "a,,b", want: []string{"a", "", "b"}},
		{name: "trailing comma", text: "a, ", want: []string{"a", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			s := storage.NewMemoryStore()
			c := mustOpen(t, s)

			require.NoError(t, c.SetSkills(ctx, Technical, tt.text))
			assert.Equal(t, tt.want, c.Data().Skills.Technical)
			assert.Equal(t, []string{}, c.Data().Skills.SoftSkills)

			// Stable across persist and restore.
			assert.Equal(t, tt.want, mustOpen(t, s).Data().Skills.Technical)
		})
	}
}

func TestSetSkills_UnknownType(t *testing.T) {
	ctx := context.Background()
	c := mustOpen(t, storage.NewMemoryStore())
	assert.ErrorIs(t, c.SetSkills(ctx, SkillType("hard"), "x"), ErrUnknownSkillType)
}

func TestSetTechStack(t *testing.T) {
	ctx := context.Background()
	c := mustOpen(t, storage.NewMemoryStore())
	require.NoError(t, c.AddEntry(ctx, Projects))

	require.NoError(t, c.SetTechStack(ctx, 1, "Go , Postgres"))
	require.NoError(t, c.SetEntryField(ctx, Projects, 0, TechStackField, "React"))

	d := c.Data()
	assert.Equal(t, []string{"React"}, d.Projects[0].TechStack)
	assert.Equal(t, []string{"Go", "Postgres"}, d.Projects[1].TechStack)

	var idxErr *IndexError
	assert.ErrorAs(t, c.SetTechStack(ctx, 5, "x"), &idxErr)
}

func TestPersistFailure_LeavesStateUnchanged(t *testing.T) {
	ctx := context.Background()
	inner := storage.NewMemoryStore()
	c := mustOpen(t, inner)
	require.NoError(t, c.SetField(ctx, FieldName, "Jane"))

	boom := errors.New("disk full")
	c.store = &failingStore{Store: inner, err: boom}

	err := c.SetField(ctx, FieldName, "John")
	var perr *PersistError
	require.ErrorAs(t, err, &perr)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "Jane", c.Data().Name)

	assert.Error(t, c.AddEntry(ctx, Education))
	n, _ := c.Len(Education)
	assert.Equal(t, 1, n)
}

func TestData_IsACopy(t *testing.T) {
	ctx := context.Background()
	c := mustOpen(t, storage.NewMemoryStore())
	require.NoError(t, c.SetSkills(ctx, Technical, "Go"))

	d := c.Data()
	d.Skills.Technical[0] = "Rust"
	d.Education[0].Institution = "Elsewhere"

	assert.Equal(t, "Go", c.Data().Skills.Technical[0])
	assert.Equal(t, "", c.Data().Education[0].Institution)
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	s := storage.NewMemoryStore()
	c := mustOpen(t, s)
	require.NoError(t, c.SetField(ctx, FieldName, "Jane"))

	require.NoError(t, c.Reset(ctx))
	assert.Equal(t, types.NewResumeData(), c.Data())

	_, err := s.Get(ctx, storage.KeyResumeData)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestScenario_ReplaceEducationEntry(t *testing.T) {
	ctx := context.Background()
	s := storage.NewMemoryStore()
	c := mustOpen(t, s)

	require.NoError(t, c.SetField(ctx, FieldName, "Jane Doe"))
	require.NoError(t, c.SetEducation(ctx, 0, EducationInstitution, "MIT"))
	require.NoError(t, c.RemoveEntry(ctx, Education, 0))
	require.NoError(t, c.AddEntry(ctx, Education))
	require.NoError(t, c.SetEducation(ctx, 0, EducationInstitution, "Stanford"))

	for _, d := range []types.ResumeData{c.Data(), mustOpen(t, s).Data()} {
		assert.Equal(t, "Jane Doe", d.Name)
		assert.Equal(t, []types.Education{{Institution: "Stanford"}}, d.Education)
	}
}

func TestParsers(t *testing.T) {
	f, err := ParseScalarField("linkedin")
	require.NoError(t, err)
	assert.Equal(t, FieldLinkedIn, f)
	_, err = ParseScalarField("Name")
	assert.ErrorIs(t, err, ErrUnknownField)

	coll, err := ParseCollection("positionOfResponsibility")
	require.NoError(t, err)
	assert.Equal(t, Positions, coll)
	_, err = ParseCollection("skills")
	assert.ErrorIs(t, err, ErrUnknownCollection)

	kind, err := ParseSkillType("softSkills")
	require.NoError(t, err)
	assert.Equal(t, SoftSkills, kind)

	names, err := FieldNames(Projects)
	require.NoError(t, err)
	assert.Equal(t, []string{"demoLink", "description", "techStack", "title"}, names)

	assert.Len(t, ScalarFields(), 8)
}
