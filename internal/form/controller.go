// Package form owns the in-progress resume and writes every change through to durable storage.
package form

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/schemas"
	"github.com/jonathan/resume-builder/internal/storage"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/sirupsen/logrus"
)

// Controller is the single source of truth for one resume being edited.
// Every mutation is applied to a copy, persisted, and only then made current.
// A Controller is not safe for concurrent use; callers serialize access.
type Controller struct {
	store storage.Store
	data  types.ResumeData
	log   *logrus.Entry
}

// Open restores the form state from store. Absent, undecodable or malformed content
// falls back to the blank default without an error. A failed read returns a
// *RestoreError and no Controller.
func Open(ctx context.Context, store storage.Store) (*Controller, error) {
	c := &Controller{
		store: store,
		log:   observability.Logger().WithField("component", "form"),
	}
	data, err := c.restore(ctx)
	if err != nil {
		return nil, err
	}
	c.data = data
	return c, nil
}

func (c *Controller) restore(ctx context.Context) (types.ResumeData, error) {
	raw, err := c.store.Get(ctx, storage.KeyResumeData)
	if errors.Is(err, storage.ErrNotFound) {
		return types.NewResumeData(), nil
	}
	if err != nil {
		return types.ResumeData{}, &RestoreError{Cause: err}
	}

	if err := schemas.ValidateResumeData(raw); err != nil {
		c.log.WithError(err).Debug("stored form state rejected, starting blank")
		return types.NewResumeData(), nil
	}

	var data types.ResumeData
	if err := json.Unmarshal(raw, &data); err != nil {
		c.log.WithError(err).Debug("stored form state undecodable, starting blank")
		return types.NewResumeData(), nil
	}
	data.FillMissingCollections()
	data.Normalize()
	return data, nil
}

// Data returns a deep copy of the current state.
func (c *Controller) Data() types.ResumeData {
	return c.data.Clone()
}

// Len reports the number of entries in a collection.
func (c *Controller) Len(coll Collection) (int, error) {
	ops, err := lookup(coll)
	if err != nil {
		return 0, err
	}
	return ops.length(&c.data), nil
}

// Persist writes the current state to storage.
func (c *Controller) Persist(ctx context.Context) error {
	return c.write(ctx, c.data)
}

// Reset clears the stored state and returns to the blank default.
func (c *Controller) Reset(ctx context.Context) error {
	if err := c.store.Delete(ctx, storage.KeyResumeData); err != nil {
		return &PersistError{Cause: err}
	}
	c.data = types.NewResumeData()
	return nil
}

// Replace swaps the whole state for data.
func (c *Controller) Replace(ctx context.Context, data types.ResumeData) error {
	return c.update(ctx, func(d *types.ResumeData) error {
		*d = data.Clone()
		d.Normalize()
		return nil
	})
}

// SetField replaces one scalar field.
func (c *Controller) SetField(ctx context.Context, f ScalarField, value string) error {
	ref, ok := scalarRefs[f]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, f)
	}
	return c.update(ctx, func(d *types.ResumeData) error {
		*ref(d) = value
		return nil
	})
}

// SetSkills replaces one skill list with the comma separated pieces of text.
func (c *Controller) SetSkills(ctx context.Context, kind SkillType, text string) error {
	if _, err := ParseSkillType(string(kind)); err != nil {
		return err
	}
	list := SplitList(text)
	return c.update(ctx, func(d *types.ResumeData) error {
		if kind == Technical {
			d.Skills.Technical = list
		} else {
			d.Skills.SoftSkills = list
		}
		return nil
	})
}

// SetTechStack replaces the tech stack of one project with the comma separated pieces of text.
func (c *Controller) SetTechStack(ctx context.Context, index int, text string) error {
	list := SplitList(text)
	return c.update(ctx, func(d *types.ResumeData) error {
		if err := projectList.check(d.Projects, index); err != nil {
			return err
		}
		d.Projects[index].TechStack = list
		return nil
	})
}

// SetEducation replaces one field of one education entry.
func (c *Controller) SetEducation(ctx context.Context, index int, f Field[types.Education], value string) error {
	return setEntry(ctx, c, educationList, index, f, value)
}

// SetWorkExperience replaces one field of one work experience entry.
func (c *Controller) SetWorkExperience(ctx context.Context, index int, f Field[types.WorkExperience], value string) error {
	return setEntry(ctx, c, workList, index, f, value)
}

// SetProject replaces one string field of one project.
func (c *Controller) SetProject(ctx context.Context, index int, f Field[types.Project], value string) error {
	return setEntry(ctx, c, projectList, index, f, value)
}

// SetCertification replaces one field of one certification.
func (c *Controller) SetCertification(ctx context.Context, index int, f Field[types.Certification], value string) error {
	return setEntry(ctx, c, certificationList, index, f, value)
}

// SetAchievement replaces one field of one achievement.
func (c *Controller) SetAchievement(ctx context.Context, index int, f Field[types.Achievement], value string) error {
	return setEntry(ctx, c, achievementList, index, f, value)
}

// SetPosition replaces one field of one position of responsibility.
func (c *Controller) SetPosition(ctx context.Context, index int, f Field[types.Position], value string) error {
	return setEntry(ctx, c, positionList, index, f, value)
}

// SetPublication replaces one field of one publication.
func (c *Controller) SetPublication(ctx context.Context, index int, f Field[types.Publication], value string) error {
	return setEntry(ctx, c, publicationList, index, f, value)
}

// SetEntryField resolves a field by name within a collection and replaces its value.
// The project field techStack takes comma separated text.
func (c *Controller) SetEntryField(ctx context.Context, coll Collection, index int, name, value string) error {
	if coll == Projects && name == TechStackField {
		return c.SetTechStack(ctx, index, value)
	}
	ops, err := lookup(coll)
	if err != nil {
		return err
	}
	return c.update(ctx, func(d *types.ResumeData) error {
		return ops.setField(d, index, name, value)
	})
}

// AddEntry appends one blank entry to a collection.
func (c *Controller) AddEntry(ctx context.Context, coll Collection) error {
	ops, err := lookup(coll)
	if err != nil {
		return err
	}
	return c.update(ctx, func(d *types.ResumeData) error {
		ops.add(d)
		return nil
	})
}

// RemoveEntry removes the entry at index, shifting later entries up. A collection may be emptied.
func (c *Controller) RemoveEntry(ctx context.Context, coll Collection, index int) error {
	ops, err := lookup(coll)
	if err != nil {
		return err
	}
	return c.update(ctx, func(d *types.ResumeData) error {
		return ops.remove(d, index)
	})
}

func setEntry[E any](ctx context.Context, c *Controller, l entryList[E], index int, f Field[E], value string) error {
	if f.ref == nil {
		return fmt.Errorf("%w: zero Field for %s", ErrUnknownField, l.name)
	}
	return c.update(ctx, func(d *types.ResumeData) error {
		return l.set(d, index, f, value)
	})
}

// update applies fn to a copy of the state, persists the copy and then makes it current.
func (c *Controller) update(ctx context.Context, fn func(*types.ResumeData) error) error {
	next := c.data.Clone()
	if err := fn(&next); err != nil {
		return err
	}
	if err := c.write(ctx, next); err != nil {
		return err
	}
	c.data = next
	return nil
}

func (c *Controller) write(ctx context.Context, data types.ResumeData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return &PersistError{Cause: err}
	}
	if err := c.store.Set(ctx, storage.KeyResumeData, raw); err != nil {
		c.log.WithError(err).Warn("form state not persisted")
		return &PersistError{Cause: err}
	}
	return nil
}
