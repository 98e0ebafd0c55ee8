package form

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownField is returned when a field name is not part of the targeted shape.
	ErrUnknownField = errors.New("unknown field")
	// ErrUnknownCollection is returned when a collection name is not one of the resume collections.
	ErrUnknownCollection = errors.New("unknown collection")
	// ErrUnknownSkillType is returned for skill lists other than technical and softSkills.
	ErrUnknownSkillType = errors.New("unknown skill type")
)

// IndexError reports an entry index outside the bounds of its collection.
type IndexError struct {
	Collection Collection
	Index      int
	Len        int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("%s index %d out of range (length %d)", e.Collection, e.Index, e.Len)
}

// PersistError wraps a failed write of the form state. The in-memory state is unchanged when it is returned.
type PersistError struct {
	Cause error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("failed to persist form state: %v", e.Cause)
}

func (e *PersistError) Unwrap() error {
	return e.Cause
}

// RestoreError wraps a failed read of the stored form state. No Controller is
// returned with it, so nothing can overwrite the stored state.
type RestoreError struct {
	Cause error
}

func (e *RestoreError) Error() string {
	return fmt.Sprintf("failed to restore form state: %v", e.Cause)
}

func (e *RestoreError) Unwrap() error {
	return e.Cause
}
