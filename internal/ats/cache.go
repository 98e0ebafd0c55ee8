package ats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jonathan/resume-builder/internal/storage"
	"github.com/jonathan/resume-builder/internal/types"
)

// SaveCached writes score, feedback and keywords under their own storage keys.
// The old score is removed first and the new one written last, so a failed write
// leaves no cached result rather than a mix of old and new values.
func SaveCached(ctx context.Context, store storage.Store, result *types.AnalysisResult) error {
	if err := store.Delete(ctx, storage.KeyATSScore); err != nil {
		return err
	}
	values := []struct {
		key   string
		value any
	}{
		{storage.KeyATSFeedback, nonNil(result.Feedback)},
		{storage.KeyATSKeywords, nonNil(result.Keywords)},
		{storage.KeyATSScore, result.Score},
	}
	for _, v := range values {
		raw, err := json.Marshal(v.value)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", v.key, err)
		}
		if err := store.Set(ctx, v.key, raw); err != nil {
			return err
		}
	}
	return nil
}

// LoadCached returns the last cached result. ok is false when no score has been cached.
func LoadCached(ctx context.Context, store storage.Store) (result *types.AnalysisResult, ok bool, err error) {
	raw, err := store.Get(ctx, storage.KeyATSScore)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	result = &types.AnalysisResult{Feedback: []string{}, Keywords: []string{}}
	if err := json.Unmarshal(raw, &result.Score); err != nil {
		return nil, false, nil
	}
	if err := loadList(ctx, store, storage.KeyATSFeedback, &result.Feedback); err != nil {
		return nil, false, err
	}
	if err := loadList(ctx, store, storage.KeyATSKeywords, &result.Keywords); err != nil {
		return nil, false, err
	}
	return result, true, nil
}

// ClearCached removes every cached analysis key.
func ClearCached(ctx context.Context, store storage.Store) error {
	for _, key := range []string{storage.KeyATSScore, storage.KeyATSFeedback, storage.KeyATSKeywords} {
		if err := store.Delete(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

func loadList(ctx context.Context, store storage.Store, key string, dst *[]string) error {
	raw, err := store.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	var list []string
	if json.Unmarshal(raw, &list) == nil && list != nil {
		*dst = list
	}
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
