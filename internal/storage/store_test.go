package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "nested", "local.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStores(t *testing.T) {
	stores := map[string]func(t *testing.T) Store{
		"memory": func(_ *testing.T) Store { return NewMemoryStore() },
		"sqlite": func(t *testing.T) Store { return openTestSQLite(t) },
	}

	for name, open := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := open(t)

			_, err := s.Get(ctx, KeyResumeData)
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, s.Set(ctx, KeyResumeData, []byte(`{"name":"a"}`)))
			got, err := s.Get(ctx, KeyResumeData)
			require.NoError(t, err)
			assert.Equal(t, `{"name":"a"}`, string(got))

			require.NoError(t, s.Set(ctx, KeyResumeData, []byte(`{"name":"b"}`)))
			got, err = s.Get(ctx, KeyResumeData)
			require.NoError(t, err)
			assert.Equal(t, `{"name":"b"}`, string(got))

			require.NoError(t, s.Set(ctx, KeyATSScore, []byte("87")))
			require.NoError(t, s.Delete(ctx, KeyResumeData))
			_, err = s.Get(ctx, KeyResumeData)
			assert.ErrorIs(t, err, ErrNotFound)

			got, err = s.Get(ctx, KeyATSScore)
			require.NoError(t, err)
			assert.Equal(t, "87", string(got))

			assert.NoError(t, s.Delete(ctx, "missing"))
		})
	}
}

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "local.db")

	s, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, KeyATSKeywords, []byte(`["Go"]`)))
	require.NoError(t, s.Close())

	reopened, err := OpenSQLite(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get(ctx, KeyATSKeywords)
	require.NoError(t, err)
	assert.Equal(t, `["Go"]`, string(got))
}

func TestMemoryStore_ValuesAreCopied(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	buf := []byte("abc")
	require.NoError(t, s.Set(ctx, "k", buf))
	buf[0] = 'z'

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))

	got[1] = 'z'
	again, _ := s.Get(ctx, "k")
	assert.Equal(t, "abc", string(again))
}

func TestOpenSQLite_EmptyPath(t *testing.T) {
	_, err := OpenSQLite("")
	assert.Error(t, err)
}
