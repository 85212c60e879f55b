package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-ats/internal/history"
	"github.com/jonathan/resume-ats/internal/history/historytest"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteStore(t *testing.T) {
	historytest.Run(t, func(t *testing.T) history.Store {
		return openTemp(t)
	})
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	user := uuid.New()

	s, err := Open(path)
	require.NoError(t, err)
	saved, err := s.Append(context.Background(), historytest.Sample(user, 64))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	list, err := s.ListByUser(context.Background(), user)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, saved.ID, list[0].ID)
	assert.Equal(t, 64, list[0].OverallScore)
	assert.True(t, saved.AnalyzedAt.Equal(list[0].AnalyzedAt))
}

func TestRowConversion_NilListsBecomeEmpty(t *testing.T) {
	rec := fromRow(analysisRow{ID: uuid.New(), OverallScore: 10})
	assert.NotNil(t, rec.Suggestions)
	assert.NotNil(t, rec.MatchedKeywords)
}
