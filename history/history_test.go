package history

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"influencer-pipeline/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "publish_history.json"))
}

func outcome(n int) types.PublishOutcome {
	return types.PublishOutcome{
		ContentID:     fmt.Sprintf("content-%03d", n),
		PublishResult: types.PublishResult{ID: fmt.Sprintf("vid_%03d", n), Status: "published", Platform: "simulated"},
	}
}

func TestEnsureCreatesEmptyDocumentOnce(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.Ensure())

	doc, err := s.Load()
	require.NoError(t, err)
	require.Nil(t, doc.LastPublish)
	require.Empty(t, doc.History)

	// A second Ensure must not overwrite recorded entries.
	require.NoError(t, s.Record(outcome(1)))
	require.NoError(t, s.Ensure())

	doc, err = s.Load()
	require.NoError(t, err)
	require.Len(t, doc.History, 1)
}

func TestRecordCapsHistoryAtHundredEntries(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Ensure())

	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	var last time.Time
	for i := 1; i <= 105; i++ {
		last = base.Add(time.Duration(i) * time.Minute)
		now := last
		s.now = func() time.Time { return now }
		require.NoError(t, s.Record(outcome(i)))
	}

	doc, err := s.Load()
	require.NoError(t, err)
	require.Len(t, doc.History, maxEntries)

	// Oldest five dropped, order preserved.
	require.Equal(t, "content-006", doc.History[0].ContentID)
	require.Equal(t, "content-105", doc.History[maxEntries-1].ContentID)

	require.NotNil(t, doc.LastPublish)
	require.True(t, doc.LastPublish.Equal(last))
	require.True(t, doc.History[maxEntries-1].Timestamp.Equal(last))
}

func TestLoadReturnsEmptyDocumentWhenFileAbsent(t *testing.T) {
	s := newTestStore(t)

	doc, err := s.Load()
	require.NoError(t, err)
	require.Nil(t, doc.LastPublish)
	require.Empty(t, doc.History)
}

func TestRecordWithoutEnsureStillWorks(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "nested", "history.json"))
	require.NoError(t, os.MkdirAll(filepath.Dir(s.path), 0755))

	require.NoError(t, s.Record(outcome(1)))

	doc, err := s.Load()
	require.NoError(t, err)
	require.Len(t, doc.History, 1)
	require.Equal(t, "vid_001", doc.History[0].Result.ID)
}

func TestRecordFailsOnCorruptDocument(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.path, []byte("{not json"), 0644))

	require.Error(t, s.Record(outcome(1)))
}
