// Package historytest provides a conformance suite run against every history.Store implementation.
package historytest

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-ats/internal/history"
	"github.com/jonathan/resume-ats/internal/types"
)

// Factory returns an empty store. It may t.Skip when the backend is unavailable.
type Factory func(t *testing.T) history.Store

// Sample returns a record with a recognizable result.
func Sample(userID uuid.UUID, score int) types.AnalysisRecord {
	return types.AnalysisRecord{
		UserID:   userID,
		JobTitle: types.StringPtr("Platform Engineer"),
		AnalysisResult: types.AnalysisResult{
			OverallScore:    score,
			SkillsScore:     60,
			ExperienceScore: 85,
			FormatScore:     80,
			KeywordsScore:   60,
			Suggestions:     []string{"Add metrics"},
			StrongPoints:    []string{"Clear structure"},
			MissingKeywords: []string{"education"},
			MatchedKeywords: []string{"sql", "aws"},
			Recommendations: []string{},
		},
	}
}

// Run executes the suite.
func Run(t *testing.T, newStore Factory) {
	t.Run("AppendAssignsIdentity", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		user := uuid.New()

		before := time.Now().Add(-time.Minute)
		saved, err := s.Append(ctx, Sample(user, 71))
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, saved.ID)
		assert.True(t, saved.AnalyzedAt.After(before))
		assert.Equal(t, user, saved.UserID)
	})

	t.Run("ListRoundTrip", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		user := uuid.New()

		in := Sample(user, 71)
		in.Company = types.StringPtr("Acme")
		saved, err := s.Append(ctx, in)
		require.NoError(t, err)

		list, err := s.ListByUser(ctx, user)
		require.NoError(t, err)
		require.Len(t, list, 1)

		got := list[0]
		assert.Equal(t, saved.ID, got.ID)
		assert.Equal(t, 71, got.OverallScore)
		assert.Equal(t, 85, got.ExperienceScore)
		require.NotNil(t, got.JobTitle)
		assert.Equal(t, "Platform Engineer", *got.JobTitle)
		require.NotNil(t, got.Company)
		assert.Equal(t, "Acme", *got.Company)
		assert.Equal(t, []string{"sql", "aws"}, got.MatchedKeywords)
		assert.Equal(t, []string{"Add metrics"}, got.Suggestions)
		assert.Empty(t, got.Recommendations)
	})

	t.Run("ListIsPerUserNewestFirst", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		alice, bob := uuid.New(), uuid.New()

		first, err := s.Append(ctx, Sample(alice, 60))
		require.NoError(t, err)
		time.Sleep(5 * time.Millisecond)
		second, err := s.Append(ctx, Sample(alice, 85))
		require.NoError(t, err)
		_, err = s.Append(ctx, Sample(bob, 40))
		require.NoError(t, err)

		list, err := s.ListByUser(ctx, alice)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, second.ID, list[0].ID)
		assert.Equal(t, first.ID, list[1].ID)

		empty, err := s.ListByUser(ctx, uuid.New())
		require.NoError(t, err)
		assert.Empty(t, empty)
	})

	t.Run("DeleteRemovesExactlyOne", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		user := uuid.New()

		keep, err := s.Append(ctx, Sample(user, 50))
		require.NoError(t, err)
		gone, err := s.Append(ctx, Sample(user, 70))
		require.NoError(t, err)

		require.NoError(t, s.Delete(ctx, user, gone.ID))

		list, err := s.ListByUser(ctx, user)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, keep.ID, list[0].ID)

		err = s.Delete(ctx, user, gone.ID)
		var nf *history.NotFoundError
		require.True(t, errors.As(err, &nf), "second delete: %v", err)
		assert.Equal(t, gone.ID, nf.ID)
	})

	t.Run("DeleteEnforcesOwnership", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		owner, other := uuid.New(), uuid.New()

		rec, err := s.Append(ctx, Sample(owner, 50))
		require.NoError(t, err)

		err = s.Delete(ctx, other, rec.ID)
		var nf *history.NotFoundError
		require.True(t, errors.As(err, &nf))

		list, err := s.ListByUser(ctx, owner)
		require.NoError(t, err)
		assert.Len(t, list, 1)
	})

	t.Run("DeleteUnknown", func(t *testing.T) {
		s := newStore(t)
		err := s.Delete(context.Background(), uuid.New(), uuid.New())
		var nf *history.NotFoundError
		assert.True(t, errors.As(err, &nf))
	})

	t.Run("ConcurrentAppends", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		user := uuid.New()

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func(score int) {
				defer wg.Done()
				_, err := s.Append(ctx, Sample(user, score))
				assert.NoError(t, err)
			}(50 + i)
		}
		wg.Wait()

		list, err := s.ListByUser(ctx, user)
		require.NoError(t, err)
		assert.Len(t, list, 10)
	})
}
