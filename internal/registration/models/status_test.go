package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReviewStatus(t *testing.T) {
	for _, valid := range []string{"submitted", "under_review", "approved", "rejected", "requires_documents"} {
		status, err := ParseReviewStatus(valid)
		require.NoError(t, err, valid)
		assert.Equal(t, valid, status.String())
	}

	_, err := ParseReviewStatus("pending")
	require.Error(t, err)
}

func TestStatusTransitions(t *testing.T) {
	t.Run("terminal states allow nothing", func(t *testing.T) {
		for _, terminal := range []ReviewStatus{StatusApproved, StatusRejected} {
			for _, target := range []ReviewStatus{StatusSubmitted, StatusUnderReview, StatusApproved, StatusRejected, StatusRequiresDocuments} {
				assert.False(t, terminal.CanTransitionTo(target), "%s -> %s", terminal, target)
			}
		}
	})

	t.Run("nothing moves back to submitted", func(t *testing.T) {
		assert.False(t, StatusUnderReview.CanTransitionTo(StatusSubmitted))
		assert.False(t, StatusRequiresDocuments.CanTransitionTo(StatusSubmitted))
	})

	t.Run("resubmission may land on under_review again", func(t *testing.T) {
		assert.True(t, StatusUnderReview.CanTransitionTo(StatusUnderReview))
	})

	t.Run("other same-state decisions are rejected", func(t *testing.T) {
		assert.False(t, StatusRequiresDocuments.CanTransitionTo(StatusRequiresDocuments))
		assert.False(t, StatusSubmitted.CanTransitionTo(StatusSubmitted))
	})

	t.Run("active states can reach decisions", func(t *testing.T) {
		assert.True(t, StatusSubmitted.CanTransitionTo(StatusUnderReview))
		assert.True(t, StatusUnderReview.CanTransitionTo(StatusApproved))
		assert.True(t, StatusUnderReview.CanTransitionTo(StatusRejected))
		assert.True(t, StatusUnderReview.CanTransitionTo(StatusRequiresDocuments))
		assert.True(t, StatusRequiresDocuments.CanTransitionTo(StatusApproved))
	})
}

func TestIsTerminal(t *testing.T) {
	assert.True(t, StatusApproved.IsTerminal())
	assert.True(t, StatusRejected.IsTerminal())
	assert.False(t, StatusSubmitted.IsTerminal())
	assert.False(t, StatusUnderReview.IsTerminal())
	assert.False(t, StatusRequiresDocuments.IsTerminal())
}
