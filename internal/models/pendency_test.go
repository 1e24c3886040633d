package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayStatePrecedence(t *testing.T) {
	cases := []struct {
		name     string
		pendency Pendency
		want     DisplayState
	}{
		{"complete wins over everything", Pendency{IsComplete: true, IsWaiting: true, IsOptional: true}, DisplayComplete},
		{"waiting wins over optional", Pendency{IsWaiting: true, IsOptional: true}, DisplayWaiting},
		{"optional incomplete", Pendency{IsOptional: true}, DisplayOptionalIncomplete},
		{"required incomplete is the default", Pendency{}, DisplayRequiredIncomplete},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.pendency.DisplayState())
		})
	}
}

func TestActionable(t *testing.T) {
	assert.True(t, Pendency{}.Actionable())
	assert.True(t, Pendency{IsOptional: true}.Actionable())
	assert.False(t, Pendency{IsComplete: true}.Actionable())
	assert.False(t, Pendency{IsWaiting: true}.Actionable())
}

func TestBadgeCompleteWhenNothingPending(t *testing.T) {
	badge := ValidationResult{PendingCount: 0, CompletedCount: 4, TotalCount: 4}.Badge()
	assert.Equal(t, "✓", badge.Text)
	assert.Equal(t, BadgeComplete, badge.State)
}

func TestBadgeWaitingKeepsCompleteText(t *testing.T) {
	badge := ValidationResult{PendingCount: 0, WaitingCount: 1, CompletedCount: 3, TotalCount: 4}.Badge()
	assert.Equal(t, "✓", badge.Text)
	assert.Equal(t, BadgeWaiting, badge.State)
}

func TestBadgePendingShowsProgress(t *testing.T) {
	badge := ValidationResult{PendingCount: 2, CompletedCount: 3, TotalCount: 5}.Badge()
	assert.Equal(t, "3/5", badge.Text)
	assert.Equal(t, BadgePending, badge.State)
}

func TestBadgeStatesAreExclusive(t *testing.T) {
	// A result is never both complete-green and waiting-amber
	for waiting := 0; waiting <= 3; waiting++ {
		badge := ValidationResult{PendingCount: 0, WaitingCount: waiting}.Badge()
		if waiting > 0 {
			assert.Equal(t, BadgeWaiting, badge.State)
		} else {
			assert.Equal(t, BadgeComplete, badge.State)
		}
	}
}
