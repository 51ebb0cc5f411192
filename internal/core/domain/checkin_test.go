package domain

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewCheckIn(t *testing.T) {
	loc := time.FixedZone("UTC+1", 60*60)
	at := time.Date(2026, 1, 28, 10, 0, 0, 0, loc)

	c := NewCheckIn("goal-1", "user-1", at, "  felt great ")

	t.Run("Should set identity fields", func(t *testing.T) {
		assert.Equal(t, "goal-1", c.GoalID)
		assert.Equal(t, "user-1", c.UserID)
		assert.Equal(t, "felt great", c.Note)
	})

	t.Run("Should initialize sync fields", func(t *testing.T) {
		assert.Equal(t, 1, c.Version)
		assert.False(t, c.CreatedAt.IsZero())
		assert.Nil(t, c.DeletedAt)
	})

	t.Run("Should store CompletedAt in UTC", func(t *testing.T) {
		assert.Equal(t, at.UTC(), c.CompletedAt)
		assert.Equal(t, "UTC", c.CompletedAt.Location().String())
	})
}

func TestCheckIn_Validate(t *testing.T) {
	now := time.Now()
	tests := []struct {
		name     string
		checkIn  *CheckIn
		wantErr  error
		errorMsg string
	}{
		{name: "Valid", checkIn: &CheckIn{GoalID: "g", UserID: "u", CompletedAt: now}},
		{name: "Missing GoalID", checkIn: &CheckIn{GoalID: " ", UserID: "u", CompletedAt: now}, wantErr: ErrInvalidCheckIn, errorMsg: "goal_id is required"},
		{name: "Missing UserID", checkIn: &CheckIn{GoalID: "g", CompletedAt: now}, wantErr: ErrInvalidCheckIn, errorMsg: "user_id is required"},
		{name: "Zero date", checkIn: &CheckIn{GoalID: "g", UserID: "u"}, wantErr: ErrInvalidCheckIn, errorMsg: "completed_at is required"},
		{name: "Long note", checkIn: &CheckIn{GoalID: "g", UserID: "u", CompletedAt: now, Note: strings.Repeat("n", 281)}, wantErr: ErrNoteTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.checkIn.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.wantErr))
			if tt.errorMsg != "" {
				assert.Contains(t, err.Error(), tt.errorMsg)
			}
		})
	}
}

func TestCompletionDates(t *testing.T) {
	deleted := time.Now()
	d1 := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC)

	got := CompletionDates([]*CheckIn{
		{CompletedAt: d1},
		nil,
		{CompletedAt: d2, DeletedAt: &deleted},
	})

	assert.Equal(t, []time.Time{d1}, got)
}
