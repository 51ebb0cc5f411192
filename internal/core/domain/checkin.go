package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidCheckIn = errors.New("invalid check-in data")
	ErrNoteTooLong    = errors.New("note is too long (max 280 chars)")
)

const MaxNoteLen = 280

// CheckIn records that a goal was completed at CompletedAt. Several
// check-ins may fall on the same day; scoring counts the day once.
type CheckIn struct {
	ID     string `json:"id" db:"id"`
	GoalID string `json:"goal_id" db:"goal_id"`
	UserID string `json:"user_id" db:"user_id"`

	CompletedAt time.Time `json:"completed_at" db:"completed_at"`
	Note        string    `json:"note" db:"note"`

	Version   int        `json:"version" db:"version"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

func NewCheckIn(goalID, userID string, completedAt time.Time, note string) *CheckIn {
	now := time.Now().UTC()
	return &CheckIn{
		GoalID:      goalID,
		UserID:      userID,
		CompletedAt: completedAt.UTC(),
		Note:        strings.TrimSpace(note),
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (c *CheckIn) Validate() error {
	if strings.TrimSpace(c.GoalID) == "" {
		return errors.Join(ErrInvalidCheckIn, errors.New("goal_id is required"))
	}
	if strings.TrimSpace(c.UserID) == "" {
		return errors.Join(ErrInvalidCheckIn, errors.New("user_id is required"))
	}
	if c.CompletedAt.IsZero() {
		return errors.Join(ErrInvalidCheckIn, errors.New("completed_at is required"))
	}
	if len(c.Note) > MaxNoteLen {
		return ErrNoteTooLong
	}
	return nil
}

// CompletionDates extracts the timestamps of live check-ins.
func CompletionDates(checkIns []*CheckIn) []time.Time {
	dates := make([]time.Time, 0, len(checkIns))
	for _, c := range checkIns {
		if c == nil || c.DeletedAt != nil {
			continue
		}
		dates = append(dates, c.CompletedAt)
	}
	return dates
}
