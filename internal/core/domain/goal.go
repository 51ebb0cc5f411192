package domain

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrGoalTitleEmpty    = errors.New("goal title cannot be empty")
	ErrGoalTitleTooLong  = errors.New("goal title is too long (max 100 chars)")
	ErrGoalDescTooLong   = errors.New("goal description is too long (max 500 chars)")
	ErrGoalInvalidUserID = errors.New("invalid user id")
	ErrInvalidColor      = errors.New("invalid color format (must be #RRGGBB)")
	ErrInvalidDifficulty = errors.New("invalid difficulty (must be easy, medium, or hard)")
	ErrInvalidDuration   = errors.New("duration cannot be negative")
	ErrInvalidTarget     = errors.New("monthly target must be between 0 and 31")
	ErrGoalArchived      = errors.New("cannot update an archived goal")
)

var colorRegex = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
	DefaultIcon      = "default_icon"
	MaxTitleLen      = 100
	MaxDescLen       = 500
	MaxMonthlyTarget = 31
)

// Goal is a tracked daily action. CurrentRun, LongestRun and FlexEarned are
// snapshots maintained by the consistency worker. SnapshotDay is the owner's
// local date (YYYY-MM-DD) of the latest snapshot.
type Goal struct {
	ID              string     `json:"id" db:"id"`
	UserID          string     `json:"user_id" db:"user_id"`
	Title           string     `json:"title" db:"title"`
	Description     string     `json:"description,omitempty" db:"description"`
	Color           string     `json:"color" db:"color"`
	Icon            string     `json:"icon" db:"icon"`
	DurationMinutes int        `json:"duration_minutes" db:"duration_minutes"`
	Difficulty      string     `json:"difficulty" db:"difficulty"`
	MonthlyTarget   int        `json:"monthly_target" db:"monthly_target"`
	FlexUsed        int        `json:"flex_used" db:"flex_used"`
	CurrentRun      int        `json:"current_run" db:"current_run"`
	LongestRun      int        `json:"longest_run" db:"longest_run"`
	FlexEarned      int        `json:"flex_earned" db:"flex_earned"`
	SnapshotDay     string     `json:"snapshot_day,omitempty" db:"snapshot_day"`
	StartDate       time.Time  `json:"start_date" db:"start_date"`
	ArchivedAt      *time.Time `json:"archived_at,omitempty" db:"archived_at"`
	Version         int        `json:"version" db:"version"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" db:"updated_at"`
	DeletedAt       *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

type GoalAttributes struct {
	Title           string
	Description     string
	Color           string
	Icon            string
	DurationMinutes int
	Difficulty      string
	MonthlyTarget   int
}

func (a GoalAttributes) normalize() (GoalAttributes, error) {
	a.Title = strings.TrimSpace(a.Title)
	a.Description = strings.TrimSpace(a.Description)
	a.Difficulty = strings.ToLower(strings.TrimSpace(a.Difficulty))

	if a.Title == "" {
		return a, ErrGoalTitleEmpty
	}
	if len(a.Title) > MaxTitleLen {
		return a, ErrGoalTitleTooLong
	}
	if len(a.Description) > MaxDescLen {
		return a, ErrGoalDescTooLong
	}
	if a.Color != "" && !colorRegex.MatchString(a.Color) {
		return a, ErrInvalidColor
	}
	if a.DurationMinutes < 0 {
		return a, ErrInvalidDuration
	}
	if a.MonthlyTarget < 0 || a.MonthlyTarget > MaxMonthlyTarget {
		return a, ErrInvalidTarget
	}

	switch a.Difficulty {
	case "":
		a.Difficulty = DifficultyEasy
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
	default:
		return a, ErrInvalidDifficulty
	}

	if a.Icon == "" {
		a.Icon = DefaultIcon
	}
	return a, nil
}

func NewGoal(userID string, attrs GoalAttributes) (*Goal, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrGoalInvalidUserID
	}

	clean, err := attrs.normalize()
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	g := &Goal{
		ID:        uuid.NewString(),
		UserID:    userID,
		StartDate: now,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	g.apply(clean)
	return g, nil
}

func (g *Goal) apply(a GoalAttributes) {
	g.Title = a.Title
	g.Description = a.Description
	g.Color = a.Color
	g.Icon = a.Icon
	g.DurationMinutes = a.DurationMinutes
	g.Difficulty = a.Difficulty
	g.MonthlyTarget = a.MonthlyTarget
}

func (g *Goal) Update(attrs GoalAttributes) error {
	if g.ArchivedAt != nil {
		return ErrGoalArchived
	}

	clean, err := attrs.normalize()
	if err != nil {
		return err
	}

	g.apply(clean)
	g.UpdatedAt = time.Now().UTC()
	return nil
}

func (g *Goal) Archive() {
	if g.ArchivedAt != nil {
		return
	}
	now := time.Now().UTC()
	g.ArchivedAt = &now
	g.UpdatedAt = now
}

func (g *Goal) Restore() {
	if g.ArchivedAt == nil {
		return
	}
	g.ArchivedAt = nil
	g.UpdatedAt = time.Now().UTC()
}

// UpdateSnapshot reports whether any snapshot field changed, the day
// included.
func (g *Goal) UpdateSnapshot(current, longest, flexEarned int, day string) bool {
	if g.CurrentRun == current && g.LongestRun == longest && g.FlexEarned == flexEarned && g.SnapshotDay == day {
		return false
	}
	g.CurrentRun = current
	g.LongestRun = longest
	g.FlexEarned = flexEarned
	g.SnapshotDay = day
	g.UpdatedAt = time.Now().UTC()
	return true
}
