package month

import "time"

type ContributionMonth struct {
	ID        string    `gorm:"type:uuid;primaryKey"`
	Month     time.Time `gorm:"type:date;not null;uniqueIndex"`
	DueDate   time.Time `gorm:"type:date;not null"`
	IsLocked  bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (m ContributionMonth) TableName() string {
	return "contribution_months"
}

// Label renders the period the way it is shown to members, e.g. "June 2024".
func (m ContributionMonth) Label() string {
	return m.Month.Format("January 2006")
}

type CreateInput struct {
	Month   time.Time
	DueDate *time.Time
}

// StartOfMonth normalizes any date to the first day of its calendar month.
// Contribution months are keyed by this value; callers may hand in any day
// of the month and still land on the same period.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// NextFifth returns the 5th day of the calendar month immediately after t's
// month, rolling December over into January of the next year. It is the due
// date rule for a contribution month and the fine stop-date rule share.
func NextFifth(t time.Time) time.Time {
	year, mon := t.Year(), t.Month()
	if mon == time.December {
		return time.Date(year+1, time.January, 5, 0, 0, 0, 0, time.UTC)
	}
	return time.Date(year, mon+1, 5, 0, 0, 0, 0, time.UTC)
}
