package domain

import "time"

// PeriodStatus enumerates fiscal period states.
type PeriodStatus string

const (
	PeriodOpen    PeriodStatus = "open"
	PeriodClosed  PeriodStatus = "closed"
	PeriodNotOpen PeriodStatus = "not_open"
)

// FiscalYear groups fiscal periods.
type FiscalYear struct {
	FiscalYearID string    `json:"fiscalYearID"`
	Name         string    `json:"name"`
	StartDate    time.Time `json:"startDate"`
	EndDate      time.Time `json:"endDate"`
}

// PeriodException lets one user keep writing into a non-open period.
type PeriodException struct {
	UserID          string         `json:"userID"`
	AllowedStatuses []PeriodStatus `json:"allowedStatuses"`
}

// Allows reports whether the exception covers status.
func (e PeriodException) Allows(status PeriodStatus) bool {
	for _, s := range e.AllowedStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// FiscalPeriod is a date window inside a fiscal year.
type FiscalPeriod struct {
	PeriodID     string            `json:"periodID"`
	FiscalYearID string            `json:"fiscalYearID"`
	StartDate    time.Time         `json:"startDate"`
	EndDate      time.Time         `json:"endDate"`
	Status       PeriodStatus      `json:"status"`
	Exceptions   []PeriodException `json:"exceptions"`
}

// Contains reports whether date falls in [StartDate, EndDate], compared by calendar day.
func (p FiscalPeriod) Contains(date time.Time) bool {
	d := DateOnly(date)
	return !d.Before(DateOnly(p.StartDate)) && !d.After(DateOnly(p.EndDate))
}

// DateOnly truncates t to midnight UTC of its calendar day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
