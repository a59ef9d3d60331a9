package moderation

import (
	"time"

	"workspot/models"
)

const day = 24 * time.Hour

// urgentAfterDays is how long a high priority report may stay open before it is urgent.
const urgentAfterDays = 2

// EscalatePriority applies the type-based escalation rule to current.
func EscalatePriority(t models.ReportType, current models.Priority) models.Priority {
	switch t {
	case models.ReportScam, models.ReportSafetyConcern, models.ReportFraudulentActivity:
		return models.PriorityCritical
	case models.ReportFakeListing, models.ReportHarassment:
		return models.PriorityHigh
	}
	return current
}

// ApplyTypeChange sets the report type and, when the type actually changes,
// fires the escalation rule once. An explicit priority always wins and is
// remembered so later type changes leave it alone. It reports whether the
// rule fired.
func ApplyTypeChange(r *models.Report, next models.ReportType, explicit *models.Priority) bool {
	if explicit != nil {
		r.Priority = *explicit
		r.PriorityExplicit = true
	}
	if r.Type == next {
		return false
	}
	r.Type = next

	if explicit != nil || r.PriorityExplicit {
		return false
	}
	if r.Priority == "" {
		r.Priority = models.PriorityMedium
	}
	r.Priority = EscalatePriority(next, r.Priority)
	return true
}

// DaysOpen counts started days between creation and now, or resolution once
// the report is closed.
func DaysOpen(r models.Report, now time.Time) int {
	end := now
	if r.Status.IsClosed() && r.ResolvedAt != nil {
		end = *r.ResolvedAt
	}
	elapsed := end.Sub(r.CreatedAt)
	if elapsed <= 0 {
		return 0
	}
	days := int(elapsed / day)
	if elapsed%day != 0 {
		days++
	}
	return days
}

// IsUrgent is true for critical reports and for high reports open more than two days.
func IsUrgent(r models.Report, now time.Time) bool {
	switch r.Priority {
	case models.PriorityCritical:
		return true
	case models.PriorityHigh:
		return DaysOpen(r, now) > urgentAfterDays
	}
	return false
}

// UrgentAt returns when a high priority report turns urgent, if it ever will
// without further changes.
func UrgentAt(r models.Report) (time.Time, bool) {
	if r.Priority != models.PriorityHigh || r.Status.IsClosed() {
		return time.Time{}, false
	}
	return r.CreatedAt.Add(urgentAfterDays*day + time.Second), true
}

// View derives the read-time values for r.
func View(r models.Report, now time.Time) models.ReportView {
	return models.ReportView{
		Report:   r,
		DaysOpen: DaysOpen(r, now),
		IsUrgent: IsUrgent(r, now),
	}
}
